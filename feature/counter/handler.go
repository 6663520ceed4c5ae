package counter

import (
	"errors"

	"counter-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the counter feature.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logg *zap.Logger) *Handler {
	return &Handler{service: service, logger: logg}
}

// RegisterRoutes registers the counter routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/counter")
	group.Get("/", h.HandleGetCounter)
	group.Post("/increment", h.HandleIncrement)
	group.Get("/leaderboard", h.HandleGetLeaderboard)
	group.Get("/notifications", h.HandleGetNotifications)
}

// CounterResponse is the observer view of the counter. Value is null while
// the counter has not been loaded yet.
type CounterResponse struct {
	Value   *int64 `json:"value"`
	Ready   bool   `json:"ready"`
	Pending bool   `json:"pending"`
}

// IncrementResponse carries the committed value of a successful increment.
type IncrementResponse struct {
	Value int64 `json:"value"`
}

// HandleGetCounter returns the current authoritative counter state.
// @Summary Get Counter
// @Description Get the authoritative counter value and readiness state.
// @Tags counter
// @Produce json
// @Success 200 {object} CounterResponse "Counter state"
// @Router /counter [get]
func (h *Handler) HandleGetCounter(c *fiber.Ctx) error {
	state := h.service.State()

	resp := CounterResponse{Ready: state.Ready, Pending: state.Pending}
	if state.Ready {
		v := state.Value
		resp.Value = &v
	}
	return c.JSON(resp)
}

// HandleIncrement triggers a local optimistic increment.
// @Summary Increment Counter
// @Description Optimistically increment the shared counter and commit it.
// @Tags counter
// @Produce json
// @Success 200 {object} IncrementResponse "Committed value"
// @Failure 409 {object} map[string]string "Increment already in flight"
// @Failure 500 {object} map[string]string "Commit failed, value rolled back"
// @Failure 503 {object} map[string]string "Counter not loaded yet"
// @Router /counter/increment [post]
func (h *Handler) HandleIncrement(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	value, err := h.service.Increment(c.Context())
	switch {
	case errors.Is(err, ErrNotReady):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "counter is not loaded yet",
		})
	case errors.Is(err, ErrIncrementInFlight):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "an increment is already in flight",
		})
	case err != nil:
		l.Error("Increment failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(IncrementResponse{Value: value})
}

// HandleGetLeaderboard returns the current leaderboard projection.
// @Summary Get Leaderboard
// @Description Get all leaderboard entries ordered by value descending.
// @Tags counter
// @Produce json
// @Success 200 {array} models.LeaderboardEntry "Leaderboard entries"
// @Router /counter/leaderboard [get]
func (h *Handler) HandleGetLeaderboard(c *fiber.Ctx) error {
	return c.JSON(h.service.Leaderboard())
}

// HandleGetNotifications returns recent user-facing notifications.
// @Summary Get Notifications
// @Description Get recent user-facing notifications, newest first.
// @Tags counter
// @Produce json
// @Success 200 {array} Notification "Recent notifications"
// @Router /counter/notifications [get]
func (h *Handler) HandleGetNotifications(c *fiber.Ctx) error {
	return c.JSON(h.service.Notifications())
}
