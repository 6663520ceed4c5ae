package counter

import (
	"context"

	"counter-sync/core/feed"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Counter feature.
func NewFeature(cfg Config, db *gorm.DB, subscriber feed.Subscriber, clientID string, logger *zap.Logger) *Feature {
	svc := NewService(cfg, NewStore(db), subscriber, clientID, logger)
	h := NewHandler(svc, logger)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "counter"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load starts the service and registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	if err := f.service.Start(context.Background()); err != nil {
		return err
	}
	f.handler.RegisterRoutes(app)
	return nil
}

// Shutdown stops the service: unsubscribes the feed and drains the
// refresh loop.
func (f *Feature) Shutdown() {
	f.service.Stop()
}
