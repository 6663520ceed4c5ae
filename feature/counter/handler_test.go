package counter_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"counter-sync/feature/counter"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func setupApp(t *testing.T, svc *counter.Service) *fiber.App {
	t.Helper()
	app := fiber.New()
	counter.NewHandler(svc, zap.NewNop()).RegisterRoutes(app)
	return app
}

func decodeBody(t *testing.T, body io.Reader, out any) {
	t.Helper()
	data, err := io.ReadAll(body)
	assert.NoError(t, err)
	assert.NoError(t, json.Unmarshal(data, out))
}

func TestHandleGetCounter(t *testing.T) {
	svc, _, _ := setupService(t, int64ptr(5))
	assert.NoError(t, svc.Start(context.Background()))
	app := setupApp(t, svc)

	resp, err := app.Test(httptest.NewRequest("GET", "/counter/", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body counter.CounterResponse
	decodeBody(t, resp.Body, &body)
	assert.True(t, body.Ready)
	if assert.NotNil(t, body.Value) {
		assert.Equal(t, int64(5), *body.Value)
	}
}

func TestHandleGetCounterUnready(t *testing.T) {
	svc, _, _ := setupService(t, nil)
	assert.NoError(t, svc.Start(context.Background()))
	app := setupApp(t, svc)

	resp, err := app.Test(httptest.NewRequest("GET", "/counter/", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body counter.CounterResponse
	decodeBody(t, resp.Body, &body)
	assert.False(t, body.Ready)
	assert.Nil(t, body.Value, "value must render as null while unready")
}

func TestHandleIncrement(t *testing.T) {
	svc, _, _ := setupService(t, int64ptr(5))
	assert.NoError(t, svc.Start(context.Background()))
	app := setupApp(t, svc)

	resp, err := app.Test(httptest.NewRequest("POST", "/counter/increment", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body counter.IncrementResponse
	decodeBody(t, resp.Body, &body)
	assert.Equal(t, int64(6), body.Value)
}

func TestHandleIncrementUnready(t *testing.T) {
	svc, _, _ := setupService(t, nil)
	assert.NoError(t, svc.Start(context.Background()))
	app := setupApp(t, svc)

	resp, err := app.Test(httptest.NewRequest("POST", "/counter/increment", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestHandleGetLeaderboard(t *testing.T) {
	svc, store, _ := setupService(t, int64ptr(5))
	assert.NoError(t, store.UpsertLeaderboardEntry(context.Background(), "client-b", 9))
	assert.NoError(t, svc.Start(context.Background()))
	app := setupApp(t, svc)

	// The projection is computed asynchronously after the initial load.
	assert.Eventually(t, func() bool {
		return len(svc.Leaderboard()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	resp, err := app.Test(httptest.NewRequest("GET", "/counter/leaderboard", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body []map[string]any
	decodeBody(t, resp.Body, &body)
	assert.Len(t, body, 1)
	assert.Equal(t, "client-b", body[0]["user_id"])
}

func TestHandleGetNotifications(t *testing.T) {
	svc, _, _ := setupService(t, int64ptr(5))
	assert.NoError(t, svc.Start(context.Background()))
	app := setupApp(t, svc)

	_, err := svc.Increment(context.Background())
	assert.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/counter/notifications", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body []counter.Notification
	decodeBody(t, resp.Body, &body)
	assert.NotEmpty(t, body)
	assert.Equal(t, counter.KindUpdateSuccess, body[0].Kind, "newest first")
}
