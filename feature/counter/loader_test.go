package counter_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"counter-sync/core/database"
	"counter-sync/feature/counter"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestFeatureLoad(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	assert.NoError(t, err)
	assert.NoError(t, counter.NewStore(db).Seed(context.Background(), 0))

	feature := counter.NewFeature(counter.Config{}, db, &fakeFeed{}, "client-a", zap.NewNop())
	assert.Equal(t, "counter", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	assert.NoError(t, feature.Load(app))
	defer feature.Shutdown()

	// Routes must be registered and backed by a started service.
	resp, err := app.Test(httptest.NewRequest("GET", "/counter/", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
