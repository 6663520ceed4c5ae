package database_test

import (
	"testing"

	"counter-sync/core/database"

	"github.com/stretchr/testify/assert"
)

func TestConnectSQLite(t *testing.T) {
	db, err := database.Connect(database.Config{
		Driver: "sqlite",
		Name:   ":memory:",
	})
	assert.NoError(t, err)
	assert.NotNil(t, db)
	assert.Equal(t, "sqlite", db.Dialector.Name())
}

func TestConnectMySQLUnreachable(t *testing.T) {
	_, err := database.Connect(database.Config{
		Driver:         "mysql",
		Host:           "127.0.0.1",
		Port:           1, // nothing listens here
		User:           "root",
		Name:           "counter",
		TimeoutSeconds: 1,
	})
	assert.Error(t, err)
}
