// Package database handles database connections.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) that
// configures the connection holding the shared counter row and the
// leaderboard collection.
//
// # Connect
//
// Connect establishes the connection for the configured driver. Production
// deployments use the mysql driver; tests use the sqlite driver with an
// in-memory database so the full persistence path can run without a server.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
