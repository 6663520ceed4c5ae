// Package config centralizes application configuration.
//
// Configuration is assembled from environment variables, with an optional
// .env file (loaded via godotenv) overriding the process environment during
// local development. Defaults are declared directly on the partial config
// structs through `default` struct tags and registered in Viper by
// reflection, so every key is visible to AutomaticEnv without manual
// binding.
//
// # Sections
//
//   - server:   HTTP server (port, API key)
//   - database: relational store holding the counter and leaderboard rows
//   - feed:     realtime change feed subscription
//   - identity: local client identity file
//   - counter:  counter feature tuning (conditional writes, retries)
//   - log:      logger level and encoding
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	db, err := database.Connect(cfg.Database)
package config
