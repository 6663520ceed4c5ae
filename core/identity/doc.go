// Package identity provides the stable per-client identifier.
//
// Every installation gets exactly one opaque UUID, created on first run and
// persisted to a local file. The identifier keys this client's leaderboard
// row, so it must never change once generated; the provider therefore only
// ever writes the file when no usable identity exists.
//
// # Usage
//
//	id, err := identity.NewProvider(cfg.Identity).Load()
package identity
