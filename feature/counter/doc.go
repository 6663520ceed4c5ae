// Package counter implements the shared realtime counter feature.
//
// A single counter row is shared by many concurrent clients. Each client
// may optimistically increment it locally before the commit is durable,
// while asynchronously receiving committed values pushed by other clients
// through the change feed. The reconciliation engine merges those signals
// into one authoritative view without ever exposing a torn or stale value.
//
// # Components
//
//   - Engine: the reconciliation state machine. Applies optimistic
//     increments, rolls back on commit failure, and filters self-echoed
//     feed notifications through the pending-write flag.
//   - Projector: recomputes the leaderboard view after every change to the
//     authoritative value or readiness.
//   - Store: the persistence client for the counter row and the
//     leaderboard collection.
//   - Recorder: bounded buffer of the user-facing notifications (load
//     failure, update failure with rollback, leaderboard warning, update
//     success, refresh failure).
//   - Service: wiring and lifecycle (feed subscription, refresh loop).
//   - Handler: HTTP surface rendering the engine's state.
//
// # Conflict semantics
//
// The committed counter has no server-side lock. By default commits are
// last-writer-wins overwrites, so two clients incrementing near
// simultaneously can silently lose one increment at the storage layer.
// With counter.conditional_writes enabled, commits compare-and-swap on the
// previous value and retry on conflict on top of the re-read value.
//
// # HTTP Endpoints
//
//   - GET  /counter               : authoritative value + readiness
//   - POST /counter/increment     : optimistic increment
//   - GET  /counter/leaderboard   : projection, value descending
//   - GET  /counter/notifications : recent notifications, newest first
package counter
