// Package feed subscribes to realtime change notifications.
//
// The feed is a websocket channel carrying JSON events for row changes in
// the shared counter collection. The client delivers every UPDATE event's
// new value to a registered handler on a dedicated goroutine.
//
// # Delivery guarantees
//
// The transport is at-least-once: events may be duplicated, dropped while
// disconnected, or delivered out of order. Consumers must treat each value
// as an unconditional overwrite rather than an increment. After a
// connection loss the client reconnects with capped exponential backoff;
// events committed while disconnected are not replayed.
//
// # Teardown
//
// Unsubscribe is idempotent and safe to call while a delivery is in flight;
// the handler may fire at most once more after it returns.
//
// # Usage
//
//	client := feed.NewClient(cfg.Feed, logg)
//	sub, err := client.Subscribe(func(v int64) { engine.OnRemoteUpdate(v) })
//	defer sub.Unsubscribe()
package feed
