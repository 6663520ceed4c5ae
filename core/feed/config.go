package feed

// Config holds configuration for the realtime change feed.
type Config struct {
	// URL is the websocket endpoint delivering change events.
	URL string `mapstructure:"url" default:"ws://localhost:4000/realtime"`
	// Table is the collection whose UPDATE events are delivered.
	Table string `mapstructure:"table" default:"counter"`
	// HandshakeTimeoutSeconds bounds the websocket handshake.
	HandshakeTimeoutSeconds int `mapstructure:"handshake_timeout_seconds" default:"10"`
	// MaxBackoffSeconds caps the reconnect backoff.
	MaxBackoffSeconds int `mapstructure:"max_backoff_seconds" default:"30"`
}
