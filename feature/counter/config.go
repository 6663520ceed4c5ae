package counter

// Config holds configuration for the counter feature.
type Config struct {
	// ConditionalWrites commits increments with a compare-and-swap on the
	// previous value plus retry-on-conflict, instead of the default
	// last-writer-wins overwrite.
	ConditionalWrites bool `mapstructure:"conditional_writes" default:"false"`
	// WriteRetries bounds retry-on-conflict attempts for conditional writes.
	WriteRetries int `mapstructure:"write_retries" default:"3"`
	// NotificationLimit is the size of the recent-notification buffer.
	NotificationLimit int `mapstructure:"notification_limit" default:"32"`
	// RefreshTimeoutSeconds bounds a single leaderboard refresh.
	RefreshTimeoutSeconds int `mapstructure:"refresh_timeout_seconds" default:"10"`
}
