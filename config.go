package faultline

import "time"

// Config holds the configuration for a Faultline instance.
type Config struct {
	// DefaultLimit is the page size used when a query does not specify one.
	DefaultLimit int

	// CacheTTL is the default TTL for cached stack-scoped result pages.
	// Set to 0 to disable caching by default.
	CacheTTL time.Duration

	// SubmissionRateLimit is the per-project sustained submission rate
	// per second. Zero disables throttling.
	SubmissionRateLimit int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DefaultLimit: 10,
		CacheTTL:     5 * time.Minute,
	}
}
