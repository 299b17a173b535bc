package stringdb

import "time"

// Default endpoints and identity reported to the STRING API.
const (
	DefaultBaseURL        = "https://string-db.org/api"
	DefaultVersionURL     = "https://version-12-0.string-db.org/api"
	DefaultCallerIdentity = "string_mcp_bridge"
	DefaultRequestDelay   = time.Second
)

// Config holds the immutable client settings: endpoint URLs, the identity
// string sent with every request, and the fixed delay applied before each
// outbound call. Created once at Client construction and never mutated.
type Config struct {
	BaseURL        string
	VersionURL     string
	CallerIdentity string
	RequestDelay   time.Duration
}

// DefaultConfig returns a Config with the public STRING endpoints and a
// one second inter-request delay.
func DefaultConfig() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		VersionURL:     DefaultVersionURL,
		CallerIdentity: DefaultCallerIdentity,
		RequestDelay:   DefaultRequestDelay,
	}
}

// withDefaults fills any zero fields from DefaultConfig. A negative
// RequestDelay disables the throttle entirely.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.BaseURL == "" {
		c.BaseURL = d.BaseURL
	}
	if c.VersionURL == "" {
		c.VersionURL = d.VersionURL
	}
	if c.CallerIdentity == "" {
		c.CallerIdentity = d.CallerIdentity
	}
	if c.RequestDelay == 0 {
		c.RequestDelay = d.RequestDelay
	}
	return c
}
