package config

const Version = "0.1.0"

// Fixed fetch policy, enforced by the reader regardless of transport.
const (
	DefaultUserAgent = "html-reader/" + Version

	DefaultTimeoutSeconds = 30
	MinTimeoutSeconds     = 1
	MaxTimeoutSeconds     = 300

	DefaultExtractTextOnly = true
	DefaultFollowRedirects = true
)
