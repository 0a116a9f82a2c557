package config

import "time"

const (
	appDir      = "gasflow"
	catalogFile = "points.yaml"

	defaultBaseURL         = "https://transparency.entsog.eu/api/v1"
	defaultFromDate        = "2022-01-01"
	defaultTimezone        = "CET"
	defaultHTTPTimeout     = 30 * time.Second
	defaultCacheTTL        = 5 * time.Minute
	defaultRefreshSchedule = "@hourly"
	defaultLogLevel        = "info"
)
