// Package config loads application configuration from the environment,
// optionally seeded from a .env file.
package config

import "time"

// DB holds database connection settings.
type DB struct {
	Url string `envconfig:"URL"`
}

// Log holds logger settings.
type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[commission]"`
}

// Server holds HTTP server settings.
type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

// RateLimit holds request rate limiting settings.
type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// Business holds domain policy settings. Timezone is the single canonical
// zone in which "is the scheduled date in the past" is evaluated; client
// local time is never consulted.
type Business struct {
	Timezone string `envconfig:"TIMEZONE" default:"UTC"`
}

// Sweeper holds auto-settlement sweeper settings. Schedule is a cron
// expression in the standard five-field format.
type Sweeper struct {
	Enabled  bool   `envconfig:"ENABLED" default:"true"`
	Schedule string `envconfig:"SCHEDULE" default:"0 * * * *"`
}

// App is the root application configuration.
type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
	Business  *Business  `envconfig:"BUSINESS"`
	Sweeper   *Sweeper   `envconfig:"SWEEPER"`
}
