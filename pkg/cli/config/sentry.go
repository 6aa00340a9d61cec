package config

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/yiffos/pkgreport/pkg/domain/types"
)

// Sentry holds error reporting configuration
type Sentry struct {
	DSN string `masq:"secret"`
	Env string

	enabled bool
}

// Flags returns CLI flags for Sentry configuration
func (c *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN, fatal errors are reported when set",
			Destination: &c.DSN,
			Sources:     cli.EnvVars("SENTRY_DSN"),
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment",
			Value:       "production",
			Destination: &c.Env,
			Sources:     cli.EnvVars("SENTRY_ENV"),
		},
	}
}

// Configure initializes the Sentry client. It does nothing without a DSN.
func (c *Sentry) Configure() error {
	if c.DSN == "" {
		return nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         c.DSN,
		Environment: c.Env,
		Release:     types.UserAgent(),
	}); err != nil {
		return goerr.Wrap(err, "failed to initialize Sentry")
	}
	c.enabled = true
	return nil
}

// Capture reports err and waits for delivery. It returns the event ID, or
// an empty string when Sentry is not configured.
func (c *Sentry) Capture(err error) string {
	if !c.enabled || err == nil {
		return ""
	}

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		if values := goerr.Values(err); len(values) > 0 {
			scope.SetContext("goerr", sentry.Context(values))
		}
	})

	var id string
	if evID := hub.CaptureException(err); evID != nil {
		id = string(*evID)
	}
	hub.Flush(2 * time.Second)
	return id
}
