package config

import (
	"time"

	"github.com/urfave/cli/v3"
	"github.com/yiffos/pkgreport/pkg/domain/interfaces"
	"github.com/yiffos/pkgreport/pkg/infra/repology"
)

// Repology holds version service configuration
type Repology struct {
	URL     string
	Timeout time.Duration
}

// Flags returns CLI flags for Repology configuration. The timeout flag is
// shared by every outbound HTTP client.
func (c *Repology) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repology-url",
			Usage:       "Repology API base URL",
			Value:       repology.DefaultBaseURL,
			Destination: &c.URL,
			Sources:     cli.EnvVars("REPOLOGY_URL"),
		},
		&cli.DurationFlag{
			Name:        "http-timeout",
			Usage:       "Timeout of each outbound HTTP request",
			Value:       30 * time.Second,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("PKGREPORT_HTTP_TIMEOUT"),
		},
	}
}

// NewClient creates the version service client
func (c *Repology) NewClient() (interfaces.VersionService, error) {
	return repology.NewClient(c.URL, repology.WithTimeout(c.Timeout))
}
