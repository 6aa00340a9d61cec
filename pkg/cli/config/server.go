package config

import "github.com/urfave/cli/v3"

// Server holds scheduler and HTTP server configuration
type Server struct {
	Addr          string
	Schedule      string
	TriggerSecret string `masq:"secret"`
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("PKGREPORT_ADDR"),
		},
		&cli.StringFlag{
			Name:        "schedule",
			Usage:       "Cron expression of report runs",
			Value:       "0 6 * * *",
			Destination: &c.Schedule,
			Sources:     cli.EnvVars("PKGREPORT_SCHEDULE"),
		},
		&cli.StringFlag{
			Name:        "trigger-secret",
			Usage:       "HMAC secret of POST /run, the endpoint is disabled when empty",
			Destination: &c.TriggerSecret,
			Sources:     cli.EnvVars("PKGREPORT_TRIGGER_SECRET"),
		},
	}
}
