package config

import (
	"time"

	"github.com/urfave/cli/v3"
	"github.com/yiffos/pkgreport/pkg/infra/mail"
)

// Mail holds SMTP delivery configuration
type Mail struct {
	Server      string
	Port        int
	Sender      string
	Destination string
	Username    string
	Password    string `masq:"secret"`
}

// Flags returns CLI flags for mail configuration. They are not required
// because a dry run never sends mail.
func (c *Mail) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "smtp-server",
			Usage:       "SMTP relay host",
			Destination: &c.Server,
			Sources:     cli.EnvVars("SMTP_SERVER"),
		},
		&cli.IntFlag{
			Name:        "smtp-port",
			Usage:       "SMTP relay port",
			Value:       587,
			Destination: &c.Port,
			Sources:     cli.EnvVars("SMTP_PORT"),
		},
		&cli.StringFlag{
			Name:        "sender",
			Usage:       "Report sender address",
			Destination: &c.Sender,
			Sources:     cli.EnvVars("SENDER"),
		},
		&cli.StringFlag{
			Name:        "destination",
			Usage:       "Report recipient address",
			Destination: &c.Destination,
			Sources:     cli.EnvVars("DESTINATION"),
		},
		&cli.StringFlag{
			Name:        "smtp-username",
			Usage:       "SMTP AUTH username",
			Destination: &c.Username,
			Sources:     cli.EnvVars("SMTP_USERNAME"),
		},
		&cli.StringFlag{
			Name:        "smtp-password",
			Usage:       "SMTP AUTH password",
			Destination: &c.Password,
			Sources:     cli.EnvVars("SMTP_PASSWORD"),
		},
	}
}

// NewNotifier creates the mail notifier
func (c *Mail) NewNotifier(timeout time.Duration) (*mail.Sender, error) {
	opts := []mail.Option{mail.WithTimeout(timeout)}
	if c.Username != "" {
		opts = append(opts, mail.WithAuth(c.Username, c.Password))
	}
	return mail.NewSender(c.Server, c.Port, c.Sender, c.Destination, opts...)
}
