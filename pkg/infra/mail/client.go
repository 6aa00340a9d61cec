package mail

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/m-mizutani/goerr/v2"
	gomail "github.com/wneessen/go-mail"
	"github.com/yiffos/pkgreport/pkg/domain/model"
	"github.com/yiffos/pkgreport/pkg/utils/logging"
)

// Sender delivers notifications as plain text mail through an SMTP relay.
// The connection is upgraded with STARTTLS before authenticating.
type Sender struct {
	host     string
	port     int
	from     string
	to       string
	username string
	password string
	timeout  time.Duration

	tlsConfig *tls.Config
}

// Option is a functional option for Sender
type Option func(*Sender)

// WithAuth enables SMTP AUTH with username and password
func WithAuth(username, password string) Option {
	return func(s *Sender) {
		s.username = username
		s.password = password
	}
}

// WithTimeout sets the SMTP dial and I/O timeout
func WithTimeout(timeout time.Duration) Option {
	return func(s *Sender) {
		s.timeout = timeout
	}
}

// WithTLSConfig replaces the TLS configuration used for STARTTLS, e.g. to
// trust a private CA
func WithTLSConfig(cfg *tls.Config) Option {
	return func(s *Sender) {
		s.tlsConfig = cfg
	}
}

// NewSender creates a Sender relaying through host:port from one address to one recipient
func NewSender(host string, port int, from, to string, opts ...Option) (*Sender, error) {
	if host == "" {
		return nil, goerr.New("SMTP server is required")
	}
	if from == "" || to == "" {
		return nil, goerr.New("sender and destination are required", goerr.V("from", from), goerr.V("to", to))
	}

	s := &Sender{
		host:    host,
		port:    port,
		from:    from,
		to:      to,
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Notify sends n as a single message
func (s *Sender) Notify(ctx context.Context, n *model.Notification) error {
	logger := logging.From(ctx)

	msg, err := s.newMessage(n)
	if err != nil {
		return err
	}

	clientOpts := []gomail.Option{
		gomail.WithPort(s.port),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithTimeout(s.timeout),
	}
	if s.tlsConfig != nil {
		clientOpts = append(clientOpts, gomail.WithTLSConfig(s.tlsConfig))
	}
	if s.username != "" {
		clientOpts = append(clientOpts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.username),
			gomail.WithPassword(s.password),
		)
	}

	client, err := gomail.NewClient(s.host, clientOpts...)
	if err != nil {
		return goerr.Wrap(err, "failed to create SMTP client", goerr.V("host", s.host), goerr.V("port", s.port))
	}

	logger.Debug("Sending mail", "host", s.host, "port", s.port, "to", s.to, "subject", n.Subject)

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return goerr.Wrap(err, "failed to send mail",
			goerr.V("host", s.host),
			goerr.V("port", s.port),
			goerr.V("to", s.to),
		)
	}

	logger.Info("Mail sent", "to", s.to, "subject", n.Subject)
	return nil
}

func (s *Sender) newMessage(n *model.Notification) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return nil, goerr.Wrap(err, "invalid sender address", goerr.V("from", s.from))
	}
	if err := msg.To(s.to); err != nil {
		return nil, goerr.Wrap(err, "invalid destination address", goerr.V("to", s.to))
	}
	msg.Subject(n.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, n.Body)

	return msg, nil
}
