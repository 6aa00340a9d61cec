package mail

import (
	"bufio"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/yiffos/pkgreport/pkg/domain/model"
)

type smtpCommand struct {
	line   string
	secure bool
}

// fakeSMTP is a scripted relay. STARTTLS is offered only when tlsConfig is
// set, and AUTH is offered before the upgrade only when STARTTLS is not.
type fakeSMTP struct {
	listener  net.Listener
	tlsConfig *tls.Config

	mu          sync.Mutex
	active      net.Conn
	commands    []smtpCommand
	credentials string
	message     string

	done chan struct{}
}

func newFakeSMTP(t *testing.T, tlsConfig *tls.Config) *fakeSMTP {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	f := &fakeSMTP{
		listener:  ln,
		tlsConfig: tlsConfig,
		done:      make(chan struct{}),
	}
	go f.serve()

	t.Cleanup(func() {
		_ = ln.Close()
		f.mu.Lock()
		if f.active != nil {
			_ = f.active.Close()
		}
		f.mu.Unlock()
		<-f.done
	})
	return f
}

func (f *fakeSMTP) port() int {
	return f.listener.Addr().(*net.TCPAddr).Port
}

func (f *fakeSMTP) history() []smtpCommand {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]smtpCommand(nil), f.commands...)
}

func (f *fakeSMTP) serve() {
	defer close(f.done)
	for {
		conn, err := f.listener.Accept()
		if err != nil {
			return
		}
		f.handle(conn)
	}
}

func (f *fakeSMTP) handle(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(10 * time.Second))

	f.mu.Lock()
	f.active = conn
	f.mu.Unlock()

	secure := false
	rw := bufio.NewReadWriter(bufio.NewReader(conn), bufio.NewWriter(conn))
	reply := func(lines ...string) bool {
		for _, l := range lines {
			_, _ = rw.WriteString(l + "\r\n")
		}
		return rw.Flush() == nil
	}
	readLine := func() (string, bool) {
		line, err := rw.ReadString('\n')
		if err != nil {
			return "", false
		}
		return strings.TrimRight(line, "\r\n"), true
	}

	if !reply("220 relay.example.com ESMTP") {
		return
	}

	for {
		line, ok := readLine()
		if !ok {
			return
		}

		f.mu.Lock()
		f.commands = append(f.commands, smtpCommand{line: line, secure: secure})
		f.mu.Unlock()

		fields := strings.Fields(line)
		if len(fields) == 0 {
			reply("500 empty command")
			continue
		}

		switch strings.ToUpper(fields[0]) {
		case "EHLO", "HELO":
			caps := []string{"relay.example.com"}
			if f.tlsConfig != nil && !secure {
				caps = append(caps, "STARTTLS")
			}
			if f.tlsConfig == nil || secure {
				caps = append(caps, "AUTH PLAIN LOGIN")
			}
			caps = append(caps, "8BITMIME")

			lines := make([]string, len(caps))
			for i, c := range caps {
				sep := "-"
				if i == len(caps)-1 {
					sep = " "
				}
				lines[i] = "250" + sep + c
			}
			reply(lines...)

		case "STARTTLS":
			if f.tlsConfig == nil || secure {
				reply("502 5.5.1 STARTTLS not available")
				continue
			}
			if !reply("220 2.0.0 Ready to start TLS") {
				return
			}
			tlsConn := tls.Server(conn, f.tlsConfig)
			if err := tlsConn.Handshake(); err != nil {
				return
			}
			secure = true
			rw = bufio.NewReadWriter(bufio.NewReader(tlsConn), bufio.NewWriter(tlsConn))

		case "AUTH":
			encoded := ""
			if len(fields) >= 3 {
				encoded = fields[2]
			} else {
				reply("334 ")
				if encoded, ok = readLine(); !ok {
					return
				}
			}
			if raw, err := base64.StdEncoding.DecodeString(encoded); err == nil {
				f.mu.Lock()
				f.credentials = string(raw)
				f.mu.Unlock()
			}
			reply("235 2.7.0 Authentication successful")

		case "MAIL", "RCPT", "NOOP", "RSET":
			reply("250 2.0.0 OK")

		case "DATA":
			reply("354 End data with <CR><LF>.<CR><LF>")
			var body []string
			for {
				l, ok := readLine()
				if !ok {
					return
				}
				if l == "." {
					break
				}
				body = append(body, l)
			}
			f.mu.Lock()
			f.message = strings.Join(body, "\n")
			f.mu.Unlock()
			reply("250 2.0.0 Queued")

		case "QUIT":
			reply("221 2.0.0 Bye")
			return

		default:
			reply("502 5.5.2 Command not recognized")
		}
	}
}

func indexOf(cmds []smtpCommand, verb string) int {
	for i, c := range cmds {
		if strings.HasPrefix(strings.ToUpper(c.line), verb) {
			return i
		}
	}
	return -1
}

// testCertificates returns a server certificate for 127.0.0.1 and a client
// config trusting it
func testCertificates(t *testing.T) (server, client *tls.Config) {
	t.Helper()

	ts := httptest.NewTLSServer(http.NotFoundHandler())
	t.Cleanup(ts.Close)

	pool := x509.NewCertPool()
	pool.AddCert(ts.Certificate())

	server = &tls.Config{Certificates: ts.TLS.Certificates}
	client = &tls.Config{
		RootCAs:    pool,
		ServerName: "127.0.0.1",
		MinVersion: tls.VersionTLS12,
	}
	return server, client
}

func TestSender_NotifyUpgradesBeforeAuth(t *testing.T) {
	serverTLS, clientTLS := testCertificates(t)
	relay := newFakeSMTP(t, serverTLS)

	s, err := NewSender("127.0.0.1", relay.port(), "reports@example.com", "team@example.com",
		WithAuth("reports", "s3cret"),
		WithTimeout(5*time.Second),
		WithTLSConfig(clientTLS),
	)
	gt.NoError(t, err)

	err = s.Notify(context.Background(), &model.Notification{
		Subject: "yiffOS package updates for 2026-10-17",
		Body:    "New packages that need updating:\nfoo: v1.2.0 --> v1.3.0\n",
	})
	gt.NoError(t, err)

	cmds := relay.history()
	startTLS := indexOf(cmds, "STARTTLS")
	auth := indexOf(cmds, "AUTH")
	mailFrom := indexOf(cmds, "MAIL FROM")

	gt.True(t, startTLS >= 0)
	gt.True(t, auth > startTLS)
	gt.True(t, mailFrom > auth)

	for _, c := range cmds[:startTLS+1] {
		gt.False(t, c.secure)
	}
	for _, c := range cmds[startTLS+1:] {
		gt.True(t, c.secure)
	}

	relay.mu.Lock()
	defer relay.mu.Unlock()
	gt.Equal(t, relay.credentials, "\x00reports\x00s3cret")
	gt.S(t, relay.message).Contains("Subject: yiffOS package updates for 2026-10-17")
	gt.S(t, relay.message).Contains("foo: v1.2.0 --> v1.3.0")
}

func TestSender_NotifyRequiresStartTLS(t *testing.T) {
	relay := newFakeSMTP(t, nil)

	s, err := NewSender("127.0.0.1", relay.port(), "reports@example.com", "team@example.com",
		WithAuth("reports", "s3cret"),
		WithTimeout(5*time.Second),
	)
	gt.NoError(t, err)

	err = s.Notify(context.Background(), &model.Notification{Subject: "x", Body: "y"})
	gt.Error(t, err)
	gt.S(t, err.Error()).Contains("failed to send mail")

	cmds := relay.history()
	gt.True(t, indexOf(cmds, "EHLO") >= 0)
	gt.Equal(t, indexOf(cmds, "AUTH"), -1)
	gt.Equal(t, indexOf(cmds, "MAIL FROM"), -1)

	relay.mu.Lock()
	defer relay.mu.Unlock()
	gt.Equal(t, relay.credentials, "")
}
