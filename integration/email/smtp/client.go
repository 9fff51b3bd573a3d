package smtp

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"

	"github.com/dmitrymomot/mailer/core/email"
)

const providerName = "smtp"

// Compile-time check that Client implements email.Sender.
var _ email.Sender = (*Client)(nil)

// Client implements email.Sender over standard SMTP, transmitting the
// message's own serialized bytes. Supports STARTTLS, TLS and plain
// connections and is safe for concurrent use.
type Client struct {
	config Config
	auth   smtp.Auth
}

// New creates an SMTP-backed email sender.
func New(cfg Config) (*Client, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: Host is required", email.ErrInvalidConfig)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%w: Port must be between 1 and 65535", email.ErrInvalidConfig)
	}
	if cfg.Username != "" && cfg.Password == "" {
		return nil, fmt.Errorf("%w: Password is required when Username is set", email.ErrInvalidConfig)
	}
	if cfg.TLSMode != "starttls" && cfg.TLSMode != "tls" && cfg.TLSMode != "plain" {
		return nil, fmt.Errorf("%w: TLSMode must be starttls, tls, or plain", email.ErrInvalidConfig)
	}

	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &Client{
		config: cfg,
		auth:   auth,
	}, nil
}

// MustNewClient creates an SMTP client that panics on invalid config.
// Follows framework pattern of failing fast during initialization rather than
// allowing broken services to start.
func MustNewClient(cfg Config) *Client {
	client, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

// Send delivers msg to every to/cc/bcc recipient in one SMTP transaction.
// The context bounds dialing and, through its deadline, the whole transaction.
func (c *Client) Send(ctx context.Context, msg email.Outgoing) (*email.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(email.ErrFailedToSendEmail, err)
	}

	env, err := buildEnvelope(msg)
	if err != nil {
		return nil, err
	}

	serverAddr := net.JoinHostPort(c.config.Host, strconv.Itoa(c.config.Port))

	switch c.config.TLSMode {
	case "tls":
		err = c.sendWithTLS(ctx, serverAddr, env)
	case "starttls":
		err = c.sendWithSTARTTLS(ctx, serverAddr, env)
	case "plain":
		err = c.sendPlain(ctx, serverAddr, env)
	}
	if err != nil {
		return nil, errors.Join(email.ErrFailedToSendEmail, err)
	}

	return &email.Result{Provider: providerName, MessageID: env.messageID}, nil
}

// envelope is the SMTP-level view of a message.
type envelope struct {
	from       string
	recipients []string
	data       []byte
	messageID  string
}

func buildEnvelope(msg email.Outgoing) (*envelope, error) {
	dest, err := email.ResolveDestination(msg)
	if err != nil {
		return nil, errors.Join(email.ErrInvalidParams, err)
	}

	from, err := mail.ParseAddress(msg.SenderAddress())
	if err != nil {
		return nil, fmt.Errorf("%w: invalid sender %q", email.ErrInvalidParams, msg.SenderAddress())
	}

	all := dest.All()
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: at least one recipient is required", email.ErrInvalidParams)
	}
	recipients := make([]string, 0, len(all))
	for _, r := range all {
		addr, err := mail.ParseAddress(r)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid recipient %q", email.ErrInvalidParams, r)
		}
		recipients = append(recipients, addr.Address)
	}

	data, err := msg.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to serialize message: %v", email.ErrInvalidParams, err)
	}

	return &envelope{
		from:       from.Address,
		recipients: recipients,
		data:       data,
		messageID:  extractMessageID(data),
	}, nil
}

// sendWithTLS sends email using direct TLS connection.
func (c *Client) sendWithTLS(ctx context.Context, serverAddr string, env *envelope) error {
	dialer := &tls.Dialer{Config: &tls.Config{ServerName: c.config.Host}}
	conn, err := dialer.DialContext(ctx, "tcp", serverAddr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server with TLS: %w", err)
	}
	defer func() { _ = conn.Close() }()

	client, err := c.newSMTPClient(ctx, conn)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	return c.performSMTPTransaction(client, env)
}

// sendWithSTARTTLS sends email using STARTTLS upgrade.
func (c *Client) sendWithSTARTTLS(ctx context.Context, serverAddr string, env *envelope) error {
	conn, err := c.dial(ctx, serverAddr)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	client, err := c.newSMTPClient(ctx, conn)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if err := client.StartTLS(&tls.Config{ServerName: c.config.Host}); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	return c.performSMTPTransaction(client, env)
}

// sendPlain sends email without encryption.
func (c *Client) sendPlain(ctx context.Context, serverAddr string, env *envelope) error {
	conn, err := c.dial(ctx, serverAddr)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	client, err := c.newSMTPClient(ctx, conn)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	return c.performSMTPTransaction(client, env)
}

func (c *Client) dial(ctx context.Context, serverAddr string) (net.Conn, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", serverAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	return conn, nil
}

func (c *Client) newSMTPClient(ctx context.Context, conn net.Conn) (*smtp.Client, error) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	client, err := smtp.NewClient(conn, c.config.Host)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}
	return client, nil
}

// performSMTPTransaction performs the actual SMTP transaction.
func (c *Client) performSMTPTransaction(client *smtp.Client, env *envelope) error {
	if c.auth != nil {
		if err := client.Auth(c.auth); err != nil {
			return fmt.Errorf("authentication failed: %w", err)
		}
	}

	if err := client.Mail(env.from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	for _, rcpt := range env.recipients {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", rcpt, err)
		}
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	if _, err := writer.Write(env.data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	// Quit errors are non-fatal: some servers close the connection right after DATA
	_ = client.Quit()

	return nil
}

// extractMessageID reads the Message-ID header from a serialized message.
func extractMessageID(data []byte) string {
	parsed, err := mail.ReadMessage(bytes.NewReader(data))
	if err != nil {
		return ""
	}
	return parsed.Header.Get("Message-Id")
}
