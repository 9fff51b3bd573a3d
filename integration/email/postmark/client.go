package postmark

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/mrz1836/postmark"

	"github.com/dmitrymomot/mailer/core/email"
)

const providerName = "postmark"

// Compile-time check that Client implements email.Sender.
var _ email.Sender = (*Client)(nil)

// API defines the Postmark operation used by Client.
type API interface {
	SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error)
}

// Client implements email.Sender using Postmark's transactional API.
// Postmark builds MIME itself, so Client needs the structured fields of an
// email.Message rather than its serialized bytes.
type Client struct {
	api    API
	config Config
}

// Option configures Client.
type Option func(*Client)

// WithAPI replaces the Postmark API client, mainly for tests.
func WithAPI(api API) Option {
	return func(c *Client) {
		c.api = api
	}
}

// New creates a Postmark-backed email sender.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.ServerToken == "" {
		return nil, fmt.Errorf("%w: ServerToken is required", email.ErrInvalidConfig)
	}

	c := &Client{
		api:    postmark.NewClient(cfg.ServerToken, cfg.AccountToken),
		config: cfg,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// MustNewClient creates a Postmark client that panics on invalid config.
// Follows framework pattern of failing fast during initialization rather than
// allowing broken services to start.
func MustNewClient(cfg Config, opts ...Option) *Client {
	client, err := New(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return client
}

// Send maps msg onto a Postmark email and returns the Postmark message ID.
// msg must be an *email.Message or an email.Envelope.
func (c *Client) Send(ctx context.Context, msg email.Outgoing) (*email.Result, error) {
	m, err := structured(msg)
	if err != nil {
		return nil, err
	}
	dest, err := email.ResolveDestination(msg)
	if err != nil {
		return nil, errors.Join(email.ErrInvalidParams, err)
	}

	// Validate the recipients that will actually be used
	check := *m
	check.To, check.Cc, check.Bcc = dest.To, dest.Cc, dest.Bcc
	if err := check.Validate(); err != nil {
		return nil, err
	}

	resp, err := c.api.SendEmail(ctx, c.buildEmail(m, dest))
	if err != nil {
		return nil, errors.Join(email.ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode > 0 {
		return nil, errors.Join(
			email.ErrFailedToSendEmail,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}

	return &email.Result{Provider: providerName, MessageID: resp.MessageID}, nil
}

func (c *Client) buildEmail(m *email.Message, dest email.Destination) postmark.Email {
	out := postmark.Email{
		From:          m.SenderAddress(),
		To:            strings.Join(dest.To, ", "),
		Cc:            strings.Join(dest.Cc, ", "),
		Bcc:           strings.Join(dest.Bcc, ", "),
		ReplyTo:       strings.Join(m.ReplyTo, ", "),
		Subject:       m.Subject,
		TextBody:      m.TextBody,
		HTMLBody:      m.HTMLBody,
		MessageStream: c.config.MessageStream,
		TrackOpens:    c.config.TrackOpens,
		TrackLinks:    c.config.TrackLinks,
	}

	keys := make([]string, 0, len(m.Headers))
	for k := range m.Headers {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		out.Headers = append(out.Headers, postmark.Header{Name: k, Value: m.Headers[k]})
	}

	for _, a := range m.Attachments {
		contentType := a.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		out.Attachments = append(out.Attachments, postmark.Attachment{
			Name:        a.Filename,
			Content:     base64.StdEncoding.EncodeToString(a.Data),
			ContentType: contentType,
		})
	}

	return out
}

func structured(msg email.Outgoing) (*email.Message, error) {
	switch v := msg.(type) {
	case *email.Message:
		return v, nil
	case email.Envelope:
		if v.Message != nil {
			return v.Message, nil
		}
	}
	return nil, fmt.Errorf("%w: postmark requires *email.Message or email.Envelope, got %T", email.ErrInvalidParams, msg)
}
