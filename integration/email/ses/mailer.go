package ses

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	appconfig "github.com/dmitrymomot/mailer/core/config"
	"github.com/dmitrymomot/mailer/core/email"
	"github.com/dmitrymomot/mailer/core/logger"
)

const providerName = "ses"

// MessageIDHeader is the header key Result.Annotate stores the SES message ID under.
const MessageIDHeader = "X-Ses-Message-Id"

// Compile-time check that Mailer implements email.Sender.
var _ email.Sender = (*Mailer)(nil)

// Client defines the SES v2 operation used by Mailer.
type Client interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Mailer delivers fully-formed messages through the SES v2 SendEmail API.
// It holds no state besides the client and is safe for concurrent use.
type Mailer struct {
	client Client
	logger *slog.Logger
}

// Result is the outcome of an accepted SendEmail call.
type Result struct {
	MessageID string
	Output    *sesv2.SendEmailOutput
}

// Annotate stores the SES message ID in h under MessageIDHeader.
// Nil results, nil headers and empty identifiers are ignored.
func (r *Result) Annotate(h email.Header) {
	if r == nil || h == nil || r.MessageID == "" {
		return
	}
	h.Set(MessageIDHeader, r.MessageID)
}

// New creates an SES-backed mailer.
// Config values are passed to the AWS SDK as-is; only the ones that are set
// override the SDK default chain.
func New(ctx context.Context, cfg Config, opts ...Option) (*Mailer, error) {
	options := &options{}
	for _, opt := range opts {
		opt(options)
	}

	log := options.logger
	if log == nil {
		log = logger.Discard()
	}

	if options.client != nil {
		return &Mailer{client: options.client, logger: log}, nil
	}

	var awsOptions []func(*config.LoadOptions) error
	if cfg.Region != "" {
		awsOptions = append(awsOptions, config.WithRegion(cfg.Region))
	}

	// Static credentials only when both halves are provided (fallback to IAM roles/env vars otherwise)
	if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
		awsOptions = append(awsOptions,
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretKey,
				cfg.SessionToken,
			)),
		)
	}

	if cfg.MaxAttempts > 0 {
		awsOptions = append(awsOptions, config.WithRetryMaxAttempts(cfg.MaxAttempts))
	}

	if options.httpClient != nil {
		awsOptions = append(awsOptions, config.WithHTTPClient(options.httpClient))
	}

	awsOptions = append(awsOptions, options.configOptions...)

	awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := sesv2.NewFromConfig(awsConfig, func(o *sesv2.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		for _, opt := range options.clientOptions {
			opt(o)
		}
	})

	return &Mailer{client: client, logger: log}, nil
}

// MustNew creates an SES mailer that panics on error.
// Follows framework pattern of failing fast during initialization rather than
// allowing broken services to start.
func MustNew(ctx context.Context, cfg Config, opts ...Option) *Mailer {
	m, err := New(ctx, cfg, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// NewFromEnv loads Config from the environment and creates a mailer.
func NewFromEnv(ctx context.Context, opts ...Option) (*Mailer, error) {
	var cfg Config
	if err := appconfig.Load(&cfg); err != nil {
		return nil, err
	}
	return New(ctx, cfg, opts...)
}

// Deliver sends msg with a single SendEmail call.
// Errors from the SES client are returned unchanged: there is no retry beyond
// what the SDK itself is configured to do, and no error translation.
// The message is never modified; use Result.Annotate to record the ID on it.
func (m *Mailer) Deliver(ctx context.Context, msg email.Outgoing) (*Result, error) {
	input, err := BuildInput(msg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	out, err := m.client.SendEmail(ctx, input)
	if err != nil {
		m.logger.ErrorContext(ctx, "email delivery failed",
			logger.Provider(providerName),
			logger.Error(err),
			logger.ErrorCode(ErrorCode(err)),
			logger.Elapsed(start),
		)
		return nil, err
	}

	id := aws.ToString(out.MessageId)
	m.logger.DebugContext(ctx, "email accepted",
		logger.Provider(providerName),
		logger.MessageID(id),
		logger.Recipients(recipientCount(input)),
		logger.Elapsed(start),
	)

	return &Result{MessageID: id, Output: out}, nil
}

// Send implements email.Sender on top of Deliver.
func (m *Mailer) Send(ctx context.Context, msg email.Outgoing) (*email.Result, error) {
	res, err := m.Deliver(ctx, msg)
	if err != nil {
		return nil, err
	}
	return &email.Result{Provider: providerName, MessageID: res.MessageID}, nil
}

// Settings returns an empty settings map. Mail pipelines that inspect
// delivery-method settings expect a non-nil map.
func (m *Mailer) Settings() map[string]any {
	return map[string]any{}
}

func recipientCount(input *sesv2.SendEmailInput) int {
	d := input.Destination
	return len(d.ToAddresses) + len(d.CcAddresses) + len(d.BccAddresses)
}
