// Package ses delivers fully-formed email messages through the Amazon SES v2
// SendEmail API, as an alternative to an SMTP transport.
//
// The mailer translates an email.Outgoing message into a single SendEmail
// request carrying the raw RFC 5322 bytes, calls the API once, and returns the
// SES message ID. Transport, request signing, credential resolution and retries
// belong to the AWS SDK.
//
// # Usage
//
//	import (
//		"github.com/dmitrymomot/mailer/core/email"
//		"github.com/dmitrymomot/mailer/integration/email/ses"
//	)
//
//	mailer, err := ses.New(ctx, ses.Config{Region: "eu-west-1"})
//	if err != nil {
//		return err
//	}
//
//	msg := &email.Message{
//		From:     []string{"noreply@example.com"},
//		To:       []string{"user@example.com"},
//		Subject:  "Welcome",
//		TextBody: "Thanks for joining.",
//	}
//
//	res, err := mailer.Deliver(ctx, msg)
//	if err != nil {
//		return err
//	}
//	res.Annotate(msg.Header()) // optional: keep the ID on the message
//
// # Request Mapping
//
//   - Content.Raw.Data: the serialized message
//   - FromEmailAddress: the first From address
//   - Destination.ToAddresses: always present, in message order
//   - Destination.CcAddresses, Destination.BccAddresses: only when non-empty
//   - ReplyToAddresses: only when non-empty
//
// Recipients come from email.ResolveDestination, so an email.Envelope sends
// the message bytes to its explicit recipient set instead of the header fields.
//
// # Configuration
//
// Config fields are optional and passed straight to the SDK. They can be
// loaded from the environment with NewFromEnv:
//
//	AWS_SES_REGION, AWS_SES_ACCESS_KEY_ID, AWS_SES_SECRET_ACCESS_KEY,
//	AWS_SES_SESSION_TOKEN, AWS_SES_ENDPOINT, AWS_SES_MAX_ATTEMPTS
//
// Further SDK tuning goes through WithConfigOption, WithClientOption and
// WithHTTPClient. WithClient injects a mock for tests.
//
// # Error Handling
//
// Deliver returns SDK errors unchanged, with no retry or wrapping of its own.
// ErrorCode and IsThrottled inspect them without translation:
//
//	if _, err := mailer.Deliver(ctx, msg); err != nil {
//		if ses.IsThrottled(err) {
//			// back off and requeue
//		}
//		return err
//	}
//
// Only local failures (a message that cannot be serialized or exposes no
// recipients) are reported as email.ErrInvalidParams, before any request is sent.
package ses
