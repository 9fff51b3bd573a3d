// Package email defines the outgoing message model shared by every delivery
// provider in this module, together with the Sender contract providers implement.
//
// # Messages
//
// A Message is assembled entirely by the caller and serializes itself to the
// RFC 5322 wire form providers transmit:
//
//	import "github.com/dmitrymomot/mailer/core/email"
//
//	msg := &email.Message{
//		From:     []string{"App <noreply@example.com>"},
//		To:       []string{"user@example.com"},
//		Cc:       []string{"audit@example.com"},
//		ReplyTo:  []string{"support@example.com"},
//		Subject:  "Welcome",
//		TextBody: "Thanks for joining.",
//		HTMLBody: "<p>Thanks for joining.</p>",
//	}
//
//	raw, err := msg.Bytes()
//
// Bodies are written as a single text part, a multipart/alternative of text and
// HTML, or a multipart/mixed container when attachments are present. Bcc
// recipients are never written to the headers. Bytes never modifies the
// message: an empty Date or Message-ID is generated for that serialization
// only. Call Stamp once to fix both before sharing the message:
//
//	msg.Stamp()
//
// # Destinations
//
// Providers resolve recipients once per send through ResolveDestination, which
// recognizes two capabilities:
//
//   - StructuredDestinations: an explicit recipient set, as carried by Envelope
//   - FlatAddressLists: to/cc/bcc read from the message itself, as carried by Message
//
// Structured destinations take precedence, so wrapping a Message in an Envelope
// delivers the same bytes to a different recipient set:
//
//	env := email.Envelope{
//		Message:    msg,
//		Recipients: email.Destination{Bcc: []string{"archive@example.com"}},
//	}
//
// # Sending
//
// Every provider implements Sender:
//
//	type Sender interface {
//		Send(ctx context.Context, msg Outgoing) (*Result, error)
//	}
//
// Senders never write into the message. The provider identifier is returned on
// Result; callers that keep it on the message do so explicitly:
//
//	res, err := sender.Send(ctx, msg)
//	if err != nil {
//		return err
//	}
//	res.Annotate(msg.Header())
//
// # Throttling
//
// NewThrottledSender waits on a Limiter before every send, which keeps a
// provider under its sending quota:
//
//	limiter := ratelimiter.MustNewBucket(ratelimiter.Config{Capacity: 14, RefillRate: 14, RefillInterval: time.Second})
//	sender := email.NewThrottledSender(sesMailer, limiter)
//
// # Development Mode
//
// DevSender saves each message as a raw .eml file plus JSON metadata instead of
// delivering it:
//
//	sender := email.NewDevSender("./dev_emails")
//
//	// Files created:
//	// ./dev_emails/2024_01_15_143052_welcome_1f3c9a2b.eml
//	// ./dev_emails/2024_01_15_143052_welcome_1f3c9a2b.json
//
// # Error Handling
//
//	switch {
//	case errors.Is(err, email.ErrInvalidParams):
//		// message failed local validation
//	case errors.Is(err, email.ErrFailedToSendEmail):
//		// provider or transport failure
//	case errors.Is(err, email.ErrInvalidConfig):
//		// provider misconfigured at construction
//	}
//
// The SES provider is the exception: it returns SDK errors unchanged.
package email
