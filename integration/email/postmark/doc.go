// Package postmark delivers email.Message values through Postmark's
// transactional API.
//
// Unlike the SES and SMTP providers, Postmark assembles MIME on its side, so
// the client maps the message's structured fields (sender, recipients,
// reply-to, subject, bodies, custom headers, attachments) instead of sending
// the serialized bytes.
//
// # Usage
//
//	client, err := postmark.New(postmark.Config{
//		ServerToken:   "server-token",
//		MessageStream: "outbound",
//		TrackOpens:    true,
//		TrackLinks:    "HtmlOnly",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	res, err := client.Send(ctx, msg)
//
// # Error Handling
//
// Transport errors and non-zero Postmark error codes are joined with
// email.ErrFailedToSendEmail; messages that are not *email.Message or
// email.Envelope, or fail Message.Validate, wrap email.ErrInvalidParams.
package postmark
