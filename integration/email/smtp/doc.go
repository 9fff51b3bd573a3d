// Package smtp delivers email.Outgoing messages over standard SMTP.
//
// It transmits the message's own serialized bytes, the same payload the SES
// provider sends, to every to/cc/bcc recipient resolved by
// email.ResolveDestination, in a single transaction.
//
// # Usage
//
//	client, err := smtp.New(smtp.Config{
//		Host:     "smtp.example.com",
//		Port:     587,
//		Username: "user@example.com",
//		Password: "password",
//		TLSMode:  "starttls",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	res, err := client.Send(ctx, msg)
//	// res.MessageID is the message's Message-ID header
//
// # TLS Modes
//
//   - starttls: plain connection upgraded with STARTTLS (port 587)
//   - tls: implicit TLS from the first byte (port 465)
//   - plain: no encryption, for local relays and test servers
//
// Authentication uses PLAIN and is enabled when Username is set.
//
// # Error Handling
//
// Configuration problems wrap email.ErrInvalidConfig, unusable messages wrap
// email.ErrInvalidParams, and every connection or protocol failure is joined
// with email.ErrFailedToSendEmail.
package smtp
