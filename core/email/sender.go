package email

import (
	"context"
	"fmt"
)

// MessageIDHeader is the header key Result.Annotate stores the provider message identifier under.
const MessageIDHeader = "X-Provider-Message-Id"

// Outgoing is what a Sender consumes: a message that can serialize itself to
// its raw wire form and exposes sender, reply-to and a mutable header map.
type Outgoing interface {
	Bytes() ([]byte, error)
	SenderAddress() string
	ReplyToAddresses() []string
	Header() Header
}

// StructuredDestinations is implemented by messages that carry an explicit
// recipient set separate from their headers.
type StructuredDestinations interface {
	Destinations() Destination
}

// FlatAddressLists is implemented by messages whose recipients are read
// directly from their to/cc/bcc fields.
type FlatAddressLists interface {
	ToAddresses() []string
	CcAddresses() []string
	BccAddresses() []string
}

// Destination groups recipients by kind.
type Destination struct {
	To  []string
	Cc  []string
	Bcc []string
}

// All returns to, cc and bcc recipients in that order.
func (d Destination) All() []string {
	all := make([]string, 0, len(d.To)+len(d.Cc)+len(d.Bcc))
	all = append(all, d.To...)
	all = append(all, d.Cc...)
	return append(all, d.Bcc...)
}

// Envelope pairs a message with a recipient set that overrides its to/cc/bcc
// fields, e.g. to deliver a copy to an address not present in the headers.
// Several envelopes may share one Message; stamp it first if the copies
// must carry the same Date and Message-ID.
type Envelope struct {
	*Message
	Recipients Destination
}

var (
	_ StructuredDestinations = Envelope{}
	_ Outgoing               = Envelope{}
)

// Destinations returns the envelope recipients.
func (e Envelope) Destinations() Destination { return e.Recipients }

// Bytes serializes the wrapped message. An envelope without a message
// fails with ErrInvalidParams.
func (e Envelope) Bytes() ([]byte, error) {
	if e.Message == nil {
		return nil, fmt.Errorf("%w: envelope has no message", ErrInvalidParams)
	}
	return e.Message.Bytes()
}

// SenderAddress returns the wrapped message sender, or an empty string.
func (e Envelope) SenderAddress() string {
	if e.Message == nil {
		return ""
	}
	return e.Message.SenderAddress()
}

// ReplyToAddresses returns the wrapped message Reply-To list.
func (e Envelope) ReplyToAddresses() []string {
	if e.Message == nil {
		return nil
	}
	return e.Message.ReplyToAddresses()
}

// Header returns the wrapped message headers, or nil without a message.
func (e Envelope) Header() Header {
	if e.Message == nil {
		return nil
	}
	return e.Message.Header()
}

// ResolveDestination picks the recipient set for msg. Structured destinations
// take precedence over flat address lists.
func ResolveDestination(msg Outgoing) (Destination, error) {
	switch v := msg.(type) {
	case StructuredDestinations:
		return v.Destinations(), nil
	case FlatAddressLists:
		return Destination{
			To:  v.ToAddresses(),
			Cc:  v.CcAddresses(),
			Bcc: v.BccAddresses(),
		}, nil
	}
	return Destination{}, ErrNoDestinations
}

// Sender delivers outgoing messages through a provider.
type Sender interface {
	Send(ctx context.Context, msg Outgoing) (*Result, error)
}

// Result describes an accepted send request.
type Result struct {
	Provider  string
	MessageID string
}

// Annotate stores the provider message identifier in h under MessageIDHeader.
// Nil results, nil headers and empty identifiers are ignored.
func (r *Result) Annotate(h Header) {
	if r == nil || h == nil || r.MessageID == "" {
		return
	}
	h.Set(MessageIDHeader, r.MessageID)
}
