package email

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/textproto"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Header holds custom message headers and delivery metadata.
// Keys are stored in canonical MIME form.
type Header map[string]string

// Get returns the value stored under key, ignoring key case.
func (h Header) Get(key string) string {
	return h[textproto.CanonicalMIMEHeaderKey(key)]
}

// Set stores value under the canonical form of key.
func (h Header) Set(key, value string) {
	h[textproto.CanonicalMIMEHeaderKey(key)] = value
}

// Del removes key.
func (h Header) Del(key string) {
	delete(h, textproto.CanonicalMIMEHeaderKey(key))
}

// Attachment is a file carried in a multipart/mixed message.
type Attachment struct {
	Filename    string
	ContentType string // detected from Filename when empty
	Data        []byte
}

// Message is a fully-formed outgoing email assembled by the caller.
// Senders serialize it with Bytes and never modify recipients or content.
type Message struct {
	From        []string // first element is the envelope sender
	To          []string
	Cc          []string
	Bcc         []string // never written to the serialized headers
	ReplyTo     []string
	Subject     string
	TextBody    string
	HTMLBody    string
	Attachments []Attachment
	Headers     Header

	// Date and MessageID are set by Stamp, or generated per serialization when empty.
	Date      time.Time
	MessageID string
}

// Compile-time checks for the capabilities Message exposes.
var (
	_ Outgoing         = (*Message)(nil)
	_ FlatAddressLists = (*Message)(nil)
)

// headers that are always derived from Message fields
var reservedHeaders = map[string]struct{}{
	"Bcc":                       {},
	"Cc":                        {},
	"Content-Transfer-Encoding": {},
	"Content-Type":              {},
	"Date":                      {},
	"From":                      {},
	"Message-Id":                {},
	"Mime-Version":              {},
	"Reply-To":                  {},
	"Subject":                   {},
	"To":                        {},
}

// SenderAddress returns the first From address, or an empty string.
func (m *Message) SenderAddress() string {
	if len(m.From) == 0 {
		return ""
	}
	return m.From[0]
}

// ReplyToAddresses returns the Reply-To list.
func (m *Message) ReplyToAddresses() []string { return m.ReplyTo }

// ToAddresses returns the primary recipients.
func (m *Message) ToAddresses() []string { return m.To }

// CcAddresses returns the carbon-copy recipients.
func (m *Message) CcAddresses() []string { return m.Cc }

// BccAddresses returns the blind-copy recipients.
func (m *Message) BccAddresses() []string { return m.Bcc }

// Header returns the message header map, allocating it if needed.
func (m *Message) Header() Header {
	if m.Headers == nil {
		m.Headers = make(Header)
	}
	return m.Headers
}

// Validate checks that the message has a sender, at least one recipient,
// and that every address parses as RFC 5322.
func (m *Message) Validate() error {
	if m.SenderAddress() == "" {
		return fmt.Errorf("%w: sender address is required", ErrInvalidParams)
	}
	if len(m.To)+len(m.Cc)+len(m.Bcc) == 0 {
		return fmt.Errorf("%w: at least one recipient is required", ErrInvalidParams)
	}
	for _, list := range [][]string{m.From, m.To, m.Cc, m.Bcc, m.ReplyTo} {
		for _, addr := range list {
			if _, err := mail.ParseAddress(addr); err != nil {
				return fmt.Errorf("%w: invalid address %q", ErrInvalidParams, addr)
			}
		}
	}
	return nil
}

// String returns the serialized message, or an empty string if it cannot be serialized.
func (m *Message) String() string {
	b, err := m.Bytes()
	if err != nil {
		return ""
	}
	return string(b)
}

// Stamp assigns Date and MessageID when they are empty so that every later
// serialization carries the same identity. It must not run concurrently with
// other use of m.
func (m *Message) Stamp() {
	if m.Date.IsZero() {
		m.Date = time.Now()
	}
	if m.MessageID == "" {
		m.MessageID = newMessageID(m.SenderAddress())
	}
}

// Bytes serializes the message to its RFC 5322 wire form with CRLF line endings.
// It does not modify m. An empty Date or MessageID is filled in the output only,
// so unstamped messages get a fresh identity per call; use Stamp to fix it.
func (m *Message) Bytes() ([]byte, error) {
	date, messageID := m.Date, m.MessageID
	if date.IsZero() {
		date = time.Now()
	}
	if messageID == "" {
		messageID = newMessageID(m.SenderAddress())
	}

	contentHeader, body, err := m.entity()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writeHeader(&buf, "Date", date.Format(time.RFC1123Z))
	writeHeader(&buf, "From", formatAddressList(m.From))
	if len(m.To) > 0 {
		writeHeader(&buf, "To", formatAddressList(m.To))
	}
	if len(m.Cc) > 0 {
		writeHeader(&buf, "Cc", formatAddressList(m.Cc))
	}
	if len(m.ReplyTo) > 0 {
		writeHeader(&buf, "Reply-To", formatAddressList(m.ReplyTo))
	}
	writeHeader(&buf, "Subject", mime.QEncoding.Encode("utf-8", m.Subject))
	writeHeader(&buf, "Message-ID", messageID)
	writeHeader(&buf, "MIME-Version", "1.0")

	for _, key := range sortedKeys(m.Headers) {
		if _, ok := reservedHeaders[textproto.CanonicalMIMEHeaderKey(key)]; ok {
			continue
		}
		writeHeader(&buf, key, m.Headers[key])
	}
	for _, key := range sortedKeys(contentHeader) {
		writeHeader(&buf, key, contentHeader.Get(key))
	}

	buf.WriteString("\r\n")
	buf.Write(body)
	return buf.Bytes(), nil
}

// entity builds the top-level MIME entity: a single text part, an
// alternative of text and html, or a mixed container with attachments.
func (m *Message) entity() (textproto.MIMEHeader, []byte, error) {
	header, body, err := m.content()
	if err != nil || len(m.Attachments) == 0 {
		return header, body, err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	pw, err := mw.CreatePart(header)
	if err != nil {
		return nil, nil, err
	}
	if _, err := pw.Write(body); err != nil {
		return nil, nil, err
	}

	for _, a := range m.Attachments {
		contentType := a.ContentType
		if contentType == "" {
			contentType = detectContentType(a.Filename)
		}
		mediaType, params, err := mime.ParseMediaType(contentType)
		if err != nil {
			mediaType, params = "application/octet-stream", make(map[string]string)
		}
		params["name"] = a.Filename
		h := make(textproto.MIMEHeader)
		h.Set("Content-Type", mime.FormatMediaType(mediaType, params))
		h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.Filename}))
		h.Set("Content-Transfer-Encoding", "base64")
		pw, err := mw.CreatePart(h)
		if err != nil {
			return nil, nil, err
		}
		if err := writeBase64(pw, a.Data); err != nil {
			return nil, nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, nil, err
	}

	mixed := make(textproto.MIMEHeader)
	mixed.Set("Content-Type", "multipart/mixed; boundary="+mw.Boundary())
	return mixed, buf.Bytes(), nil
}

func (m *Message) content() (textproto.MIMEHeader, []byte, error) {
	switch {
	case m.HTMLBody != "" && m.TextBody != "":
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		for _, part := range []struct{ contentType, text string }{
			{"text/plain", m.TextBody},
			{"text/html", m.HTMLBody},
		} {
			h, body, err := textPart(part.contentType, part.text)
			if err != nil {
				return nil, nil, err
			}
			pw, err := mw.CreatePart(h)
			if err != nil {
				return nil, nil, err
			}
			if _, err := pw.Write(body); err != nil {
				return nil, nil, err
			}
		}
		if err := mw.Close(); err != nil {
			return nil, nil, err
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Type", "multipart/alternative; boundary="+mw.Boundary())
		return h, buf.Bytes(), nil
	case m.HTMLBody != "":
		return textPart("text/html", m.HTMLBody)
	default:
		return textPart("text/plain", m.TextBody)
	}
}

func textPart(contentType, text string) (textproto.MIMEHeader, []byte, error) {
	var buf bytes.Buffer
	qp := quotedprintable.NewWriter(&buf)
	if _, err := qp.Write([]byte(text)); err != nil {
		return nil, nil, err
	}
	if err := qp.Close(); err != nil {
		return nil, nil, err
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Type", contentType+"; charset=UTF-8")
	h.Set("Content-Transfer-Encoding", "quoted-printable")
	return h, buf.Bytes(), nil
}

// writeBase64 writes data as base64 wrapped at 76 characters per line.
func writeBase64(w io.Writer, data []byte) error {
	const lineLength = 76
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 0 {
		n := min(lineLength, len(encoded))
		if _, err := io.WriteString(w, encoded[:n]+"\r\n"); err != nil {
			return err
		}
		encoded = encoded[n:]
	}
	return nil
}

// writeHeader writes a single header line, dropping CR and LF from the value
// to prevent header injection.
func writeHeader(buf *bytes.Buffer, key, value string) {
	value = strings.NewReplacer("\r", "", "\n", "").Replace(value)
	buf.WriteString(key)
	buf.WriteString(": ")
	buf.WriteString(value)
	buf.WriteString("\r\n")
}

// formatAddressList renders addresses for a header. Addresses that parse are
// re-encoded (display names get RFC 2047 encoding); the rest are kept verbatim.
func formatAddressList(addrs []string) string {
	out := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		if parsed, err := mail.ParseAddress(addr); err == nil {
			out = append(out, parsed.String())
			continue
		}
		out = append(out, addr)
	}
	return strings.Join(out, ", ")
}

func newMessageID(sender string) string {
	domain := "localhost"
	if parsed, err := mail.ParseAddress(sender); err == nil {
		if i := strings.LastIndexByte(parsed.Address, '@'); i >= 0 && i < len(parsed.Address)-1 {
			domain = parsed.Address[i+1:]
		}
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}

func detectContentType(filename string) string {
	if i := strings.LastIndexByte(filename, '.'); i >= 0 {
		if ct := mime.TypeByExtension(filename[i:]); ct != "" {
			return ct
		}
	}
	return "application/octet-stream"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
