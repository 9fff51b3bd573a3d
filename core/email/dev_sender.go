package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DevSender implements Sender for local development.
// It saves each message as a raw .eml file plus JSON metadata
// instead of sending it through an email service.
type DevSender struct {
	dir string
}

// NewDevSender creates a development email sender that saves emails to disk.
// The directory will be created if it doesn't exist.
func NewDevSender(dir string) Sender {
	return &DevSender{dir: dir}
}

// emailMetadata contains the delivery data saved to JSON (excluding the raw message).
type emailMetadata struct {
	Timestamp string   `json:"timestamp"`
	MessageID string   `json:"message_id"`
	From      string   `json:"from"`
	To        []string `json:"to"`
	Cc        []string `json:"cc,omitempty"`
	Bcc       []string `json:"bcc,omitempty"`
	ReplyTo   []string `json:"reply_to,omitempty"`
	Subject   string   `json:"subject,omitempty"`
}

// Send writes the raw message and its metadata to the configured directory.
func (d *DevSender) Send(ctx context.Context, msg Outgoing) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dest, err := ResolveDestination(msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	if len(dest.All()) == 0 {
		return nil, fmt.Errorf("%w: at least one recipient is required", ErrInvalidParams)
	}

	raw, err := msg.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to serialize message: %w", ErrFailedToSendEmail, err)
	}

	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create directory: %v", ErrFailedToSendEmail, err)
	}

	// Timestamp prefix keeps files in chronological order
	now := time.Now()
	id := uuid.NewString()

	var subject string
	switch m := msg.(type) {
	case *Message:
		subject = m.Subject
	case Envelope:
		if m.Message != nil {
			subject = m.Subject
		}
	}
	// The id suffix keeps same-subject messages from the same second apart
	baseFilename := now.Format("2006_01_02_150405")
	if subject != "" {
		baseFilename += "_" + sanitizeFilename(subject)
	}
	baseFilename += "_" + id[:8]

	emlPath := filepath.Join(d.dir, baseFilename+".eml")
	if err := os.WriteFile(emlPath, raw, 0644); err != nil {
		return nil, fmt.Errorf("%w: failed to write message file: %v", ErrFailedToSendEmail, err)
	}

	metadata := emailMetadata{
		Timestamp: now.Format(time.RFC3339),
		MessageID: id,
		From:      msg.SenderAddress(),
		To:        dest.To,
		Cc:        dest.Cc,
		Bcc:       dest.Bcc,
		ReplyTo:   msg.ReplyToAddresses(),
		Subject:   subject,
	}
	jsonData, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal metadata: %v", ErrFailedToSendEmail, err)
	}

	jsonPath := filepath.Join(d.dir, baseFilename+".json")
	if err := os.WriteFile(jsonPath, jsonData, 0644); err != nil {
		return nil, fmt.Errorf("%w: failed to write JSON file: %v", ErrFailedToSendEmail, err)
	}

	return &Result{Provider: "dev", MessageID: id}, nil
}

// sanitizeRegex removes filesystem-unsafe characters from filenames
var sanitizeRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizeFilename converts a string into a safe, lowercase filename
// truncated to 100 characters.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = sanitizeRegex.ReplaceAllString(s, "")

	const maxLength = 100
	if len(s) > maxLength {
		s = s[:maxLength]
	}

	if s == "" {
		s = "email"
	}

	return strings.ToLower(s)
}
