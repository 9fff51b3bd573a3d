package ses_test

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailer/core/email"
	"github.com/dmitrymomot/mailer/integration/email/ses"
)

// rawOnly serializes but exposes no recipients.
type rawOnly struct{}

func (rawOnly) Bytes() ([]byte, error)     { return []byte("Subject: x\r\n\r\nbody"), nil }
func (rawOnly) SenderAddress() string      { return "a@x.com" }
func (rawOnly) ReplyToAddresses() []string { return nil }
func (rawOnly) Header() email.Header       { return email.Header{} }

func TestBuildInput_SingleSenderScenario(t *testing.T) {
	t.Parallel()

	msg := &email.Message{
		From:     []string{"a@x.com"},
		To:       []string{"b@x.com"},
		Cc:       []string{},
		Bcc:      nil,
		TextBody: "hi",
	}
	msg.Stamp()

	input, err := ses.BuildInput(msg)
	require.NoError(t, err)

	assert.Equal(t, msg.String(), string(input.Content.Raw.Data))
	assert.Nil(t, input.Content.Simple)
	assert.Equal(t, "a@x.com", aws.ToString(input.FromEmailAddress))
	assert.Equal(t, []string{"b@x.com"}, input.Destination.ToAddresses)
	assert.Nil(t, input.Destination.CcAddresses)
	assert.Nil(t, input.Destination.BccAddresses)
	assert.Nil(t, input.ReplyToAddresses)
}

func TestBuildInput_ListSenderScenario(t *testing.T) {
	t.Parallel()

	msg := &email.Message{
		From:    []string{"a@x.com", "a2@x.com"},
		To:      []string{"b@x.com", "c@x.com"},
		ReplyTo: []string{"r@x.com"},
	}

	input, err := ses.BuildInput(msg)
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", aws.ToString(input.FromEmailAddress))
	assert.Equal(t, []string{"b@x.com", "c@x.com"}, input.Destination.ToAddresses)
	assert.Equal(t, []string{"r@x.com"}, input.ReplyToAddresses)
}

func TestBuildInput_Mapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		msg     email.Outgoing
		from    string
		to      []string
		cc      []string
		bcc     []string
		replyTo []string
	}{
		{
			name: "display name sender is passed unchanged",
			msg:  &email.Message{From: []string{"App <noreply@x.com>"}, To: []string{"b@x.com"}},
			from: "App <noreply@x.com>",
			to:   []string{"b@x.com"},
		},
		{
			name: "cc and bcc keep order",
			msg: &email.Message{
				From: []string{"a@x.com"},
				To:   []string{"b@x.com"},
				Cc:   []string{"c2@x.com", "c1@x.com"},
				Bcc:  []string{"d@x.com"},
			},
			from: "a@x.com",
			to:   []string{"b@x.com"},
			cc:   []string{"c2@x.com", "c1@x.com"},
			bcc:  []string{"d@x.com"},
		},
		{
			name: "to is present even when empty",
			msg:  &email.Message{From: []string{"a@x.com"}, Bcc: []string{"d@x.com"}},
			from: "a@x.com",
			to:   []string{},
			bcc:  []string{"d@x.com"},
		},
		{
			name: "empty sender is sent for the provider to reject",
			msg:  &email.Message{To: []string{"b@x.com"}},
			from: "",
			to:   []string{"b@x.com"},
		},
		{
			name: "empty reply-to is omitted",
			msg:  &email.Message{From: []string{"a@x.com"}, To: []string{"b@x.com"}, ReplyTo: []string{}},
			from: "a@x.com",
			to:   []string{"b@x.com"},
		},
		{
			name: "envelope recipients override headers",
			msg: email.Envelope{
				Message:    &email.Message{From: []string{"a@x.com"}, To: []string{"b@x.com"}, Cc: []string{"c@x.com"}},
				Recipients: email.Destination{To: []string{"archive@x.com"}},
			},
			from: "a@x.com",
			to:   []string{"archive@x.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			input, err := ses.BuildInput(tt.msg)
			require.NoError(t, err)

			require.NotNil(t, input.FromEmailAddress)
			assert.Equal(t, tt.from, *input.FromEmailAddress)
			require.NotNil(t, input.Destination.ToAddresses)
			assert.Equal(t, tt.to, input.Destination.ToAddresses)
			assert.Equal(t, tt.cc, input.Destination.CcAddresses)
			assert.Equal(t, tt.bcc, input.Destination.BccAddresses)
			assert.Equal(t, tt.replyTo, input.ReplyToAddresses)
		})
	}
}

func TestBuildInput_CopiesAddressLists(t *testing.T) {
	t.Parallel()

	msg := &email.Message{From: []string{"a@x.com"}, To: []string{"b@x.com"}, Cc: []string{"c@x.com"}}
	input, err := ses.BuildInput(msg)
	require.NoError(t, err)

	input.Destination.ToAddresses[0] = "changed@x.com"
	input.Destination.CcAddresses[0] = "changed@x.com"
	assert.Equal(t, "b@x.com", msg.To[0])
	assert.Equal(t, "c@x.com", msg.Cc[0])
}

func TestBuildInput_NoDestinations(t *testing.T) {
	t.Parallel()

	_, err := ses.BuildInput(rawOnly{})
	assert.ErrorIs(t, err, email.ErrNoDestinations)
	assert.ErrorIs(t, err, email.ErrInvalidParams)
}
