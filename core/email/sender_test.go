package email_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailer/core/email"
)

// headerOnly exposes neither destination capability.
type headerOnly struct{ msg *email.Message }

func (h headerOnly) Bytes() ([]byte, error)     { return h.msg.Bytes() }
func (h headerOnly) SenderAddress() string      { return h.msg.SenderAddress() }
func (h headerOnly) ReplyToAddresses() []string { return nil }
func (h headerOnly) Header() email.Header       { return h.msg.Header() }

func TestEnvelope_WithoutMessage(t *testing.T) {
	t.Parallel()

	env := email.Envelope{Recipients: email.Destination{To: []string{"b@x.com"}}}

	_, err := env.Bytes()
	assert.ErrorIs(t, err, email.ErrInvalidParams)
	assert.Empty(t, env.SenderAddress())
	assert.Nil(t, env.ReplyToAddresses())
	assert.Nil(t, env.Header())

	dest, err := email.ResolveDestination(env)
	require.NoError(t, err)
	assert.Equal(t, []string{"b@x.com"}, dest.To)
}

func TestEnvelope_DelegatesToMessage(t *testing.T) {
	t.Parallel()

	msg := &email.Message{
		From:     []string{"a@x.com"},
		To:       []string{"b@x.com"},
		ReplyTo:  []string{"r@x.com"},
		TextBody: "hi",
	}
	msg.Stamp()
	env := email.Envelope{Message: msg}

	raw, err := env.Bytes()
	require.NoError(t, err)
	assert.Equal(t, msg.String(), string(raw))
	assert.Equal(t, "a@x.com", env.SenderAddress())
	assert.Equal(t, []string{"r@x.com"}, env.ReplyToAddresses())

	env.Header().Set("X-Trace", "1")
	assert.Equal(t, "1", msg.Headers.Get("X-Trace"))
}

func TestResolveDestination(t *testing.T) {
	t.Parallel()

	msg := &email.Message{
		From: []string{"a@x.com"},
		To:   []string{"b@x.com"},
		Cc:   []string{"c@x.com"},
		Bcc:  []string{"d@x.com"},
	}

	t.Run("flat address lists", func(t *testing.T) {
		t.Parallel()

		dest, err := email.ResolveDestination(msg)
		require.NoError(t, err)
		assert.Equal(t, email.Destination{
			To:  []string{"b@x.com"},
			Cc:  []string{"c@x.com"},
			Bcc: []string{"d@x.com"},
		}, dest)
	})

	t.Run("structured destinations win", func(t *testing.T) {
		t.Parallel()

		env := email.Envelope{
			Message:    msg,
			Recipients: email.Destination{Bcc: []string{"archive@x.com"}},
		}

		dest, err := email.ResolveDestination(env)
		require.NoError(t, err)
		assert.Empty(t, dest.To)
		assert.Empty(t, dest.Cc)
		assert.Equal(t, []string{"archive@x.com"}, dest.Bcc)
	})

	t.Run("no capability", func(t *testing.T) {
		t.Parallel()

		_, err := email.ResolveDestination(headerOnly{msg})
		assert.ErrorIs(t, err, email.ErrNoDestinations)
	})
}

func TestDestination_All(t *testing.T) {
	t.Parallel()

	dest := email.Destination{
		To:  []string{"b@x.com", "c@x.com"},
		Bcc: []string{"d@x.com"},
	}
	assert.Equal(t, []string{"b@x.com", "c@x.com", "d@x.com"}, dest.All())
	assert.Empty(t, email.Destination{}.All())
}

func TestResult_Annotate(t *testing.T) {
	t.Parallel()

	msg := &email.Message{}
	res := &email.Result{Provider: "ses", MessageID: "0100-abc"}
	res.Annotate(msg.Header())
	assert.Equal(t, "0100-abc", msg.Headers.Get(email.MessageIDHeader))

	assert.NotPanics(t, func() {
		var nilResult *email.Result
		nilResult.Annotate(msg.Header())
		res.Annotate(nil)
	})

	fresh := &email.Message{}
	(&email.Result{}).Annotate(fresh.Header())
	assert.Empty(t, fresh.Headers)
}
