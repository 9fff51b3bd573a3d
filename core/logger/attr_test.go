package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailer/core/logger"
)

func TestGroup(t *testing.T) {
	t.Parallel()
	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

// ============================================================================
// Error Handling Tests
// ============================================================================

func TestError(t *testing.T) {
	t.Parallel()
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestErrorCode(t *testing.T) {
	t.Parallel()
	attr := logger.ErrorCode("Throttling")
	assert.Equal(t, "error_code", attr.Key)
	assert.Equal(t, "Throttling", attr.Value.String())
	assert.True(t, logger.ErrorCode("").Equal(slog.Attr{}))
}

// ============================================================================
// Performance and Timing Tests
// ============================================================================

func TestDuration(t *testing.T) {
	t.Parallel()
	attr := logger.Duration(150 * time.Millisecond)
	assert.Equal(t, "duration", attr.Key)
	assert.Equal(t, 150*time.Millisecond, attr.Value.Duration())
}

func TestElapsed(t *testing.T) {
	t.Parallel()
	start := time.Now().Add(-time.Second)
	attr := logger.Elapsed(start)
	assert.Equal(t, "elapsed", attr.Key)
	assert.GreaterOrEqual(t, attr.Value.Duration(), time.Second)
}

// ============================================================================
// Email Delivery Tests
// ============================================================================

func TestDeliveryAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ses", logger.Provider("ses").Value.String())
	assert.Equal(t, "component", logger.Component("mailer").Key)
	assert.Equal(t, "service", logger.Service("api").Key)

	id := logger.MessageID("0100-abc")
	assert.Equal(t, "message_id", id.Key)
	assert.Equal(t, "0100-abc", id.Value.String())
	assert.True(t, logger.MessageID("").Equal(slog.Attr{}))

	n := logger.Recipients(3)
	assert.Equal(t, "recipients", n.Key)
	assert.Equal(t, int64(3), n.Value.Int64())
}
