package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"billetera/internal/logging"
)

func TestNew(t *testing.T) {
	t.Parallel()

	l, err := logging.New("debug", logging.FormatJSON)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = logging.New(" WARN ", logging.FormatConsole)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestNew_Rejects(t *testing.T) {
	t.Parallel()

	_, err := logging.New("loud", logging.FormatJSON)
	assert.Error(t, err)

	_, err = logging.New("info", "xml")
	assert.Error(t, err)
}

func TestOrNop(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, logging.OrNop(nil))
	l := zap.NewExample()
	assert.Same(t, l, logging.OrNop(l))
}

func TestRedacted(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	zap.New(core).Info("confirm", logging.Redacted("session", "abc123"), logging.Redacted("empty", ""))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Len(t, fields["session"], 12)
	assert.NotEqual(t, "abc123", fields["session"])
	assert.NotContains(t, fields, "empty")
}
