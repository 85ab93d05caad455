package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger_Formats(t *testing.T) {
	for _, format := range []string{"json", "console", ""} {
		l, err := NewLogger(LogConfig{Level: "debug", Format: format})
		require.NoError(t, err, format)
		assert.NotNil(t, l)
	}
}

func TestNewLogger_BadOutputPath(t *testing.T) {
	_, err := NewLogger(LogConfig{OutputPaths: []string{"/nonexistent-dir/gradplan/log.txt"}})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel(" error "))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestZapLogger_FieldsAndNames(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewLoggerFromCore(core).Named("planner").With(String("run_id", "r1"))

	l.Info("plan finished",
		Int("programs", 3),
		Int64("latency_ms", 42),
		Float64("gpa", 3.6),
		Bool("adjusted", true),
		Duration("took", 2*time.Second),
		Err(errors.New("boom")),
		Any("countries", []string{"Germany"}),
	)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "plan finished", entry.Message)
	assert.Equal(t, "planner", entry.LoggerName)

	ctx := entry.ContextMap()
	assert.Equal(t, "r1", ctx["run_id"])
	assert.Equal(t, int64(3), ctx["programs"])
	assert.Equal(t, true, ctx["adjusted"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestErr_Nil(t *testing.T) {
	assert.Equal(t, "<nil>", Err(nil).Value)
}

func TestDefault_SetAndIgnoreNil(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	core, logs := observer.New(zapcore.InfoLevel)
	SetDefault(NewLoggerFromCore(core))
	SetDefault(nil)

	Default().Warn("careful")
	assert.Equal(t, 1, logs.Len())
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger().Named("x").With(String("k", "v"))
	l.Debug("a")
	l.Info("b")
	l.Warn("c")
	l.Error("d")
	assert.NoError(t, l.Sync())
}

func TestSetLevel(t *testing.T) {
	l, err := NewLogger(LogConfig{Level: "info"})
	require.NoError(t, err)
	child := l.Named("http")

	zl := child.(*zapLogger)
	assert.False(t, zl.z.Core().Enabled(zapcore.DebugLevel))

	require.True(t, SetLevel(l, "debug"))
	assert.True(t, zl.z.Core().Enabled(zapcore.DebugLevel), "children share the level")

	assert.False(t, SetLevel(NewNopLogger(), "debug"))
	assert.False(t, SetLevel(NewLoggerFromCore(zapcore.NewNopCore()), "debug"))
}
