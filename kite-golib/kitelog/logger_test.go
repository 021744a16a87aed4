package kitelog

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, zapcore.InfoLevel)

	l.Debugf("hidden %d", 1)
	l.Printf("shown %d", 2)
	l.Warnf("warned %s", "x")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 2")
	assert.Contains(t, out, "warned x")
	assert.False(t, l.DebugEnabled())
}

func TestDurations(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, zapcore.DebugLevel).WithDurations()
	l.Durations.Record("parse", time.Millisecond)
	l.Durations.Record("infer", 3*time.Millisecond)
	assert.Equal(t, 4*time.Millisecond, l.Durations.Total())

	l.Durations.Flush(l)
	out := buf.String()
	assert.True(t, strings.Contains(out, "parse"))
	assert.True(t, strings.Contains(out, "25.0%"))
	assert.True(t, strings.Contains(out, "total"))
	assert.Empty(t, l.Durations)

	// nothing recorded, nothing written
	buf.Reset()
	l.Durations.Flush(l)
	assert.Empty(t, buf.String())
}

func TestDurationsTime(t *testing.T) {
	var d Durations
	stop := d.Time("sleep")
	time.Sleep(time.Millisecond)
	stop()

	require.Len(t, d, 1)
	assert.Equal(t, "sleep", d[0].name)
	assert.True(t, d.Total() >= time.Millisecond)
}
