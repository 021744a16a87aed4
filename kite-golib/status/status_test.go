package status

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionMetrics(t *testing.T) {
	s := NewSection("status test")
	require.Equal(t, s, NewSection("status test"))

	s.Counter("calls").Add(1200)
	s.Ratio("hits").Hit()
	s.Ratio("hits").Miss()
	s.Breakdown("kinds").HitAndAdd("a")
	s.Breakdown("kinds").HitAndAdd("a")
	s.Breakdown("kinds").HitAndAdd("b")
	s.Breakdown("kinds").HitAndAdd("b")

	assert.EqualValues(t, 1200, s.Counter("calls").GetValue())
	assert.Equal(t, 50.0, s.Ratio("hits").Value())
	assert.Equal(t, map[string]float64{"a": 50, "b": 50}, s.Breakdown("kinds").Value())

	var buf bytes.Buffer
	require.NoError(t, Write(&buf))
	out := buf.String()
	assert.Contains(t, out, "[status test]")
	assert.Contains(t, out, "1,200")
	assert.Contains(t, out, "50.0% of 2")
}
