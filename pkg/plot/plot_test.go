package plot

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ranjanr/roach/pkg/store"
)

func samplePoints() []store.Point {
	return []store.Point{
		{Step: 0, Value: 1.0},
		{Step: 1, Value: 0.5},
	}
}

func TestWriteCSVIncludesHeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, samplePoints()))

	out := buf.String()
	assert.Contains(t, out, "step,value")
	assert.Contains(t, out, "0,1")
	assert.Contains(t, out, "1,0.5")
}

func TestWriteCSVEmptyPointsStillWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "step,value\n", buf.String())
}

func TestWriteLaTeXIncludesTabularEnvironment(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLaTeX(&buf, samplePoints()))

	out := buf.String()
	assert.Contains(t, out, `\begin{tabular}{rr}`)
	assert.Contains(t, out, `\end{tabular}`)
	assert.Contains(t, out, "0 & 1 \\\\")
}
