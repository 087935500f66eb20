package engine

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdash/internal/models"
)

func TestWriteCSVRoundTrip(t *testing.T) {
	tb := scenarioTable(t)
	spec, err := BuildFilterSpec(scenarioOptions(t, tb), models.Selection{
		Categories: map[string][]string{"Payment": {"Cash"}},
	})
	require.NoError(t, err)
	filtered := Apply(tb, spec)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, filtered))

	back, err := Load(ExportFileName, buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, filtered.Len(), back.Len())
	assert.Equal(t, filtered.Names(), back.Names())
	assert.Equal(t, filtered.Row(1), back.Row(1))
}

func TestWriteCSVQuotesAndEmptyTable(t *testing.T) {
	tb := NewTable([]string{"Product, name", "Note"}, [][]string{{"Tea, green", `say "hi"`}})

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tb))
	assert.Equal(t, "\"Product, name\",Note\n\"Tea, green\",\"say \"\"hi\"\"\"\n", buf.String())

	back, err := Load("x.csv", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, tb.Row(0), back.Row(0))

	buf.Reset()
	require.NoError(t, WriteCSV(&buf, tb.Select(nil)))
	back, err = Load("x.csv", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 0, back.Len())
	assert.Equal(t, tb.Names(), back.Names())
}
