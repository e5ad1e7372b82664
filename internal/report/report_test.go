package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/echoes/internal/normalize"
	"github.com/MikeSquared-Agency/echoes/internal/stats"
)

func strp(s string) *string { return &s }

func sampleRows() []stats.Row {
	zone := normalize.Zone(normalize.DefaultOffset)
	return []stats.Row{
		{Message: normalize.Message{SenderName: "林", Content: strp("晚安 good\nnight"), Timestamp: time.Date(2024, 2, 14, 23, 0, 0, 0, zone)}, WordCount: 3},
		{Message: normalize.Message{SenderName: "Him", Timestamp: time.Date(2024, 2, 14, 22, 0, 0, 0, zone)}, WordCount: 0},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestWriteRows_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRows(&buf, sampleRows(), FormatTable, 80))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Timestamp")
	assert.Contains(t, lines[2], "晚安 good night")
	assert.Contains(t, lines[3], noContentLabel)

	// Every line has the same display width despite wide runes.
	for _, l := range lines {
		assert.Equal(t, runewidth.StringWidth(lines[0]), runewidth.StringWidth(l), "line %q", l)
	}
}

func TestWriteRows_TableTruncatesLongMessages(t *testing.T) {
	rows := sampleRows()[:1]
	rows[0].Content = strp(strings.Repeat("word ", 100))

	var buf bytes.Buffer
	require.NoError(t, WriteRows(&buf, rows, FormatTable, 60))
	assert.Contains(t, buf.String(), "…")
}

func TestWriteRows_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRows(&buf, sampleRows(), FormatJSON, 0))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "林", decoded[0]["sender_name"])
	assert.Equal(t, float64(3), decoded[0]["word_count"])
	assert.Nil(t, decoded[1]["content"])
	assert.Equal(t, "2024-02-14T22:00:00+08:00", decoded[1]["timestamp"])
}

func TestWriteRows_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRows(&buf, sampleRows(), FormatCSV, 0))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"timestamp", "sender_name", "content", "word_count"}, records[0])
	assert.Equal(t, "晚安 good\nnight", records[1][2])
	assert.Equal(t, []string{"2024-02-14T22:00:00+08:00", "Him", "", "0"}, records[2])
}

func TestWriteOverview(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOverview(&buf, stats.Overview{
		Messages: 12345,
		Words:    1234567,
		People:   []stats.SenderTotals{{Name: "Her", Messages: 7000, Words: 700000}},
	}))

	out := buf.String()
	assert.Contains(t, out, "12,345")
	assert.Contains(t, out, "1,234,567")
	assert.Contains(t, out, "Her")
}

func TestWriteTimeline(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTimeline(&buf, []stats.Bucket{
		{Period: "2024-01", Sender: "Her", Messages: 1200},
		{Period: "2024-01", Sender: "Him", Messages: 3},
	}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "1,200")
}

func TestThousands(t *testing.T) {
	assert.Equal(t, "0", thousands(0))
	assert.Equal(t, "999", thousands(999))
	assert.Equal(t, "1,000", thousands(1000))
	assert.Equal(t, "-12,345", thousands(-12345))
}
