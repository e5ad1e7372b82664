package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/echoes/internal/normalize"
)

var zone = normalize.Zone(normalize.DefaultOffset)

func msg(sender, content string, ts string) normalize.Message {
	t, err := time.ParseInLocation(time.DateTime, ts, zone)
	if err != nil {
		panic(err)
	}
	m := normalize.Message{SenderName: sender, Timestamp: t}
	if content != "" {
		m.Content = &content
	}
	return m
}

func sample() []normalize.Message {
	return []normalize.Message{
		msg("Her", "see you soon", "2024-02-14 21:00:00"),
		msg("Him", "love you", "2024-02-14 20:59:00"),
		msg("Him", "", "2024-01-31 23:59:59"),
		msg("Her", "Happy new year!", "2024-01-01 00:00:01"),
		msg("Her", "eat pray love", "2023-12-31 23:00:00"),
	}
}

func TestParseGroupBy(t *testing.T) {
	g, err := ParseGroupBy("Day")
	require.NoError(t, err)
	assert.Equal(t, Day, g)

	g, err = ParseGroupBy("")
	require.NoError(t, err)
	assert.Equal(t, Month, g)

	_, err = ParseGroupBy("week")
	assert.Error(t, err)
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 3, WordCount(msg("Her", "  eat   pray love ", "2024-01-01 00:00:00")))
	assert.Equal(t, 0, WordCount(msg("Him", "", "2024-01-01 00:00:00")))
}

func TestComputeOverview_NamedPeople(t *testing.T) {
	ov := ComputeOverview(sample(), "Her", "Him", "Nobody")

	assert.Equal(t, 5, ov.Messages)
	assert.Equal(t, 3+2+0+3+3, ov.Words)
	assert.Equal(t, []SenderTotals{
		{Name: "Her", Messages: 3, Words: 9},
		{Name: "Him", Messages: 2, Words: 2},
		{Name: "Nobody"},
	}, ov.People)
}

func TestComputeOverview_AllSendersBusiestFirst(t *testing.T) {
	ov := ComputeOverview(sample())
	require.Len(t, ov.People, 2)
	assert.Equal(t, "Her", ov.People[0].Name)
	assert.Equal(t, "Him", ov.People[1].Name)
}

func TestTimeline_ByMonth(t *testing.T) {
	got := Timeline(sample(), Month)
	assert.Equal(t, []Bucket{
		{Period: "2023-12", Sender: "Her", Messages: 1},
		{Period: "2024-01", Sender: "Her", Messages: 1},
		{Period: "2024-01", Sender: "Him", Messages: 1},
		{Period: "2024-02", Sender: "Her", Messages: 1},
		{Period: "2024-02", Sender: "Him", Messages: 1},
	}, got)
}

func TestTimeline_ByYearAndDay(t *testing.T) {
	years := Timeline(sample(), Year)
	assert.Equal(t, []Bucket{
		{Period: "2023", Sender: "Her", Messages: 1},
		{Period: "2024", Sender: "Her", Messages: 2},
		{Period: "2024", Sender: "Him", Messages: 2},
	}, years)

	days := Timeline(sample(), Day)
	assert.Len(t, days, 5)
	assert.Equal(t, "2023-12-31", days[0].Period)
}

func TestTimeline_UsesMessageZone(t *testing.T) {
	// 2023-12-31T20:00:00Z is already 2024 at UTC+8.
	m := normalize.Message{SenderName: "Her", Timestamp: time.Date(2023, 12, 31, 20, 0, 0, 0, time.UTC).In(zone)}
	got := Timeline([]normalize.Message{m}, Year)
	require.Len(t, got, 1)
	assert.Equal(t, "2024", got[0].Period)
}
