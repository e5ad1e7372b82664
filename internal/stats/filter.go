package stats

import (
	"strings"
	"time"

	"github.com/MikeSquared-Agency/echoes/internal/normalize"
)

// Query narrows the message table for the message browser.
type Query struct {
	Keywords []string  // lowercase; a row matches if any keyword is in its content
	Sender   string    // exact sender name
	From     time.Time // inclusive, zero for no lower bound
	Until    time.Time // exclusive, zero for no upper bound
	Offset   int
	Limit    int // zero for no limit
}

// Row is a message with its derived word count.
type Row struct {
	normalize.Message
	WordCount int `json:"word_count"`
}

// Page is one window of the filtered rows.
type Page struct {
	Total int   `json:"total"` // matches before Offset/Limit
	Rows  []Row `json:"rows"`
}

// ParseKeywords splits a comma separated keyword list, trimming and
// lowercasing each entry. Blank entries are dropped.
func ParseKeywords(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		kw := strings.ToLower(strings.TrimSpace(part))
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// Filter applies q to msgs, keeping their order.
func Filter(msgs []normalize.Message, q Query) Page {
	page := Page{Rows: []Row{}}
	skipped := 0

	for _, m := range msgs {
		if !q.matches(m) {
			continue
		}
		page.Total++
		if skipped < q.Offset {
			skipped++
			continue
		}
		if q.Limit > 0 && len(page.Rows) >= q.Limit {
			continue
		}
		page.Rows = append(page.Rows, Row{Message: m, WordCount: WordCount(m)})
	}
	return page
}

func (q Query) matches(m normalize.Message) bool {
	if q.Sender != "" && m.SenderName != q.Sender {
		return false
	}
	if !q.From.IsZero() && m.Timestamp.Before(q.From) {
		return false
	}
	if !q.Until.IsZero() && !m.Timestamp.Before(q.Until) {
		return false
	}
	if len(q.Keywords) == 0 {
		return true
	}
	if m.Content == nil {
		return false
	}
	text := strings.ToLower(*m.Content)
	for _, kw := range q.Keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// DayRange returns the [from, until) bounds covering the calendar days from
// and to (YYYY-MM-DD, either may be empty) in loc.
func DayRange(from, to string, loc *time.Location) (time.Time, time.Time, error) {
	var start, end time.Time
	if from != "" {
		t, err := time.ParseInLocation(time.DateOnly, from, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = t
	}
	if to != "" {
		t, err := time.ParseInLocation(time.DateOnly, to, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = t.AddDate(0, 0, 1)
	}
	return start, end, nil
}
