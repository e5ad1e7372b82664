// Package stats derives the dashboard's aggregate views from the canonical
// message table.
package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/echoes/internal/normalize"
)

// GroupBy selects the time bucket for timelines.
type GroupBy string

const (
	Day   GroupBy = "day"
	Month GroupBy = "month"
	Year  GroupBy = "year"
)

// ParseGroupBy accepts day, month or year in any case. Empty means month.
func ParseGroupBy(s string) (GroupBy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day":
		return Day, nil
	case "", "month":
		return Month, nil
	case "year":
		return Year, nil
	}
	return "", fmt.Errorf("unknown grouping %q (want day, month or year)", s)
}

// Key formats t as the bucket label, in t's own zone.
func (g GroupBy) Key(t time.Time) string {
	switch g {
	case Day:
		return t.Format("2006-01-02")
	case Year:
		return t.Format("2006")
	default:
		return t.Format("2006-01")
	}
}

// WordCount is the number of whitespace-separated words; zero without content.
func WordCount(m normalize.Message) int {
	return len(strings.Fields(m.Text()))
}

// SenderTotals counts one sender's messages and words.
type SenderTotals struct {
	Name     string `json:"name"`
	Messages int    `json:"messages"`
	Words    int    `json:"words"`
}

// Overview holds the headline numbers.
type Overview struct {
	Messages int            `json:"messages"`
	Words    int            `json:"words"`
	People   []SenderTotals `json:"people"`
}

// ComputeOverview totals the table. With names given, People lists exactly
// those senders in that order (zero totals included); otherwise every sender
// appears, busiest first.
func ComputeOverview(msgs []normalize.Message, names ...string) Overview {
	ov := Overview{Messages: len(msgs)}
	bySender := make(map[string]*SenderTotals)
	var order []string

	for _, m := range msgs {
		words := WordCount(m)
		ov.Words += words

		st, ok := bySender[m.SenderName]
		if !ok {
			st = &SenderTotals{Name: m.SenderName}
			bySender[m.SenderName] = st
			order = append(order, m.SenderName)
		}
		st.Messages++
		st.Words += words
	}

	if len(names) > 0 {
		for _, n := range names {
			if st, ok := bySender[n]; ok {
				ov.People = append(ov.People, *st)
			} else {
				ov.People = append(ov.People, SenderTotals{Name: n})
			}
		}
		return ov
	}

	for _, n := range order {
		ov.People = append(ov.People, *bySender[n])
	}
	sort.SliceStable(ov.People, func(i, j int) bool {
		return ov.People[i].Messages > ov.People[j].Messages
	})
	return ov
}

// Bucket is one bar segment of the timeline chart.
type Bucket struct {
	Period   string `json:"period"`
	Sender   string `json:"sender"`
	Messages int    `json:"messages"`
}

// Timeline counts messages per period and sender, ordered by period then
// sender.
func Timeline(msgs []normalize.Message, g GroupBy) []Bucket {
	type key struct{ period, sender string }
	counts := make(map[key]int)
	for _, m := range msgs {
		counts[key{g.Key(m.Timestamp), m.SenderName}]++
	}

	out := make([]Bucket, 0, len(counts))
	for k, n := range counts {
		out = append(out, Bucket{Period: k.period, Sender: k.sender, Messages: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Period != out[j].Period {
			return out[i].Period < out[j].Period
		}
		return out[i].Sender < out[j].Sender
	})
	return out
}
