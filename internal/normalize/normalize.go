// Package normalize reconciles the primary and secondary export schemas into
// one time-ordered table of canonical messages.
package normalize

import (
	"fmt"
	"slices"
	"time"

	"github.com/MikeSquared-Agency/echoes/internal/ingest"
)

// DefaultOffset is applied to every timestamp, matching the local time the
// dashboard has always displayed.
const DefaultOffset = 8 * time.Hour

// Options controls normalization.
type Options struct {
	// Offset is the fixed zone every timestamp is expressed in. It applies to
	// both platforms alike.
	Offset time.Duration
}

// DefaultOptions returns Options with DefaultOffset.
func DefaultOptions() Options {
	return Options{Offset: DefaultOffset}
}

// Report summarizes one normalization pass.
type Report struct {
	Primary        int
	Secondary      int
	DecodingErrors int // tokens replaced with DecodingErrorToken
}

// Normalize projects both record sets onto Message, repairs their text,
// and returns them newest first. Rows with equal timestamps keep their
// concatenation order: primary rows, then secondary rows.
func Normalize(ex *ingest.Exports, opts Options) []Message {
	msgs, _ := NormalizeReport(ex, opts)
	return msgs
}

// NormalizeReport is Normalize plus a summary of what was done.
func NormalizeReport(ex *ingest.Exports, opts Options) ([]Message, Report) {
	rep := Report{Primary: len(ex.Primary), Secondary: len(ex.Secondary)}
	out := make([]Message, 0, len(ex.Primary)+len(ex.Secondary))

	for _, rec := range ex.Primary {
		msg := Message{
			SenderName: rec.SenderName,
			Timestamp:  time.UnixMilli(rec.TimestampMS),
		}
		if rec.Content != nil {
			fixed, failures := repairMojibake(*rec.Content)
			rep.DecodingErrors += failures
			msg.Content = &fixed
		}
		out = append(out, msg)
	}

	for _, rec := range ex.Secondary {
		msg := Message{
			SenderName: rec.SenderName,
			Timestamp:  time.UnixMilli(rec.Timestamp),
		}
		if rec.Text != nil {
			clean := Sanitize(*rec.Text)
			msg.Content = &clean
		}
		out = append(out, msg)
	}

	zone := Zone(opts.Offset)
	for i := range out {
		out[i].Timestamp = out[i].Timestamp.In(zone)
	}

	slices.SortStableFunc(out, func(a, b Message) int {
		return b.Timestamp.Compare(a.Timestamp)
	})

	return out, rep
}

// Zone returns a fixed zone for offset, named like "UTC+08:00".
func Zone(offset time.Duration) *time.Location {
	secs := int(offset / time.Second)
	sign := '+'
	abs := secs
	if secs < 0 {
		sign = '-'
		abs = -secs
	}
	name := fmt.Sprintf("UTC%c%02d:%02d", sign, abs/3600, abs%3600/60)
	return time.FixedZone(name, secs)
}
