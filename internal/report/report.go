// Package report renders message tables and statistics for the terminal.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/mattn/go-runewidth"

	"github.com/MikeSquared-Agency/echoes/internal/stats"
)

// Format is an output format for WriteRows.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatJSON, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want table, json or csv)", s)
}

const (
	timeLayout     = "2006-01-02 15:04:05"
	minMessageCol  = 20
	defaultWidth   = 120
	noContentLabel = "-"
)

// WriteRows renders rows in the given format. width is the terminal width
// used by the table format; zero or less means a default.
func WriteRows(w io.Writer, rows []stats.Row, format Format, width int) error {
	switch format {
	case FormatJSON:
		data, err := sonic.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal rows: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatCSV:
		return writeCSV(w, rows)
	default:
		return writeTable(w, rows, width)
	}
}

func writeCSV(w io.Writer, rows []stats.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"timestamp", "sender_name", "content", "word_count"}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Timestamp.Format(time.RFC3339),
			r.SenderName,
			r.Text(),
			strconv.Itoa(r.WordCount),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeTable(w io.Writer, rows []stats.Row, width int) error {
	if width <= 0 {
		width = defaultWidth
	}

	senderCol := runewidth.StringWidth("Sender")
	for _, r := range rows {
		senderCol = max(senderCol, runewidth.StringWidth(r.SenderName))
	}
	wordsCol := len("Words")
	timeCol := len(timeLayout)
	msgCol := max(width-timeCol-senderCol-wordsCol-6, minMessageCol)

	var sb strings.Builder
	writeLine := func(ts, sender, msg, words string) {
		sb.WriteString(runewidth.FillRight(ts, timeCol))
		sb.WriteString("  ")
		sb.WriteString(runewidth.FillRight(sender, senderCol))
		sb.WriteString("  ")
		sb.WriteString(runewidth.FillRight(runewidth.Truncate(msg, msgCol, "…"), msgCol))
		sb.WriteString("  ")
		sb.WriteString(runewidth.FillLeft(words, wordsCol))
		sb.WriteString("\n")
	}

	writeLine("Timestamp", "Sender", "Message", "Words")
	writeLine(strings.Repeat("-", timeCol), strings.Repeat("-", senderCol), strings.Repeat("-", msgCol), strings.Repeat("-", wordsCol))
	for _, r := range rows {
		text := noContentLabel
		if r.Content != nil {
			text = strings.Join(strings.Fields(*r.Content), " ")
		}
		writeLine(r.Timestamp.Format(timeLayout), r.SenderName, text, strconv.Itoa(r.WordCount))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteOverview prints the headline numbers.
func WriteOverview(w io.Writer, ov stats.Overview) error {
	nameCol := runewidth.StringWidth("Total")
	for _, p := range ov.People {
		nameCol = max(nameCol, runewidth.StringWidth(p.Name))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %10s  %10s\n", runewidth.FillRight("", nameCol), "Messages", "Words")
	fmt.Fprintf(&sb, "%s  %10s  %10s\n", runewidth.FillRight("Total", nameCol), thousands(ov.Messages), thousands(ov.Words))
	for _, p := range ov.People {
		fmt.Fprintf(&sb, "%s  %10s  %10s\n", runewidth.FillRight(p.Name, nameCol), thousands(p.Messages), thousands(p.Words))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteTimeline prints one line per period and sender.
func WriteTimeline(w io.Writer, buckets []stats.Bucket) error {
	senderCol := runewidth.StringWidth("Sender")
	for _, b := range buckets {
		senderCol = max(senderCol, runewidth.StringWidth(b.Sender))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%-10s  %s  %10s\n", "Period", runewidth.FillRight("Sender", senderCol), "Messages")
	for _, b := range buckets {
		fmt.Fprintf(&sb, "%-10s  %s  %10s\n", b.Period, runewidth.FillRight(b.Sender, senderCol), thousands(b.Messages))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// thousands formats n with comma separators, e.g. 12,345.
func thousands(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var out []byte
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
