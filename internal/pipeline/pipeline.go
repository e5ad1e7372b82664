// Package pipeline runs one end-to-end load: read exports, normalize them,
// and announce the result.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/MikeSquared-Agency/echoes/internal/ingest"
	"github.com/MikeSquared-Agency/echoes/internal/normalize"
)

// SubjectLoadCompleted is published after every successful load.
const SubjectLoadCompleted = "echoes.load.completed"

// ExportReader is satisfied by *ingest.Reader.
type ExportReader interface {
	Read(ctx context.Context) (*ingest.Exports, error)
}

// Publisher is satisfied by *hermes.Client.
type Publisher interface {
	Publish(subject string, data any) error
}

// LoadSummary is the payload of SubjectLoadCompleted.
type LoadSummary struct {
	Primary        int    `json:"primary"`
	Secondary      int    `json:"secondary"`
	Total          int    `json:"total"`
	DecodingErrors int    `json:"decoding_errors"`
	DurationMS     int64  `json:"duration_ms"`
	Timestamp      string `json:"timestamp"`
}

// Pipeline loads the canonical message table.
type Pipeline struct {
	reader    ExportReader
	opts      normalize.Options
	publisher Publisher // optional
	logger    *slog.Logger
}

// New creates a Pipeline. publisher may be nil.
func New(reader ExportReader, opts normalize.Options, publisher Publisher, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		reader:    reader,
		opts:      opts,
		publisher: publisher,
		logger:    logger,
	}
}

// Zone is the location every loaded timestamp is expressed in.
func (p *Pipeline) Zone() *time.Location {
	return normalize.Zone(p.opts.Offset)
}

// Load runs a full fetch and normalize pass. Errors from the reader are
// returned as they are, and no partial table is ever returned.
func (p *Pipeline) Load(ctx context.Context) ([]normalize.Message, error) {
	start := time.Now()

	exports, err := p.reader.Read(ctx)
	if err != nil {
		p.logger.Error("load failed", "error", err)
		return nil, err
	}

	msgs, rep := normalize.NormalizeReport(exports, p.opts)
	elapsed := time.Since(start)

	if rep.DecodingErrors > 0 {
		p.logger.Debug("unrepairable tokens replaced", "count", rep.DecodingErrors)
	}
	p.logger.Info("messages loaded",
		"primary", rep.Primary,
		"secondary", rep.Secondary,
		"total", len(msgs),
		"decoding_errors", rep.DecodingErrors,
		"duration", elapsed,
	)

	if p.publisher != nil {
		summary := LoadSummary{
			Primary:        rep.Primary,
			Secondary:      rep.Secondary,
			Total:          len(msgs),
			DecodingErrors: rep.DecodingErrors,
			DurationMS:     elapsed.Milliseconds(),
			Timestamp:      time.Now().UTC().Format(time.RFC3339),
		}
		if err := p.publisher.Publish(SubjectLoadCompleted, summary); err != nil {
			p.logger.Warn("failed to publish load summary", "error", err)
		}
	}

	return msgs, nil
}
