// Package ingest fetches raw chat exports from an object store and decodes
// them into per-platform record sets.
package ingest

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/MikeSquared-Agency/echoes/internal/blobstore"
)

const (
	DefaultPrimaryPrefix   = "message"
	DefaultSecondaryPrefix = "X"
)

// ReaderConfig selects the bucket and the two export object prefixes.
type ReaderConfig struct {
	Bucket          string
	PrimaryPrefix   string
	SecondaryPrefix string
}

// Reader loads primary and secondary exports from a blob store.
type Reader struct {
	store  blobstore.Store
	cfg    ReaderConfig
	logger *slog.Logger
}

// NewReader creates a Reader. Empty prefixes fall back to the defaults.
func NewReader(store blobstore.Store, cfg ReaderConfig, logger *slog.Logger) *Reader {
	if cfg.PrimaryPrefix == "" {
		cfg.PrimaryPrefix = DefaultPrimaryPrefix
	}
	if cfg.SecondaryPrefix == "" {
		cfg.SecondaryPrefix = DefaultSecondaryPrefix
	}
	return &Reader{store: store, cfg: cfg, logger: logger}
}

// Read lists the bucket, concatenates the messages of every primary object in
// listing order and decodes the first secondary object.
//
// Store errors are returned unchanged. A missing secondary object yields
// *NotFoundError; undecodable content yields *MalformedDataError. Either
// aborts the whole read.
func (r *Reader) Read(ctx context.Context) (*Exports, error) {
	keys, err := r.store.List(ctx, r.cfg.Bucket)
	if err != nil {
		return nil, err
	}

	var primaryKeys, secondaryKeys []string
	for _, key := range keys {
		if strings.HasPrefix(key, r.cfg.PrimaryPrefix) {
			primaryKeys = append(primaryKeys, key)
		}
		if strings.HasPrefix(key, r.cfg.SecondaryPrefix) {
			secondaryKeys = append(secondaryKeys, key)
		}
	}

	r.logger.Debug("export objects listed",
		"bucket", r.cfg.Bucket,
		"objects", len(keys),
		"primary", len(primaryKeys),
		"secondary", len(secondaryKeys),
	)

	if len(secondaryKeys) == 0 {
		return nil, &NotFoundError{Bucket: r.cfg.Bucket, Prefix: r.cfg.SecondaryPrefix}
	}
	if len(secondaryKeys) > 1 {
		r.logger.Warn("multiple secondary exports found, using the first",
			"using", secondaryKeys[0],
			"ignored", secondaryKeys[1:],
		)
	}

	out := &Exports{}
	for _, key := range primaryKeys {
		data, err := r.store.Get(ctx, r.cfg.Bucket, key)
		if err != nil {
			return nil, err
		}
		recs, err := ParsePrimary(key, data)
		if err != nil {
			return nil, err
		}
		out.Primary = append(out.Primary, recs...)
	}

	data, err := r.store.Get(ctx, r.cfg.Bucket, secondaryKeys[0])
	if err != nil {
		return nil, err
	}
	out.Secondary, err = ParseSecondary(secondaryKeys[0], data)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// ParsePrimary decodes one primary export document. Fields other than the
// three known ones are ignored.
func ParsePrimary(key string, data []byte) ([]PrimaryRecord, error) {
	var doc struct {
		Messages *[]PrimaryRecord `json:"messages"`
	}
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return nil, &MalformedDataError{Key: key, Err: err}
	}
	if doc.Messages == nil {
		return nil, &MalformedDataError{Key: key, Err: errMissingMessages}
	}
	return *doc.Messages, nil
}

// ParseSecondary decodes the secondary export document.
func ParseSecondary(key string, data []byte) ([]SecondaryRecord, error) {
	var doc struct {
		Messages *[]SecondaryRecord `json:"messages"`
	}
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return nil, &MalformedDataError{Key: key, Err: err}
	}
	if doc.Messages == nil {
		return nil, &MalformedDataError{Key: key, Err: errMissingMessages}
	}
	return *doc.Messages, nil
}
