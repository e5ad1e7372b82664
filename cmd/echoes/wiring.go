package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MikeSquared-Agency/echoes/internal/blobstore"
	"github.com/MikeSquared-Agency/echoes/internal/config"
	"github.com/MikeSquared-Agency/echoes/internal/hermes"
	"github.com/MikeSquared-Agency/echoes/internal/ingest"
	"github.com/MikeSquared-Agency/echoes/internal/normalize"
	"github.com/MikeSquared-Agency/echoes/internal/pipeline"
)

// buildPipeline wires the object store, reader and optional NATS publisher.
// The returned cleanup must be called once the pipeline is no longer used.
func buildPipeline(ctx context.Context, cfg config.Config, logger *slog.Logger) (*pipeline.Pipeline, func(), error) {
	cleanup := func() {}

	store, err := buildStore(ctx, cfg, logger)
	if err != nil {
		return nil, cleanup, err
	}

	reader := ingest.NewReader(store, ingest.ReaderConfig{
		Bucket:          cfg.BucketName,
		PrimaryPrefix:   cfg.PrimaryPrefix,
		SecondaryPrefix: cfg.SecondaryPrefix,
	}, logger)

	var publisher pipeline.Publisher
	if cfg.NatsURL != "" {
		client, err := hermes.NewClient(ctx, cfg.NatsURL, cfg.NatsToken, logger)
		if err != nil {
			return nil, cleanup, err
		}
		logger.Info("NATS connected", "url", cfg.NatsURL)
		publisher = client
		cleanup = client.Close
	}

	p := pipeline.New(reader, normalize.Options{Offset: cfg.TimeOffset}, publisher, logger)
	return p, cleanup, nil
}

func buildStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (blobstore.Store, error) {
	if cfg.DataDir != "" {
		logger.Info("reading exports from directory", "dir", cfg.DataDir, "bucket", cfg.BucketName)
		return blobstore.NewDir(cfg.DataDir), nil
	}
	if cfg.BucketName == "" {
		return nil, errors.New("BUCKET_NAME is required (or set ECHOES_DATA_DIR)")
	}

	store, err := blobstore.NewS3(ctx, blobstore.S3Options{
		Region:          cfg.AWSRegion,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
		Endpoint:        cfg.S3Endpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 store: %w", err)
	}
	logger.Info("reading exports from S3", "bucket", cfg.BucketName, "region", cfg.AWSRegion)
	return store, nil
}

// people lists the configured sender names shown in the overview.
func people(cfg config.Config) []string {
	var out []string
	for _, name := range []string{cfg.HerName, cfg.HisName} {
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}
