package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hupe1980/refget"
	"github.com/hupe1980/refget/blobstore"
	"github.com/hupe1980/refget/blobstore/minio"
	"github.com/hupe1980/refget/blobstore/s3"
	"github.com/hupe1980/refget/codec"
	"github.com/hupe1980/refget/config"
)

func newLogger(cfg *config.Config, w io.Writer) (*refget.Logger, error) {
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return nil, err
	}

	hopts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Log.Format, "json") {
		return refget.NewLogger(slog.NewJSONHandler(w, hopts)), nil
	}
	return refget.NewLogger(slog.NewTextHandler(w, hopts)), nil
}

func newStore(ctx context.Context, cfg config.StorageConfig) (blobstore.BlobStore, error) {
	switch cfg.Kind {
	case config.StorageLocal:
		return blobstore.NewLocalStore(cfg.Root), nil
	case config.StorageS3:
		optFns := []s3.Option{s3.WithPrefix(cfg.Prefix)}
		if cfg.Region != "" {
			optFns = append(optFns, s3.WithRegion(cfg.Region))
		}
		if cfg.Endpoint != "" {
			optFns = append(optFns, s3.WithEndpoint(cfg.Endpoint))
		}
		if cfg.AccessKeyID != "" {
			optFns = append(optFns, s3.WithStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, ""))
		}
		store, err := s3.New(ctx, cfg.Bucket, optFns...)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.StorageMinio:
		store, err := minio.New(minio.Config{
			Endpoint:        cfg.Endpoint,
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
			Secure:          cfg.Secure,
			Region:          cfg.Region,
			Bucket:          cfg.Bucket,
			Prefix:          cfg.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage kind %q", cfg.Kind)
	}
}

func serviceOptions(cfg *config.Config, logger *refget.Logger) []refget.Option {
	c, _ := codec.ByName(cfg.Manifest.Codec)
	return []refget.Option{
		refget.WithLogger(logger),
		refget.WithCodec(c),
		refget.WithBlockCache(cfg.Cache.Size),
		refget.WithBlockSize(cfg.Cache.BlockSize),
		refget.WithMaxOpenFiles(cfg.Limits.MaxOpenFiles),
		refget.WithFetchConcurrency(cfg.Limits.FetchConcurrency),
		refget.WithIOLimit(cfg.Limits.IOBytesPerSec),
		refget.WithLabelEndpoints(cfg.Server.LabelEndpoints),
		refget.WithVerify(cfg.Verify),
	}
}

func openService(ctx context.Context, cfg *config.Config, logger *refget.Logger, extra ...refget.Option) (*refget.Service, error) {
	store, err := newStore(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	optFns := append(serviceOptions(cfg, logger), extra...)
	return refget.Open(ctx, refget.Remote(store, cfg.Manifest.Paths...), optFns...)
}
