package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/weather-stylist/internal/domain/conversation"
	"github.com/yanqian/weather-stylist/internal/domain/genjob"
	"github.com/yanqian/weather-stylist/internal/domain/photos"
	"github.com/yanqian/weather-stylist/internal/domain/weather"
	"github.com/yanqian/weather-stylist/internal/infra/archive"
	"github.com/yanqian/weather-stylist/internal/infra/config"
	"github.com/yanqian/weather-stylist/internal/infra/kieai"
	"github.com/yanqian/weather-stylist/internal/infra/openweather"
	"github.com/yanqian/weather-stylist/internal/infra/photostore"
	"github.com/yanqian/weather-stylist/internal/infra/transcript"
	"github.com/yanqian/weather-stylist/internal/infra/unsplash"
)

func provideWeatherConfig(cfg *config.Config) weather.Config {
	return weather.Config{
		APIKey:  cfg.Weather.APIKey,
		BaseURL: cfg.Weather.BaseURL,
	}
}

func provideWeatherClient(cfg *config.Config) *openweather.Client {
	return openweather.NewClient(cfg.Weather.BaseURL, cfg.Weather.APIKey)
}

func providePhotoConfig(cfg *config.Config) photos.Config {
	return photos.Config{CacheTTL: cfg.Photos.CacheTTL}
}

// providePhotoProvider returns nil when no access key is configured; the photo
// service then resolves from the static cache onward.
func providePhotoProvider(cfg *config.Config, logger *slog.Logger) photos.Provider {
	if strings.TrimSpace(cfg.Photos.AccessKey) == "" {
		logger.Info("photo access key not set, live search disabled")
		return nil
	}
	return unsplash.NewClient(cfg.Photos.BaseURL, cfg.Photos.AccessKey)
}

func providePhotoStore(cfg *config.Config, logger *slog.Logger) photos.Store {
	if cfg.Photos.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return photostore.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return photostore.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
		} else {
			logger.Info("photo valkey store enabled", "addr", cfg.Photos.Valkey.Addr)
			return photostore.NewValkeyStore(client, "photos")
		}
	}
	return photostore.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Photos.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Photos.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Photos.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

func provideGenJobConfig(cfg *config.Config) genjob.Config {
	return genjob.Config{
		PollInterval: cfg.ImageGen.PollInterval,
		MaxAttempts:  cfg.ImageGen.MaxAttempts,
	}
}

func provideGenJobClient(cfg *config.Config) *kieai.Client {
	return kieai.NewClient(cfg.ImageGen.BaseURL, cfg.ImageGen.APIKey)
}

func provideArchiver(cfg *config.Config, logger *slog.Logger) genjob.Archiver {
	if !cfg.ImageGen.Archive.Enabled {
		return genjob.NopArchiver{}
	}
	a := cfg.ImageGen.Archive
	minioArchive, err := archive.NewMinioArchive(a.Endpoint, a.AccessKey, a.SecretKey, a.Bucket, a.Region, logger)
	if err != nil {
		logger.Error("failed to initialize image archive, archiving disabled", "error", err)
		return genjob.NopArchiver{}
	}
	logger.Info("image archive enabled", "bucket", a.Bucket)
	return minioArchive
}

func provideTranscriptRepository(cfg *config.Config, logger *slog.Logger) conversation.Repository {
	fallback := transcript.NewMemoryRepository()
	dsn := strings.TrimSpace(cfg.Transcript.Postgres.DSN)
	if dsn == "" {
		logger.Info("transcript postgres dsn not set, using memory repository")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback
	}
	if cfg.Transcript.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Transcript.Postgres.MaxConns
	}
	if cfg.Transcript.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Transcript.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("transcript postgres repository enabled")
	return transcript.NewPostgresRepository(pool)
}
