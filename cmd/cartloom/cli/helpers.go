package cli

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/cartloom/cartloom/internal/config"
	"github.com/cartloom/cartloom/internal/store"
	"github.com/cartloom/cartloom/internal/upload"
)

// loadConfig reads the config file when one exists and layers viper's
// environment overrides on top, so CARTLOOM_AUTH_JWT_SECRET beats the
// file and both beat the defaults.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if path := viper.ConfigFileUsed(); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if v := viper.GetString("auth.jwt_secret"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := viper.GetString("database.driver"); v != "" {
		cfg.Database.Driver = v
	}
	if v := viper.GetString("database.dsn"); v != "" {
		cfg.Database.DSN = v
	}
	if v := viper.GetInt("server.port"); v != 0 {
		cfg.Server.Port = v
	}
	return cfg, nil
}

// newLogger builds the slog logger the whole process shares.
func newLogger(cfg config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// openStore connects and migrates the configured database.
func openStore(cfg *config.Config) (*store.Store, error) {
	return store.Open(store.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: config.Duration(cfg.Database.ConnMaxLifetime, 5*time.Minute),
		ConnMaxIdleTime: time.Minute,
	})
}

// newUploadStorage picks the image backend: S3 when an endpoint is
// configured, the local directory otherwise.
func newUploadStorage(ctx context.Context, cfg config.UploadsConfig) (upload.Storage, error) {
	if cfg.S3Endpoint != "" {
		return upload.NewS3(ctx, upload.S3Config{
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			Bucket:          cfg.S3Bucket,
			UseSSL:          cfg.S3UseSSL,
			PublicBaseURL:   cfg.S3PublicBaseURL,
		})
	}
	return upload.NewLocal(cfg.Dir, "/uploads")
}
