package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tomasbasham/multiform"
	"github.com/tomasbasham/multiform/internal/config"
	"github.com/tomasbasham/multiform/internal/server"
	"github.com/tomasbasham/multiform/s3sink"
)

type ServeCLI struct {
	Config string `help:"Path to the YAML config file" short:"c" env:"CONFIG_PATH" default:"multiform.yaml"`
}

func (c *ServeCLI) Run(logger *slog.Logger) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("unable to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sink, err := newSink(ctx, cfg.Storage, logger)
	if err != nil {
		return err
	}

	handler := server.New(server.Config{
		Decoder:      multiform.NewDecoder(multiform.WithSink(sink), multiform.WithLogger(logger)),
		MaxBodyBytes: cfg.MaxBodyBytes,
		Logger:       logger,
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("shutdown failed", slog.String("error", err.Error()))
		}
	}()

	logger.Info("listening",
		slog.String("address", cfg.ListenAddr),
		slog.String("storage", cfg.Storage.Driver))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newSink(ctx context.Context, st config.Storage, logger *slog.Logger) (multiform.FileSink, error) {
	switch st.Driver {
	case config.DriverS3:
		var opts []func(*awsconfig.LoadOptions) error
		if st.Region != "" {
			opts = append(opts, awsconfig.WithRegion(st.Region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("unable to load AWS config: %w", err)
		}
		logger.Info("storing uploads in S3",
			slog.String("bucket", st.Bucket),
			slog.String("prefix", st.Prefix))
		return s3sink.New(s3sink.Config{
			Client:    s3.NewFromConfig(awsCfg),
			Bucket:    st.Bucket,
			KeyPrefix: st.Prefix,
			Logger:    logger,
		}), nil
	default:
		logger.Info("storing uploads on disk", slog.String("dir", st.Dir))
		return multiform.TempDirSink{Dir: st.Dir}, nil
	}
}
