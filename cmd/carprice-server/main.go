package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-carprice/internal/config"
	"github.com/goliatone/go-carprice/internal/predict"
	"github.com/goliatone/go-carprice/internal/server"
	"github.com/goliatone/go-carprice/pkg/estimator"
	"github.com/goliatone/go-carprice/pkg/render"
)

func main() {
	configPath := flag.String("config", "", "YAML config file; defaults and CARPRICE_ env vars apply when empty")
	requestLog := flag.Bool("log-requests", true, "log every HTTP request")
	flag.Parse()

	cfg, err := config.InitConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.New(os.Stderr, "carprice ", log.LstdFlags)

	model, err := loadModel(ctx, cfg.Model)
	if err != nil {
		// The page still serves; submit stays disabled until a model loads.
		logger.Printf("model not loaded: %v", err)
	}

	service := predict.NewService(model, predict.WithLogger(logger))

	themeCfg, err := rendererTheme(cfg.Theme)
	if err != nil {
		log.Fatalf("Failed to select theme: %v", err)
	}

	srv, err := server.New(service, nil,
		server.WithLogger(logger),
		server.WithTheme(themeCfg),
		server.WithRequestLog(*requestLog),
	)
	if err != nil {
		log.Fatalf("Failed to build server: %v", err)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Printf("shutdown: %v", err)
		}
	}()

	if err := srv.Start(cfg.Server.Address()); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// loadModel returns a nil interface on error so the service reports the
// model as not loaded.
func loadModel(ctx context.Context, cfg config.Model) (estimator.Model, error) {
	switch cfg.Source {
	case config.SourceRemote:
		remote, err := estimator.NewRemote(cfg.Remote.URL, cfg.Remote.Timeout, cfg.Remote.Features)
		if err != nil {
			return nil, err
		}
		return remote, nil
	case config.SourceMinio:
		src, err := estimator.NewMinioSource(estimator.MinioConfig{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			Bucket:    cfg.Minio.Bucket,
			Object:    cfg.Minio.Object,
			Secure:    cfg.Minio.Secure,
		})
		if err != nil {
			return nil, err
		}
		return loadArtifact(ctx, src)
	default:
		return loadArtifact(ctx, estimator.FileSource{Path: cfg.Path})
	}
}

func loadArtifact(ctx context.Context, src estimator.Source) (estimator.Model, error) {
	linear, err := estimator.LoadArtifact(ctx, src)
	if err != nil {
		return nil, err
	}
	return linear, nil
}

func rendererTheme(cfg config.Theme) (*theme.RendererConfig, error) {
	manifest := render.DefaultManifest()
	for key, value := range cfg.Tokens {
		manifest.Tokens[key] = value
	}
	selector, err := render.NewThemeSelector(cfg.Variant, manifest)
	if err != nil {
		return nil, err
	}
	selection, err := selector.Select(cfg.Name, cfg.Variant)
	if err != nil {
		return nil, err
	}
	return render.RendererConfig(selection), nil
}
