package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/goliatone/go-carprice/internal/config"
	"github.com/goliatone/go-carprice/pkg/client"
	"github.com/goliatone/go-carprice/pkg/controller"
	"github.com/goliatone/go-carprice/pkg/renderers/tui"
)

func main() {
	envFile := flag.String("env", ".env", "optional .env file")
	verbose := flag.Bool("v", false, "log request failures to stderr")
	flag.Parse()

	cfg, err := config.ReadClientConfig(*envFile)
	if err != nil {
		log.Fatalf("Failed to read config: %v", err)
	}

	api, err := client.New(cfg.ServerURL, client.WithTimeout(cfg.Timeout))
	if err != nil {
		log.Fatalf("Failed to build client: %v", err)
	}

	var logger *log.Logger
	if *verbose {
		logger = log.New(os.Stderr, "carprice ", log.LstdFlags)
	}

	ctrl, err := controller.New(api, controller.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to build controller: %v", err)
	}

	session, err := tui.NewSession(ctrl,
		tui.WithOptionSource(api),
		tui.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch err := session.Run(ctx); {
	case err == nil:
	case errors.Is(err, tui.ErrAborted), errors.Is(err, context.Canceled):
		fmt.Fprintln(os.Stderr, "aborted")
		os.Exit(130)
	case errors.Is(err, tui.ErrUnavailable):
		os.Exit(2)
	default:
		log.Fatalf("Session failed: %v", err)
	}
}
