package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/vintry/tastingd/internal/smoke"
	"github.com/vintry/tastingd/pkg/logger"
)

const (
	defaultCount      = 6
	defaultTimeout    = 10 * time.Second
	defaultRunTimeout = 2 * time.Minute
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:8787", "Base URL of the service")
		secret      = flag.String("secret", os.Getenv("TASTINGD_APP_PROXY_SECRET"), "App proxy shared secret used to sign requests")
		customerID  = flag.String("customer", "1001", "Customer id to submit as")
		eventHandle = flag.String("event", "", "Event collection handle (default: random per run)")
		count       = flag.Int("count", defaultCount, "Number of notes to submit")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose     = flag.Bool("verbose", false, "Log each accepted submission")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to init logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if *secret == "" {
		os.Stderr.WriteString("missing proxy secret: pass -secret or set TASTINGD_APP_PROXY_SECRET\n")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	cfg := &smoke.Config{
		BaseURL:     *baseURL,
		Secret:      *secret,
		CustomerID:  *customerID,
		EventHandle: *eventHandle,
		Count:       *count,
		Timeout:     *timeout,
		Verbose:     *verbose,
	}

	if err := smoke.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("smoke run failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
