// Package smoke exercises a running tastingd instance end to end by
// posting signed proxy submissions and checking the acknowledgements.
package smoke

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/vintry/tastingd/internal/domain/trust"
	"github.com/vintry/tastingd/pkg/logger"

	"github.com/google/uuid"
)

// Config controls one smoke run.
type Config struct {
	BaseURL     string
	Secret      string
	CustomerID  string
	EventHandle string
	Count       int
	Timeout     time.Duration
	Verbose     bool
}

// Run submits Count generated notes and fails if any is rejected.
func Run(ctx context.Context, cfg *Config) error {
	log := logger.Get()
	client := &http.Client{Timeout: cfg.Timeout}

	target := cfg.BaseURL + "/apps/tastings/notes?logged_in_customer_id=" + url.QueryEscape(cfg.CustomerID)

	// One handle per run so every note of the run lands in the same event.
	eventHandle := cfg.EventHandle
	if eventHandle == "" {
		eventHandle = "smoke-" + uuid.NewString()[:8]
	}

	failures := 0
	for i := 0; i < cfg.Count; i++ {
		sub := generateSubmission(eventHandle, i)
		body, err := json.Marshal(sub)
		if err != nil {
			return fmt.Errorf("encode submission: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(trust.SignatureHeader, trust.Signature(cfg.Secret, body))

		ok, errMsg, err := send(client, req)
		if err != nil {
			return fmt.Errorf("submission %d: %w", i+1, err)
		}
		if !ok {
			failures++
			log.Warn(ctx, "submission rejected",
				logger.Int("n", i+1),
				logger.String("error", errMsg),
			)
			continue
		}
		if cfg.Verbose {
			log.Info(ctx, "submission accepted",
				logger.Int("n", i+1),
				logger.String("event_handle", sub.EventHandle),
				logger.Int("product_id", int(sub.Product.ProductID)),
			)
		}
	}

	log.Info(ctx, "smoke run finished",
		logger.Int("submitted", cfg.Count),
		logger.Int("failed", failures),
	)
	if failures > 0 {
		return fmt.Errorf("%d of %d submissions rejected", failures, cfg.Count)
	}
	return nil
}

func send(client *http.Client, req *http.Request) (ok bool, errMsg string, err error) {
	resp, err := client.Do(req)
	if err != nil {
		return false, "", err
	}
	defer func() { _ = resp.Body.Close() }()

	var ack struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return false, "", fmt.Errorf("decode ack (status %d): %w", resp.StatusCode, err)
	}
	return ack.OK, ack.Error, nil
}
