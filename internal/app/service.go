// Package service implements the read-merge-write submission flow behind
// the HTTP API.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/vintry/tastingd/internal/domain/tasting"
	"github.com/vintry/tastingd/pkg/logger"
	"github.com/vintry/tastingd/pkg/metrics"
)

// RemoteStore is the slice of the Shopify client the service needs.
type RemoteStore interface {
	TastingField(ctx context.Context, customerID string) (string, bool, error)
	SetTastingField(ctx context.Context, customerID string, doc []byte) error
}

// Service owns one customer-note submission at a time. The read-merge-write
// sequence is not transactional: two concurrent submissions for the same
// customer can both read the same prior document and the second write wins
// at whole-document granularity. Customers submit serially in practice.
type Service struct {
	remote RemoteStore
	logger logger.Logger
	now    func() time.Time

	accepted  atomic.Int64
	failed    atomic.Int64
	recovered atomic.Int64
	startedAt time.Time
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used for event dates and entry
// timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service around the given remote store.
func New(remote RemoteStore, opts ...Option) *Service {
	s := &Service{
		remote:    remote,
		now:       time.Now,
		startedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// SubmitNote records one tasting note on the customer's document: fetch the
// current document, merge the submission, write the result back. Any failure
// aborts before the write; there are no partial writes and no retries.
func (s *Service) SubmitNote(ctx context.Context, customerID string, sub tasting.Submission) error {
	raw, found, err := s.timedRead(ctx, customerID)
	if err != nil {
		s.failed.Add(1)
		return err
	}

	store, parsed := tasting.ParseStore([]byte(raw))
	if found && !parsed {
		// An unparsable stored document is discarded and rebuilt from
		// this submission.
		s.recovered.Add(1)
		metrics.RecordStoreRecovered()
		s.logger.Warn(ctx, "stored tasting document unparsable; starting from empty",
			logger.String("customer_id", customerID),
		)
	}

	merged, outcome := tasting.Merge(store, sub, s.now())
	doc, err := json.Marshal(merged)
	if err != nil {
		s.failed.Add(1)
		return fmt.Errorf("app.submit_note: encode document: %w", err)
	}

	if err := s.timedWrite(ctx, customerID, doc); err != nil {
		s.failed.Add(1)
		return err
	}

	s.accepted.Add(1)
	metrics.RecordSubmissionAccepted()
	if outcome.EventCreated {
		metrics.RecordEventCreated()
	}
	if outcome.EntryReplaced {
		metrics.RecordEntryReplaced()
	} else {
		metrics.RecordEntryAppended()
	}

	s.logger.Info(ctx, "tasting note recorded",
		logger.String("event_handle", sub.EventHandle),
		logger.Int("product_id", int(sub.Product.ProductID)),
		logger.Any("event_created", outcome.EventCreated),
		logger.Any("entry_replaced", outcome.EntryReplaced),
	)
	return nil
}

func (s *Service) timedRead(ctx context.Context, customerID string) (string, bool, error) {
	start := time.Now()
	raw, found, err := s.remote.TastingField(ctx, customerID)
	metrics.RecordRemoteLatency("tasting_field", float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordRemoteError("tasting_field")
	}
	return raw, found, err
}

func (s *Service) timedWrite(ctx context.Context, customerID string, doc []byte) error {
	start := time.Now()
	err := s.remote.SetTastingField(ctx, customerID, doc)
	metrics.RecordRemoteLatency("metafields_set", float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordRemoteError("metafields_set")
	}
	return err
}

// GetStats exposes runtime counters for the /stats endpoint.
func (s *Service) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"submissions_accepted": s.accepted.Load(),
		"submissions_failed":   s.failed.Load(),
		"documents_recovered":  s.recovered.Load(),
		"uptime_seconds":       int64(time.Since(s.startedAt).Seconds()),
	}
}
