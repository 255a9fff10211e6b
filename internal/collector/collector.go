package collector

import (
	"context"
	"errors"
	"fmt"

	"github.com/samvad-hq/atlas-client/internal/logger"
	"github.com/samvad-hq/atlas-client/internal/storage"
	"github.com/samvad-hq/atlas-client/pkg/atlas"
	"github.com/samvad-hq/atlas-client/pkg/publishers"
	"github.com/samvad-hq/atlas-client/pkg/queries"
)

// Service runs saved queries against Atlas and publishes changed results.
// It is not safe for concurrent Run calls.
type Service struct {
	client    *atlas.Client
	publisher EventPublisher
	store     DigestStore
	log       logger.Logger
	requests  map[string]*atlas.Request
}

// NewService wires a collector over an Atlas client, a publisher and a digest store.
func NewService(client *atlas.Client, pub EventPublisher, log logger.Logger, store DigestStore) *Service {
	if log == nil {
		log = &logger.NopLogger{}
	}
	if store == nil {
		store = noopDigests{}
	}
	return &Service{
		client:    client,
		publisher: pub,
		store:     store,
		log:       log,
		requests:  make(map[string]*atlas.Request),
	}
}

// Run executes one collection pass over qs.
func (s *Service) Run(ctx context.Context, qs []queries.Query) error {
	if s == nil || s.client == nil || s.publisher == nil {
		return fmt.Errorf("collector service is not initialized")
	}
	if len(qs) == 0 {
		return fmt.Errorf("no queries configured for collection")
	}

	errs := s.runAll(ctx, qs)
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func (s *Service) runAll(ctx context.Context, qs []queries.Query) []error {
	errs := make([]error, 0, len(qs))

	for _, q := range qs {
		if ctx.Err() != nil {
			break
		}
		if err := s.runQuery(ctx, q); err != nil {
			errs = append(errs, err)
			s.log.ErrorObj("query collection failed", "query_error", map[string]any{
				"query_id": q.ID,
				"error":    err.Error(),
			})
		}
	}

	return errs
}

// request returns the long-lived Request for q, built on first use.
func (s *Service) request(q queries.Query) *atlas.Request {
	if req, ok := s.requests[q.ID]; ok {
		return req
	}
	req := q.Request(s.client)
	s.requests[q.ID] = req
	return req
}

func (s *Service) runQuery(ctx context.Context, q queries.Query) error {
	req := s.request(q)

	var errs []error
	published := 0
	for _, endpoint := range q.Endpoints {
		if ctx.Err() != nil {
			break
		}
		res, err := req.Execute(ctx, endpoint, true)
		if err != nil {
			errs = append(errs, fmt.Errorf("query %s endpoint %s: %w", q.ID, endpoint, err))
			continue
		}
		sent, err := s.publishResult(ctx, q, res)
		if err != nil {
			errs = append(errs, fmt.Errorf("publish %s/%s: %w", q.ID, endpoint, err))
		}
		if sent {
			published++
		}
	}

	s.log.InfoObj("query collection completed", "query_result", map[string]any{
		"query_id":          q.ID,
		"endpoints":         len(q.Endpoints),
		"results_published": published,
		"errors":            len(errs),
	})
	return errors.Join(errs...)
}

// publishResult publishes res unless its digest matches the last one sent.
func (s *Service) publishResult(ctx context.Context, q queries.Query, res atlas.Result) (bool, error) {
	evt := publishers.NewEvent(q.ID, q.Name, res)
	key := storage.ResultKey(q.ID, res.Endpoint)

	same, err := s.store.Unchanged(key, evt.Digest)
	if err != nil {
		s.log.WarnObj("digest lookup failed; publishing anyway", "digest_error", map[string]any{
			"key":   key,
			"error": err.Error(),
		})
	}
	if same {
		s.log.DebugObj("result unchanged; skipping publish", "result_skip", map[string]any{
			"key": key,
		})
		return false, nil
	}

	delivered, pubErr := s.publisher.Publish(ctx, evt)
	if delivered > 0 {
		if err := s.store.Remember(key, evt.Digest); err != nil {
			s.log.WarnObj("digest store failed", "digest_error", map[string]any{
				"key":   key,
				"error": err.Error(),
			})
		}
	}
	return delivered > 0, pubErr
}

type noopDigests struct{}

func (noopDigests) Unchanged(string, string) (bool, error) { return false, nil }
func (noopDigests) Remember(string, string) error          { return nil }
