package publishers

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Fanout delivers each result event to every configured sink concurrently.
type Fanout struct {
	sinks []Publisher
	log   Logger
}

// NewFanout builds a dispatcher over pubs; nil entries are skipped.
func NewFanout(pubs []Publisher, log Logger) *Fanout {
	sinks := make([]Publisher, 0, len(pubs))
	for _, p := range pubs {
		if p != nil {
			sinks = append(sinks, p)
		}
	}
	return &Fanout{sinks: sinks, log: ensureLogger(log)}
}

// Publish sends evt to all sinks and reports how many accepted it. Failures
// are joined in sink order and name the query and endpoint of the result.
func (f *Fanout) Publish(ctx context.Context, evt Event) (int, error) {
	if f == nil || len(f.sinks) == 0 {
		return 0, nil
	}

	failures := make([]error, len(f.sinks))
	var wg sync.WaitGroup
	for i, p := range f.sinks {
		wg.Add(1)
		go func(i int, p Publisher) {
			defer wg.Done()
			if err := p.Publish(ctx, evt); err != nil {
				failures[i] = fmt.Errorf("deliver %s/%s to %s[%s]: %w", evt.QueryID, evt.Endpoint, p.Type(), p.ID(), err)
			}
		}(i, p)
	}
	wg.Wait()

	delivered := 0
	for _, err := range failures {
		if err == nil {
			delivered++
		}
	}
	f.log.DebugObj("result event dispatched", "fanout_delivery", map[string]any{
		"event_id":  evt.ID,
		"query_id":  evt.QueryID,
		"endpoint":  evt.Endpoint,
		"delivered": delivered,
		"sinks":     len(f.sinks),
	})
	return delivered, errors.Join(failures...)
}

// Size returns the number of sinks.
func (f *Fanout) Size() int {
	if f == nil {
		return 0
	}
	return len(f.sinks)
}

// Close releases sinks that hold connections.
func (f *Fanout) Close() error {
	if f == nil {
		return nil
	}
	var errs []error
	for _, p := range f.sinks {
		c, ok := p.(closer)
		if !ok {
			continue
		}
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s[%s]: %w", p.Type(), p.ID(), err))
		}
	}
	return errors.Join(errs...)
}
