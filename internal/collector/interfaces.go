package collector

import (
	"context"

	"github.com/samvad-hq/atlas-client/pkg/publishers"
)

// EventPublisher publishes endpoint results downstream.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// DigestStore remembers which result digests were already published.
type DigestStore interface {
	Unchanged(key, digest string) (bool, error)
	Remember(key, digest string) error
}
