package storage

import (
	"fmt"
	"strings"
	"time"
)

// Store remembers the digest last published for each result key so unchanged
// endpoint results can be skipped.
type Store interface {
	Close() error
	Unchanged(key, digest string) (bool, error)
	Remember(key, digest string) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	DigestTTL       time.Duration
	CleanupInterval time.Duration
}

const (
	defaultDigestTTL       = 7 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.DigestTTL <= 0 {
		opts.DigestTTL = defaultDigestTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

// ResultKey identifies one saved query's endpoint result.
func ResultKey(queryID, endpoint string) string {
	return queryID + "/" + endpoint
}

type noopStore struct{}

func (noopStore) Close() error                           { return nil }
func (noopStore) Unchanged(string, string) (bool, error) { return false, nil }
func (noopStore) Remember(string, string) error          { return nil }
