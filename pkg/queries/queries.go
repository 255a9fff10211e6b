// Package queries loads saved Atlas query definitions from YAML or JSON files.
package queries

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/samvad-hq/atlas-client/pkg/atlas"
)

// Query is one saved query: free text, extra parameters and the endpoints to run.
type Query struct {
	ID        string         `json:"id" yaml:"id"`
	Name      string         `json:"name" yaml:"name"`
	Query     string         `json:"query" yaml:"query"`
	Params    map[string]any `json:"params" yaml:"params"`
	Endpoints []string       `json:"endpoints" yaml:"endpoints"`
	Enabled   *bool          `json:"enabled" yaml:"enabled"`
}

type configFile struct {
	Queries []Query `json:"queries" yaml:"queries"`
}

// Registry holds the saved queries loaded from a file.
type Registry struct {
	mu      sync.RWMutex
	queries []Query
	idx     map[string]Query
}

// LoadRegistry loads saved queries from a YAML/JSON file.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("queries file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open queries file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read queries file: %w", err)
	}

	parsed, err := parseQueries(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(parsed.Queries) == 0 {
		return nil, errors.New("queries file contains no queries entries")
	}

	reg := &Registry{
		queries: make([]Query, len(parsed.Queries)),
		idx:     make(map[string]Query, len(parsed.Queries)),
	}
	for i := range parsed.Queries {
		q := sanitizeQuery(parsed.Queries[i])
		if err := validateQuery(q); err != nil {
			return nil, fmt.Errorf("queries[%d]: %w", i, err)
		}
		if _, exists := reg.idx[q.ID]; exists {
			return nil, fmt.Errorf("duplicate query id %q", q.ID)
		}
		reg.queries[i] = q
		reg.idx[q.ID] = q
	}
	return reg, nil
}

type unmarshalFn func([]byte, any) error

func parseQueries(data []byte, ext string) (configFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var cf configFile
		if err := d.fn(data, &cf); err == nil {
			return cf, nil
		}
	}
	return configFile{}, errors.New("queries file format not recognized (expected YAML or JSON)")
}

func sanitizeQuery(q Query) Query {
	q.ID = strings.TrimSpace(q.ID)
	q.Name = strings.TrimSpace(q.Name)
	q.Query = strings.TrimSpace(q.Query)
	if q.Name == "" {
		q.Name = q.ID
	}
	if q.Enabled == nil {
		def := true
		q.Enabled = &def
	}

	endpoints := make([]string, 0, len(q.Endpoints))
	seen := make(map[string]struct{}, len(q.Endpoints))
	for _, e := range q.Endpoints {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		endpoints = append(endpoints, e)
	}
	if len(endpoints) == 0 {
		endpoints = []string{atlas.EndpointVolume}
	}
	q.Endpoints = endpoints
	return q
}

func validateQuery(q Query) error {
	if q.ID == "" {
		return errors.New("id is required")
	}
	if q.Query == "" {
		return fmt.Errorf("query text is required for query %q", q.ID)
	}
	for _, e := range q.Endpoints {
		if !atlas.IsEndpoint(e) {
			return fmt.Errorf("unknown endpoint %q for query %q", e, q.ID)
		}
	}
	return nil
}

// ByID returns the saved query with the given id.
func (r *Registry) ByID(id string) (Query, bool) {
	if r == nil {
		return Query{}, false
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Query{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	q, ok := r.idx[id]
	return q, ok
}

// All returns all saved queries in file order.
func (r *Registry) All() []Query {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Query, len(r.queries))
	copy(out, r.queries)
	return out
}

// Enabled returns the saved queries that are not disabled.
func (r *Registry) Enabled() []Query {
	all := r.All()
	out := make([]Query, 0, len(all))
	for _, q := range all {
		if q.EnabledValue() {
			out = append(out, q)
		}
	}
	return out
}

// EnabledValue returns the enabled flag defaulting to true.
func (q Query) EnabledValue() bool {
	if q.Enabled == nil {
		return true
	}
	return *q.Enabled
}

// Request builds an Atlas request for the saved query on client.
func (q Query) Request(client *atlas.Client) *atlas.Request {
	return atlas.NewRequest(client, q.Query, q.Params)
}
