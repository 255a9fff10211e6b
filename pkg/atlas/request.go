package atlas

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

var jsonHeaders = map[string]string{"Accept": "application/json"}

// Request is one Atlas query: a parameter mapping plus a cache of successful
// endpoint results. A Request is not safe for concurrent use.
type Request struct {
	client *Client
	params *Params
	cache  map[string]Result
}

// NewRequest stores query under the "query" parameter and adds params after
// trimming string keys and values; empty names and empty values are dropped.
// A nil client yields a Request whose URIs fail with ErrMissingAPIKey.
func NewRequest(client *Client, query string, params map[string]any) *Request {
	if client == nil {
		client = NewClient(Config{})
	}
	r := &Request{
		client: client,
		params: NewParams(),
		cache:  make(map[string]Result),
	}
	r.params.Set("query", query)

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		r.params.setTrimmed(name, params[name])
	}
	return r
}

// Params exposes the mutable parameter mapping.
func (r *Request) Params() *Params { return r.params }

// Set assigns a parameter after construction. No trimming is applied.
func (r *Request) Set(name string, value any) *Request {
	r.params.Set(name, value)
	return r
}

// URI builds the fully qualified query URI for endpoint.
func (r *Request) URI(endpoint string) (string, error) {
	cfg := r.client.cfg
	if cfg.APIKey == "" {
		return "", &RequestError{Message: missingKeyGuidance, Err: ErrMissingAPIKey}
	}

	var b strings.Builder
	b.WriteString(cfg.BaseURL)
	b.WriteString(endpoint)
	b.WriteString("?api_key=")
	b.WriteString(cfg.APIKey)
	for _, name := range r.params.Eligible() {
		v, _ := r.params.Get(name)
		b.WriteString(encodeParam(name, v))
	}
	return b.String(), nil
}

// URL is an alias of URI.
func (r *Request) URL(endpoint string) (string, error) { return r.URI(endpoint) }

// Cached returns the cached result for endpoint, if any.
func (r *Request) Cached(endpoint string) (Result, bool) {
	res, ok := r.cache[endpoint]
	return res, ok
}

// Execute returns the raw result for endpoint, from cache unless skipCache is
// set. Only successful results are cached.
func (r *Request) Execute(ctx context.Context, endpoint string, skipCache bool) (Result, error) {
	if !skipCache {
		if res, ok := r.cache[endpoint]; ok {
			cacheHitsTotal.WithLabelValues(endpoint).Inc()
			r.client.log.DebugObj("atlas cache hit", "atlas_request", map[string]any{
				"endpoint": endpoint,
			})
			return res, nil
		}
	}

	uri, err := r.URI(endpoint)
	if err != nil {
		return Result{}, err
	}

	res, err := r.fetch(ctx, endpoint, uri)
	requestsTotal.WithLabelValues(endpoint, outcomeOf(err)).Inc()
	if err != nil {
		r.client.log.WarnObj("atlas request failed", "atlas_error", map[string]any{
			"endpoint": endpoint,
			"error":    err.Error(),
		})
		return Result{}, err
	}

	r.cache[endpoint] = res
	r.client.log.DebugObj("atlas request completed", "atlas_request", map[string]any{
		"endpoint":   endpoint,
		"body_bytes": len(res.Body),
	})
	return res, nil
}

func (r *Request) fetch(ctx context.Context, endpoint, uri string) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	resp, err := r.client.http.Get(ctx, uri, jsonHeaders)
	if err != nil {
		return Result{}, fmt.Errorf("atlas get %s: %w", endpoint, err)
	}
	return parseResult(endpoint, resp.StatusCode(), resp.Body())
}

// Run executes endpoint and maps the result into a response tree.
func (r *Request) Run(ctx context.Context, endpoint string, skipCache bool) (*Node, error) {
	res, err := r.Execute(ctx, endpoint, skipCache)
	if err != nil {
		return nil, err
	}
	node, err := res.Map()
	if err != nil {
		return nil, &ServerError{Message: fmt.Sprintf("map %s response: %v", endpoint, err)}
	}
	return node, nil
}

// Output returns the "output" field of endpoint's mapped response.
func (r *Request) Output(ctx context.Context, endpoint string) (any, error) {
	return r.field(ctx, endpoint, "output")
}

// Meta returns the "query_meta" field of the volume endpoint.
func (r *Request) Meta(ctx context.Context) (any, error) {
	return r.field(ctx, EndpointVolume, "query_meta")
}

func (r *Request) field(ctx context.Context, endpoint, key string) (any, error) {
	node, err := r.Run(ctx, endpoint, false)
	if err != nil {
		return nil, err
	}
	v, ok := node.Get(key)
	if !ok {
		return nil, fmt.Errorf("%s %q: %w", endpoint, key, ErrMissingField)
	}
	return v, nil
}
