package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samvad-hq/atlas-client/pkg/atlas"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func atlasServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "KEY" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status":"error","status_message":"bad key"}`))
			return
		}
		switch r.URL.Path {
		case "/volume":
			_, _ = w.Write([]byte(`{"status":"OK","query_meta":{"query":"` + r.URL.Query().Get("query") + `"},"output":[{"posts":42}]}`))
		case "/sentiment":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("upstream exploded"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{"sources=twitter,blogs", " include_retweets = TRUE", "x=false", "empty="})
	if err != nil {
		t.Fatalf("parseParams: %v", err)
	}
	if params["sources"] != "twitter,blogs" {
		t.Fatalf("unexpected sources %v", params["sources"])
	}
	if params["include_retweets"] != true || params["x"] != false {
		t.Fatalf("booleans not parsed: %v", params)
	}
	if params["empty"] != "" {
		t.Fatalf("empty value should be kept for construction to drop")
	}

	for _, bad := range []string{"novalue", "=x"} {
		if _, err := parseParams([]string{bad}); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestURICommand(t *testing.T) {
	out, err := execute(t, "--api-key", "KEY", "--base-url", "https://atlas.test/api/v2",
		"uri", "volume", "-q", "coffee shops", "-p", "include_retweets=true", "-p", "end_date=2020-02-01")
	if err != nil {
		t.Fatalf("uri: %v", err)
	}
	want := "https://atlas.test/api/v2/volume?api_key=KEY&end_date=2020-02-01&include_retweets=1&query=coffee+shops\n"
	if out != want {
		t.Fatalf("uri output\n got: %q\nwant: %q", out, want)
	}
}

func TestURICommandRejectsUnknownEndpoint(t *testing.T) {
	if _, err := execute(t, "--api-key", "KEY", "uri", "nope", "-q", "x"); err == nil {
		t.Fatalf("expected unknown endpoint error")
	}
}

func TestURICommandRequiresQuery(t *testing.T) {
	if _, err := execute(t, "--api-key", "KEY", "uri", "volume"); err == nil {
		t.Fatalf("expected error without query")
	}
}

func TestURICommandMissingAPIKey(t *testing.T) {
	_, err := execute(t, "--api-key", "", "uri", "volume", "-q", "x")
	if !errors.Is(err, atlas.ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestRunCommandField(t *testing.T) {
	srv := atlasServer(t)
	out, err := execute(t, "--api-key", "KEY", "--base-url", srv.URL, "run", "volume", "-q", "coffee", "-f", "output.0.posts")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.TrimSpace(out) != "42" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRunCommandPreservesKeyOrder(t *testing.T) {
	srv := atlasServer(t)
	out, err := execute(t, "--api-key", "KEY", "--base-url", srv.URL, "run", "volume", "-q", "coffee")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	status := strings.Index(out, `"status"`)
	meta := strings.Index(out, `"query_meta"`)
	output := strings.Index(out, `"output"`)
	if status < 0 || !(status < meta && meta < output) {
		t.Fatalf("keys out of document order:\n%s", out)
	}
}

func TestRunCommandRaw(t *testing.T) {
	srv := atlasServer(t)
	out, err := execute(t, "--api-key", "KEY", "--base-url", srv.URL, "run", "volume", "-q", "tea", "--raw")
	if err != nil {
		t.Fatalf("run --raw: %v", err)
	}
	if !strings.HasPrefix(out, `{"status":"OK","query_meta":{"query":"tea"}`) {
		t.Fatalf("unexpected raw output %q", out)
	}
}

func TestRunCommandErrors(t *testing.T) {
	srv := atlasServer(t)

	_, err := execute(t, "--api-key", "KEY", "--base-url", srv.URL, "run", "sentiment", "-q", "x")
	var se *atlas.ServerError
	if !errors.As(err, &se) || se.StatusCode != http.StatusInternalServerError || se.Message != "upstream exploded" {
		t.Fatalf("expected ServerError with raw text, got %v", err)
	}

	_, err = execute(t, "--api-key", "WRONG", "--base-url", srv.URL, "run", "volume", "-q", "x")
	var re *atlas.RequestError
	if !errors.As(err, &re) || re.StatusCode != http.StatusUnauthorized || re.Message != "bad key" {
		t.Fatalf("expected RequestError, got %v", err)
	}
}

func TestMetaCommandWithSavedQuery(t *testing.T) {
	srv := atlasServer(t)
	path := filepath.Join(t.TempDir(), "queries.yaml")
	if err := os.WriteFile(path, []byte("queries:\n  - id: brew\n    query: matcha\n"), 0o644); err != nil {
		t.Fatalf("write queries: %v", err)
	}

	out, err := execute(t, "--api-key", "KEY", "--base-url", srv.URL, "--queries-file", path, "meta", "--saved", "brew")
	if err != nil {
		t.Fatalf("meta: %v", err)
	}
	if !strings.Contains(out, `"query": "matcha"`) {
		t.Fatalf("unexpected meta output %q", out)
	}

	if _, err := execute(t, "--api-key", "KEY", "--queries-file", path, "meta", "--saved", "missing"); err == nil {
		t.Fatalf("expected error for unknown saved query")
	}
}

func TestEndpointsCommand(t *testing.T) {
	out, err := execute(t, "endpoints")
	if err != nil {
		t.Fatalf("endpoints: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(atlas.Endpoints) || lines[0] != "ages" || lines[len(lines)-1] != "volume" {
		t.Fatalf("unexpected endpoints output %v", lines)
	}
}
