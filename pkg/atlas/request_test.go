package atlas

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/samvad-hq/atlas-client/pkg/httpclient"
)

type fakeResponse struct {
	status int
	body   string
}

func (r fakeResponse) Body() []byte         { return []byte(r.body) }
func (r fakeResponse) StatusCode() int      { return r.status }
func (r fakeResponse) Header(string) string { return "" }

// fakeHTTPClient serves queued responses and records requested URLs.
type fakeHTTPClient struct {
	responses []fakeResponse
	err       error
	urls      []string
}

func (f *fakeHTTPClient) Get(_ context.Context, url string, _ map[string]string) (httpclient.Response, error) {
	f.urls = append(f.urls, url)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		return fakeResponse{status: http.StatusOK, body: `{"status":"OK"}`}, nil
	}
	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return resp, nil
}

func newTestClient(fake *fakeHTTPClient) *Client {
	return NewClient(Config{APIKey: "KEY", BaseURL: "https://atlas.test/api/v2/"}, WithHTTPClient(fake))
}

func TestURIRequiresAPIKey(t *testing.T) {
	req := NewRequest(NewClient(Config{}), "cats", nil)

	_, err := req.URI(EndpointVolume)
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if !IsRequestError(err) {
		t.Fatalf("expected RequestError, got %T", err)
	}
	if !strings.Contains(err.Error(), "APIKey") {
		t.Fatalf("expected guidance in error, got %q", err.Error())
	}
}

func TestURIEncodesEligibleParams(t *testing.T) {
	req := NewRequest(newTestClient(&fakeHTTPClient{}), "cats and dogs", map[string]any{
		"flag":     true,
		"off":      false,
		"limit":    0,
		"since":    NewDate(2020, time.January, 15),
		"until":    time.Date(2020, time.January, 15, 13, 0, 0, 0, time.UTC),
		"tags":     []string{"a", "b,c"},
		"_hidden":  "x",
		"LIMIT":    5,
		"callback": func() {},
	})

	got, err := req.URI(EndpointVolume)
	if err != nil {
		t.Fatalf("URI: %v", err)
	}
	want := "https://atlas.test/api/v2/volume?api_key=KEY" +
		"&flag=1&query=cats+and+dogs&since=2020-01-15&tags=a%2Cb%2Cc&until=2020-01-15"
	if got != want {
		t.Fatalf("URI mismatch\n got: %s\nwant: %s", got, want)
	}
}

func TestNewRequestTrimsAndDropsEmpty(t *testing.T) {
	req := NewRequest(newTestClient(&fakeHTTPClient{}), "q", map[string]any{
		"  spaced  ": "  value ",
		"blank":      "   ",
		"   ":        "orphan",
		"none":       nil,
		"list":       []string{},
		"off":        false,
		"zero":       0,
		"ratio":      0.0,
	})

	names := req.Params().Names()
	if len(names) != 2 || names[0] != "query" || names[1] != "spaced" {
		t.Fatalf("unexpected names %v", names)
	}
	if v, _ := req.Params().Get("spaced"); v != "value" {
		t.Fatalf("expected trimmed value, got %q", v)
	}
}

func TestURIAfterMutation(t *testing.T) {
	req := NewRequest(newTestClient(&fakeHTTPClient{}), "q", nil)
	req.Set("late", nil).
		Set("count", 5).
		Set("off", false).
		Set("ratio", 2.5).
		Set("sources", map[string]struct{}{"twitter": {}, "blogs": {}}).
		Set("CONSTANT", "skip")
	req.Params().Delete("query")

	got, err := req.URI("posts")
	if err != nil {
		t.Fatalf("URI: %v", err)
	}
	want := "https://atlas.test/api/v2/posts?api_key=KEY&count=5&off=0&ratio=2.5&sources=blogs%2Ctwitter"
	if got != want {
		t.Fatalf("URI mismatch\n got: %s\nwant: %s", got, want)
	}
}

func TestEncodeValue(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"true", true, "1"},
		{"false", false, "0"},
		{"date", NewDate(2020, time.January, 15), "2020-01-15"},
		{"datetime", time.Date(2020, time.January, 15, 13, 0, 0, 0, time.UTC), "2020-01-15"},
		{"sequence", []string{"a", "b,c"}, "a,b,c"},
		{"array", [2]int{1, 2}, "1,2"},
		{"bool set", map[string]bool{"y": true, "x": true, "n": false}, "x,y"},
		{"int", 42, "42"},
		{"string", "plain", "plain"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EncodeValue(tc.in); got != tc.want {
				t.Fatalf("EncodeValue(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestEndpointMethodUsesCache(t *testing.T) {
	fake := &fakeHTTPClient{responses: []fakeResponse{
		{status: http.StatusOK, body: `{"status":"OK","output":[{"count":3}]}`},
	}}
	req := newTestClient(fake).NewRequest("q", nil)

	for i := 0; i < 2; i++ {
		out, err := req.Volume(context.Background())
		if err != nil {
			t.Fatalf("Volume: %v", err)
		}
		list, ok := out.([]any)
		if !ok || len(list) != 1 {
			t.Fatalf("unexpected output %#v", out)
		}
	}
	if len(fake.urls) != 1 {
		t.Fatalf("expected 1 network call, got %d", len(fake.urls))
	}

	if _, err := req.Execute(context.Background(), EndpointVolume, true); err != nil {
		t.Fatalf("Execute skip cache: %v", err)
	}
	if _, err := req.Execute(context.Background(), EndpointVolume, true); err != nil {
		t.Fatalf("Execute skip cache: %v", err)
	}
	if len(fake.urls) != 3 {
		t.Fatalf("expected skipCache to hit network each time, got %d calls", len(fake.urls))
	}
}

func TestExecuteDoesNotCacheFailures(t *testing.T) {
	fake := &fakeHTTPClient{responses: []fakeResponse{
		{status: http.StatusBadGateway, body: "gateway down"},
		{status: http.StatusOK, body: `{"status":"OK","output":1}`},
	}}
	req := newTestClient(fake).NewRequest("q", nil)

	if _, err := req.Execute(context.Background(), EndpointTopics, false); !IsServerError(err) {
		t.Fatalf("expected server error, got %v", err)
	}
	if _, ok := req.Cached(EndpointTopics); ok {
		t.Fatalf("failed result must not be cached")
	}
	res, err := req.Execute(context.Background(), EndpointTopics, false)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Get("output").Int() != 1 {
		t.Fatalf("unexpected result body %s", res.Body)
	}
	if _, ok := req.Cached(EndpointTopics); !ok {
		t.Fatalf("successful result should be cached")
	}
}

func TestExecuteErrorClassification(t *testing.T) {
	cases := []struct {
		name      string
		status    int
		body      string
		wantReq   bool
		wantCode  int
		wantInMsg string
	}{
		{"404 json", http.StatusNotFound, `{"status_message":"bad query"}`, true, 404, "bad query"},
		{"401 text", http.StatusUnauthorized, "denied", true, 401, "denied"},
		{"500 text", http.StatusInternalServerError, "oops", false, 500, "oops"},
		{"503 json", http.StatusServiceUnavailable, `{"status":"ERROR","status_message":"busy"}`, false, 503, "busy"},
		{"not json", http.StatusOK, "<html>", false, 200, "not parseable as JSON"},
		{"not object", http.StatusOK, `[1,2]`, false, 200, "not a JSON object"},
		{"no status", http.StatusOK, `{"output":[]}`, false, 200, "no status"},
		{"bad status", http.StatusOK, `{"status":"ERROR","status_message":"quota"}`, false, 200, "quota"},
		{"empty status", http.StatusOK, `{"status":"","status_message":"odd"}`, false, 200, `bad status (code 200, status ""): odd`},
		{"null status", http.StatusOK, `{"status":null}`, false, 200, "bad status"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeHTTPClient{responses: []fakeResponse{{status: tc.status, body: tc.body}}}
			req := newTestClient(fake).NewRequest("q", nil)

			_, err := req.Execute(context.Background(), EndpointPosts, false)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantInMsg) {
				t.Fatalf("error %q does not contain %q", err.Error(), tc.wantInMsg)
			}
			if tc.wantReq {
				var re *RequestError
				if !errors.As(err, &re) || re.StatusCode != tc.wantCode {
					t.Fatalf("expected RequestError code %d, got %#v", tc.wantCode, err)
				}
				if IsServerError(err) {
					t.Fatalf("request error must not be a server error")
				}
				return
			}
			var se *ServerError
			if !errors.As(err, &se) || se.StatusCode != tc.wantCode {
				t.Fatalf("expected ServerError code %d, got %#v", tc.wantCode, err)
			}
		})
	}
}

func TestExecuteTransportErrorIsUnclassified(t *testing.T) {
	boom := errors.New("connection refused")
	req := newTestClient(&fakeHTTPClient{err: boom}).NewRequest("q", nil)

	_, err := req.Execute(context.Background(), EndpointVolume, false)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped transport error, got %v", err)
	}
	if IsRequestError(err) || IsServerError(err) {
		t.Fatalf("transport errors are neither request nor server errors")
	}
}

func TestMetaAndMissingOutput(t *testing.T) {
	fake := &fakeHTTPClient{responses: []fakeResponse{
		{status: http.StatusOK, body: `{"status":"OK","query_meta":{"total":10}}`},
	}}
	req := newTestClient(fake).NewRequest("q", nil)

	meta, err := req.Meta(context.Background())
	if err != nil {
		t.Fatalf("Meta: %v", err)
	}
	node, ok := meta.(*Node)
	if !ok {
		t.Fatalf("expected *Node, got %T", meta)
	}
	if total, _ := node.Int("total"); total != 10 {
		t.Fatalf("total = %d", total)
	}

	if _, err := req.Volume(context.Background()); !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
	if len(fake.urls) != 1 {
		t.Fatalf("expected cached volume result, got %d calls", len(fake.urls))
	}
}

func TestRunAgainstHTTPServer(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/sentiment" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"OK","output":{"positive":0.6,"date":"2020-01-15"}}`))
	}))
	defer srv.Close()

	client := NewClient(Config{APIKey: "KEY", BaseURL: srv.URL + "/api/v2"})
	req := client.NewRequest("coffee", map[string]any{"start_date": NewDate(2020, time.January, 1)})

	node, err := req.Run(context.Background(), EndpointSentiment, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if gotQuery != "api_key=KEY&query=coffee&start_date=2020-01-01" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
	pos, ok := node.Path("output.positive")
	if !ok || pos.(float64) != 0.6 {
		t.Fatalf("unexpected positive %v", pos)
	}
	date, ok := node.Path("output.date")
	if _, isTime := date.(time.Time); !ok || !isTime {
		t.Fatalf("expected date field to surface as time.Time, got %T", date)
	}
}

func TestIsEndpoint(t *testing.T) {
	if len(Endpoints) != 35 {
		t.Fatalf("expected 35 endpoints, got %d", len(Endpoints))
	}
	if !IsEndpoint("home-ownership") || IsEndpoint("home_ownership") {
		t.Fatalf("IsEndpoint mismatch")
	}
}
