package atlas

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Result is the raw body of a successful endpoint call.
type Result struct {
	Endpoint      string
	Status        string
	StatusMessage string
	Body          json.RawMessage
}

// Get evaluates a gjson path against the raw body.
func (r Result) Get(path string) gjson.Result {
	return gjson.GetBytes(r.Body, path)
}

// Decode unmarshals the raw body into v.
func (r Result) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode %s result: %w", r.Endpoint, err)
	}
	return nil
}

// Map converts the raw body into a response tree.
func (r Result) Map() (*Node, error) {
	return MapJSON(r.Body)
}

// parseResult classifies an HTTP answer into a Result or one of the two error kinds.
func parseResult(endpoint string, status int, body []byte) (Result, error) {
	switch {
	case status >= 400 && status < 500:
		return Result{}, &RequestError{StatusCode: status, Message: errorMessage(body)}
	case status >= 500:
		return Result{}, &ServerError{StatusCode: status, Message: errorMessage(body)}
	}

	if !gjson.ValidBytes(body) {
		return Result{}, &ServerError{StatusCode: status, Message: "response is not parseable as JSON"}
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return Result{}, &ServerError{StatusCode: status, Message: "response is not a JSON object"}
	}

	st := doc.Get("status")
	if !st.Exists() {
		return Result{}, &ServerError{StatusCode: status, Message: "response has no status"}
	}
	msg := doc.Get("status_message").String()
	if st.Type != gjson.String || st.Str != "OK" {
		return Result{}, &ServerError{StatusCode: status, Status: st.String(), Message: msg, badStatus: true}
	}

	raw := make([]byte, len(body))
	copy(raw, body)
	return Result{
		Endpoint:      endpoint,
		Status:        st.Str,
		StatusMessage: msg,
		Body:          raw,
	}, nil
}

// errorMessage prefers the service's status_message and falls back to the raw text.
func errorMessage(body []byte) string {
	if gjson.ValidBytes(body) {
		doc := gjson.ParseBytes(body)
		if doc.IsObject() {
			if msg := doc.Get("status_message"); msg.Exists() {
				return msg.String()
			}
		}
	}
	return strings.TrimSpace(string(body))
}
