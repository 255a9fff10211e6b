package publishers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/samvad-hq/atlas-client/pkg/atlas"
)

// Event represents one Atlas endpoint result published downstream.
type Event struct {
	ID          string          `json:"id"`
	QueryID     string          `json:"query_id"`
	QueryName   string          `json:"query_name"`
	Endpoint    string          `json:"endpoint"`
	Status      string          `json:"status"`
	Digest      string          `json:"digest"`
	Result      json.RawMessage `json:"result"`
	CollectedAt time.Time       `json:"collected_at"`
}

// NewEvent constructs an Event for the given saved query and endpoint result.
func NewEvent(queryID, queryName string, res atlas.Result) Event {
	return Event{
		ID:          uuid.NewString(),
		QueryID:     queryID,
		QueryName:   queryName,
		Endpoint:    res.Endpoint,
		Status:      res.Status,
		Digest:      Digest(res.Body),
		Result:      res.Body,
		CollectedAt: time.Now().UTC(),
	}
}

// Digest returns the hex SHA-256 of a result body.
func Digest(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// attributes are the routing attributes attached to queue and topic messages.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"query_id": e.QueryID,
		"endpoint": e.Endpoint,
	}
}
