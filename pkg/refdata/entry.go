package refdata

import (
	"encoding/json"
	"time"
)

// Entry is one stored reference data set.
type Entry struct {
	// Kind and Language repeat the key so stored files are self-describing.
	Kind     Kind   `json:"kind"`
	Language string `json:"language"`

	// FetchedAt is when the data was fetched from the Web API.
	FetchedAt time.Time `json:"fetched_at"`

	// Data is the decoded API payload (e.g. the hero list).
	Data json.RawMessage `json:"data"`
}

// Age returns how long ago the entry was fetched.
func (e *Entry) Age() time.Duration {
	return time.Since(e.FetchedAt)
}

// IsStale reports whether the entry is older than maxAge.
// A maxAge <= 0 never goes stale.
func (e *Entry) IsStale(maxAge time.Duration) bool {
	if maxAge <= 0 {
		return false
	}
	return e.Age() > maxAge
}

// Decode unmarshals Data into v.
func (e *Entry) Decode(v any) error {
	return json.Unmarshal(e.Data, v)
}
