package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// Millis is a timestamp persisted as Unix milliseconds.
type Millis struct {
	time.Time
}

// At wraps t, truncated to millisecond precision.
func At(t time.Time) Millis {
	return Millis{Time: time.UnixMilli(t.UnixMilli()).UTC()}
}

// MarshalJSON encodes the timestamp as a JSON number.
func (m Millis) MarshalJSON() ([]byte, error) {
	if m.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(m.UnixMilli())
}

// UnmarshalJSON accepts a JSON number of milliseconds or null.
func (m *Millis) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		m.Time = time.Time{}
		return nil
	}
	var ms float64
	if err := json.Unmarshal(b, &ms); err != nil {
		return err
	}
	m.Time = time.UnixMilli(int64(ms)).UTC()
	return nil
}
