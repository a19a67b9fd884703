// Package models defines the records the shopadmin client exchanges with the
// backend REST API and keeps in its resource snapshots.
package models

import (
	"encoding/json"
	"time"

	"github.com/spf13/cast"
)

// The backend is loose about scalar types: ids come as numbers or strings,
// prices as numbers or numeric strings. The types below accept both.

// ID is a record identifier kept as a string on the client.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return err
	}
	*id = ID(s)
	return nil
}

func (id ID) String() string { return string(id) }

// Amount is a money value.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

// Count is a non-fractional quantity.
type Count int

func (c *Count) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return err
	}
	*c = Count(n)
	return nil
}

// Timestamp accepts the date layouts cast understands (RFC 3339, SQL
// datetime, unix seconds). A null or empty value leaves the zero time.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v == nil || v == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := cast.ToTimeE(v)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
