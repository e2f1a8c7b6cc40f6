package model

import (
	"bytes"
	"encoding/json"
)

// Entity is implemented by every record the API returns with an id.
type Entity interface {
	GetID() string
}

// Ref is a relationship field the API returns either as a bare id string or as
// the embedded object. It marshals back in the shape it arrived in.
type Ref[T Entity] struct {
	ID    string
	Value *T
}

// RefTo builds a Ref that only carries the id, the shape request payloads use.
func RefTo[T Entity](id string) Ref[T] { return Ref[T]{ID: id} }

// Resolved reports whether the embedded object was returned.
func (r Ref[T]) Resolved() bool { return r.Value != nil }

// IsZero lets `omitempty`-style checks and callers treat an unset ref as absent.
func (r Ref[T]) IsZero() bool { return r.ID == "" && r.Value == nil }

func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if r.Value != nil {
		return json.Marshal(r.Value)
	}
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

func (r *Ref[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*r = Ref[T]{}
		return nil
	}
	if b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = Ref[T]{ID: id}
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*r = Ref[T]{ID: v.GetID(), Value: &v}
	return nil
}
