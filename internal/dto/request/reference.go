package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"strconv"
	"strings"

	"movie-review/internal/schema"
)

// UserReference points at a user by id. It accepts a number (3), a
// numeric string ("3") or the user's IRI ("/api/users/3"). Zero means unset.
type UserReference int64

func (r *UserReference) UnmarshalJSON(data []byte) error {
	id, err := parseReference(data, schema.Users.IRI)
	if err != nil {
		return err
	}
	*r = UserReference(id)
	return nil
}

func (r UserReference) ID() int64 {
	return int64(r)
}

// MovieReference is UserReference for movies.
type MovieReference int64

func (r *MovieReference) UnmarshalJSON(data []byte) error {
	id, err := parseReference(data, schema.Movies.IRI)
	if err != nil {
		return err
	}
	*r = MovieReference(id)
	return nil
}

func (r MovieReference) ID() int64 {
	return int64(r)
}

// parseReference reads an id out of data. An IRI must be exactly the one
// iri builds for that id, so a path to another resource is rejected.
func parseReference(data []byte, iri func(int64) string) (int64, error) {
	if bytes.Equal(data, []byte("null")) {
		return 0, nil
	}

	raw, link := string(data), ""
	if strings.HasPrefix(raw, `"`) {
		if err := json.Unmarshal(data, &raw); err != nil {
			return 0, err
		}
		if strings.HasPrefix(raw, "/") {
			link, raw = raw, path.Base(raw)
		}
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid reference %s", data)
	}
	if link != "" && link != iri(id) {
		return 0, fmt.Errorf("invalid reference %s", data)
	}

	return id, nil
}

// Nullable tells an absent key apart from an explicit null.
type Nullable[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(data, []byte("null")) {
		var zero T
		n.Valid = false
		n.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// Ptr returns the value as a pointer, nil when null.
func (n Nullable[T]) Ptr() *T {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}
