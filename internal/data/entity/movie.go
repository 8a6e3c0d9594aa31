package entity

import (
	"time"
)

type Movie struct {
	Base
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Image       string    `db:"image"`
	WatchLink   string    `db:"watch_link"`
	Stars       *int      `db:"stars"`
	Date        time.Time `db:"date"`
	User        *User     `db:"-"`

	comments []*Comment
}

// Comments returns a snapshot of the movie's comment collection.
func (m *Movie) Comments() []*Comment {
	out := make([]*Comment, len(m.comments))
	copy(out, m.comments)
	return out
}

// HasComment reports whether c is part of the collection.
func (m *Movie) HasComment(c *Comment) bool {
	for _, existing := range m.comments {
		if existing == c {
			return true
		}
	}
	return false
}

// AddComment appends c and points its movie reference at m.
// Adding a comment already in the collection is a no-op.
func (m *Movie) AddComment(c *Comment) *Movie {
	if c == nil || m.HasComment(c) {
		return m
	}

	m.comments = append(m.comments, c)
	c.movie = m

	return m
}

// RemoveComment drops c from the collection. The comment's movie reference
// is cleared only while it still points at m.
func (m *Movie) RemoveComment(c *Comment) *Movie {
	for i, existing := range m.comments {
		if existing != c {
			continue
		}

		m.comments = append(m.comments[:i], m.comments[i+1:]...)
		if c.movie == m {
			c.movie = nil
		}
		break
	}

	return m
}

// UserID returns the owner id, or 0 when no owner is set.
func (m *Movie) UserID() int64 {
	if m.User == nil {
		return 0
	}
	return m.User.ID
}
