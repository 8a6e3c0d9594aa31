package entity

import (
	"time"
)

type Comment struct {
	Base
	Content string    `db:"content"`
	Date    time.Time `db:"date"`
	User    *User     `db:"-"`

	// owning side of Movie.comments, only written through Movie.AddComment
	// and Movie.RemoveComment
	movie *Movie
}

// Movie returns the movie the comment belongs to, or nil.
func (c *Comment) Movie() *Movie {
	return c.movie
}

func (c *Comment) MovieID() int64 {
	if c.movie == nil {
		return 0
	}
	return c.movie.ID
}

func (c *Comment) UserID() int64 {
	if c.User == nil {
		return 0
	}
	return c.User.ID
}
