package queue

import "time"

const (
	MovieCreated   = "movie.created"
	MovieUpdated   = "movie.updated"
	MovieDeleted   = "movie.deleted"
	CommentCreated = "comment.created"
	CommentUpdated = "comment.updated"
	CommentDeleted = "comment.deleted"
	UserCreated    = "user.created"
	UserUpdated    = "user.updated"
	UserDeleted    = "user.deleted"
)

// Event is the JSON body published for every successful write.
type Event struct {
	Name       string    `json:"event"`
	ID         int64     `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewEvent(name string, id int64) Event {
	return Event{Name: name, ID: id, OccurredAt: time.Now().UTC()}
}
