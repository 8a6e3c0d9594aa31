package request

import "time"

type CommentRequest struct {
	Content string         `json:"content"`
	Date    *time.Time     `json:"date"`
	UserID  UserReference  `json:"user_id"`
	MovieID MovieReference `json:"movie_id"`
}

type CommentPatchRequest struct {
	Content *string                  `json:"content,omitempty"`
	Date    Nullable[time.Time]      `json:"date"`
	UserID  Nullable[UserReference]  `json:"user_id"`
	MovieID Nullable[MovieReference] `json:"movie_id"`
}
