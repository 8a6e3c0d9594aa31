package request

import "time"

// MovieRequest is the body of POST and PUT on movies. Every writable
// field is replaced; absent fields become empty and fail validation.
type MovieRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Image       string        `json:"image"`
	WatchLink   string        `json:"watchLink"`
	Stars       *int          `json:"stars"`
	Date        *time.Time    `json:"date"`
	User        UserReference `json:"user"`
}

// MoviePatchRequest carries only the fields present in a PATCH body. An
// explicit null clears the field.
type MoviePatchRequest struct {
	Title       *string                 `json:"title,omitempty"`
	Description *string                 `json:"description,omitempty"`
	Image       *string                 `json:"image,omitempty"`
	WatchLink   *string                 `json:"watchLink,omitempty"`
	Stars       Nullable[int]           `json:"stars"`
	Date        Nullable[time.Time]     `json:"date"`
	User        Nullable[UserReference] `json:"user"`
}
