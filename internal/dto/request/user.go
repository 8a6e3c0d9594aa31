package request

// bcrypt rejects passwords longer than 72 bytes.
type UserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" validate:"required,min=8,maxbytes=72"`
}

type UserPatchRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,maxbytes=72"`
}
