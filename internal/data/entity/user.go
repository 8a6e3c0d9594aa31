package entity

type User struct {
	Base
	Username     string `db:"username"`
	Email        string `db:"email"`
	PasswordHash string `db:"password"`

	// Read projections filled by the repositories for the users_read view.
	Movies   []*Movie   `db:"-"`
	Comments []*Comment `db:"-"`
}
