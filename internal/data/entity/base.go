package entity

import (
	"time"
)

// Base holds the columns PostgreSQL fills in on insert.
type Base struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
