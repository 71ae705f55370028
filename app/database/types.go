package database

import (
	"time"
)

// Source is a source rating row.
type Source struct {
	ID        int64
	Domain    string
	Score     int
	Bias      string
	Category  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
