package models

import "time"

// Tournament is the persisted identity of one Schleifchen tournament; the
// engine state itself is stored as a snapshot keyed by tournament ID.
type Tournament struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
