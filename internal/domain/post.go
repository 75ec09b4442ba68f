package domain

import "time"

// Post is a single feed entry. IDs are unique and stable for the lifetime
// of the store; the collection mutates by membership only, never in place.
// JSON tags match the public wire format.
type Post struct {
	ID      string    `json:"_id"`
	Author  string    `json:"author"`
	Content string    `json:"content"`
	Created time.Time `json:"created"`
}
