package domain

import "time"

// User is the identity issued by the managed auth provider.
// It is never created or deleted by this client.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Profile is the display profile attached to a user.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
