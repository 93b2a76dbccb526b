package user

import (
	"time"

	"github.com/google/uuid"
)

// User is a member profile. Credentials and sessions live with the hosted
// auth provider; this service only stores what it needs for display names
// and reminder emails.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
