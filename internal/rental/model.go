package rental

import (
	"time"

	"github.com/google/uuid"
)

// Payment tracks whether a member has settled their share of the pinned
// cottage-rental expense, independently of the generic settlement view.
// AmountCents always mirrors the member's current rental split: the split
// is the source of truth and is re-synced onto this row whenever it
// changes. Only paid/paid_at belong to this row.
type Payment struct {
	RoomID      uuid.UUID  `json:"room_id"`
	UserID      uuid.UUID  `json:"user_id"`
	AmountCents int64      `json:"amount_cents"`
	Paid        bool       `json:"paid"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`

	// Populated from JOIN
	UserName string `json:"user_name,omitempty"`
}
