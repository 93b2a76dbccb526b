package reminder

import "time"

// DefaultCooldown is the minimum interval between two reminders from the
// same sender to the same recipient in a room.
const DefaultCooldown = 5 * 24 * time.Hour

// CanSend reports whether a reminder may go out at now. A nil lastSentAt
// means none was ever sent; otherwise the full cooldown must have elapsed,
// with the boundary instant itself allowed.
func CanSend(lastSentAt *time.Time, now time.Time, cooldown time.Duration) bool {
	if lastSentAt == nil {
		return true
	}
	return !now.Before(lastSentAt.Add(cooldown))
}

// NextAllowedAt returns the earliest instant a follow-up reminder is allowed
func NextAllowedAt(lastSentAt time.Time, cooldown time.Duration) time.Time {
	return lastSentAt.Add(cooldown)
}
