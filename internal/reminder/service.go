package reminder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/umerqur/cottagetrip/internal/room"
	"github.com/umerqur/cottagetrip/internal/user"
)

var (
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrSelfReminder      = errors.New("cannot send a reminder to yourself")
	ErrInvalidType       = errors.New("invalid reminder type")
)

// CooldownError reports a reminder blocked by the cooldown window
type CooldownError struct {
	LastSentAt    time.Time
	NextAllowedAt time.Time
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("reminder already sent, next allowed at %s",
		e.NextAllowedAt.Format(time.RFC3339))
}

// Service handles payment reminders with a per-pair cooldown
type Service struct {
	repo     *Repository
	rooms    *room.Service
	users    *user.Repository
	mailer   Mailer
	cooldown time.Duration
}

// NewService creates a new reminder service
func NewService(repo *Repository, rooms *room.Service, users *user.Repository, mailer Mailer) *Service {
	return &Service{
		repo:     repo,
		rooms:    rooms,
		users:    users,
		mailer:   mailer,
		cooldown: DefaultCooldown,
	}
}

// Send delivers a payment reminder from one member to another. The cooldown
// slot is claimed in the store before the email goes out, so at most one
// reminder per pair lands inside any cooldown window regardless of
// concurrent requests. A blocked send returns a *CooldownError.
func (s *Service) Send(ctx context.Context, roomID, fromUserID uuid.UUID, req *SendReminderRequest) (*Reminder, error) {
	reminderType := req.ReminderType
	if reminderType == "" {
		reminderType = TypeRentalShare
	}
	if reminderType != TypeRentalShare && reminderType != TypeExpenseDebt {
		return nil, ErrInvalidType
	}
	if fromUserID == req.ToUserID {
		return nil, ErrSelfReminder
	}

	if err := s.rooms.RequireMember(ctx, roomID, fromUserID); err != nil {
		return nil, err
	}
	if err := s.rooms.RequireMember(ctx, roomID, req.ToUserID); err != nil {
		if errors.Is(err, room.ErrNotMember) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}

	reminder, err := s.repo.CheckAndRecord(ctx, roomID, fromUserID, req.ToUserID, reminderType, s.cooldown)
	if err != nil {
		return nil, err
	}
	if reminder == nil {
		lastSentAt, err := s.repo.GetLastSentAt(ctx, roomID, fromUserID, req.ToUserID, reminderType)
		if err != nil {
			return nil, err
		}
		if lastSentAt == nil {
			// The row vanished between the claim and the read; treat the
			// claim as lost to a concurrent sender.
			return nil, &CooldownError{LastSentAt: time.Now(), NextAllowedAt: time.Now().Add(s.cooldown)}
		}
		return nil, &CooldownError{
			LastSentAt:    *lastSentAt,
			NextAllowedAt: NextAllowedAt(*lastSentAt, s.cooldown),
		}
	}

	if err := s.deliver(ctx, roomID, fromUserID, req); err != nil {
		// The slot stays claimed. Re-claiming on delivery failure would let a
		// flaky mail provider defeat the cooldown.
		log.Printf("failed to deliver reminder email: %v", err)
	}

	return reminder, nil
}

func (s *Service) deliver(ctx context.Context, roomID, fromUserID uuid.UUID, req *SendReminderRequest) error {
	rm, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return err
	}
	sender, err := s.users.GetByID(ctx, fromUserID)
	if err != nil {
		return err
	}
	recipient, err := s.users.GetByID(ctx, req.ToUserID)
	if err != nil {
		return err
	}
	if sender == nil || recipient == nil {
		return ErrRecipientNotFound
	}

	subject := fmt.Sprintf("Payment reminder for %s", rm.Name)
	body := fmt.Sprintf("%s is reminding you about an outstanding payment in %s.", sender.Name, rm.Name)
	if req.AmountCents > 0 {
		body = fmt.Sprintf("%s is reminding you about an outstanding payment of %d.%02d %s in %s.",
			sender.Name, req.AmountCents/100, req.AmountCents%100, rm.Currency, rm.Name)
	}

	return s.mailer.Send(ctx, recipient.Email, recipient.Name, subject, body)
}
