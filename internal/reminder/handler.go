package reminder

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/umerqur/cottagetrip/internal/room"
	"github.com/umerqur/cottagetrip/pkg/middleware"
	"github.com/umerqur/cottagetrip/pkg/response"
)

// Handler handles HTTP requests for payment reminders
type Handler struct {
	service *Service
}

// NewHandler creates a new reminder handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for reminder endpoints mounted at
// /rooms/{roomId}/reminders
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Send)

	return r
}

// Send handles POST /rooms/{roomId}/reminders
// @Summary      Send a payment reminder
// @Description  At most one reminder per sender, recipient and type every five days; a blocked send returns 409 with the cooldown window
// @Tags         reminders
// @Accept       json
// @Produce      json
// @Param        roomId path string true "Room ID"
// @Param        request body SendReminderRequest true "Reminder request"
// @Success      201 {object} response.APIResponse{data=ReminderResponse}
// @Failure      409 {object} response.APIResponse
// @Router       /rooms/{roomId}/reminders [post]
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	roomID, err := uuid.Parse(chi.URLParam(r, "roomId"))
	if err != nil {
		response.BadRequest(w, "Invalid room ID")
		return
	}

	var req SendReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.ToUserID == uuid.Nil {
		response.BadRequest(w, "to_user_id is required")
		return
	}

	reminder, err := h.service.Send(r.Context(), roomID, userID, &req)
	if err != nil {
		var cooldownErr *CooldownError
		if errors.As(err, &cooldownErr) {
			response.ErrorWithDetails(w, http.StatusConflict, "COOLDOWN_ACTIVE", cooldownErr.Error(), &CooldownDetails{
				LastSentAt:    cooldownErr.LastSentAt.UTC().Format(time.RFC3339),
				NextAllowedAt: cooldownErr.NextAllowedAt.UTC().Format(time.RFC3339),
			})
			return
		}
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, reminder.ToResponse())
}

// writeServiceError maps reminder errors to HTTP responses
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrRecipientNotFound), errors.Is(err, room.ErrRoomNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, room.ErrNotMember):
		response.Forbidden(w, err.Error())
	case errors.Is(err, ErrSelfReminder), errors.Is(err, ErrInvalidType):
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, "Something went wrong")
	}
}
