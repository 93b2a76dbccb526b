package balance

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/umerqur/cottagetrip/internal/room"
	"github.com/umerqur/cottagetrip/pkg/middleware"
	"github.com/umerqur/cottagetrip/pkg/response"
)

// Handler handles HTTP requests for balance summaries
type Handler struct {
	service *Service
}

// NewHandler creates a new balance handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for balance endpoints mounted at
// /rooms/{roomId}/balances
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Summary)
	return r
}

// Summary handles GET /rooms/{roomId}/balances
// @Summary      Get a room's net balances and suggested transfers
// @Description  Recomputed from the full expense list; positive net means the member owes money
// @Tags         balances
// @Produce      json
// @Param        roomId path string true "Room ID"
// @Success      200 {object} response.APIResponse{data=RoomBalanceSummary}
// @Failure      403 {object} response.APIResponse
// @Router       /rooms/{roomId}/balances [get]
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
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

	summary, err := h.service.Summary(r.Context(), roomID, userID)
	if err != nil {
		switch {
		case errors.Is(err, room.ErrRoomNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, room.ErrNotMember):
			response.Forbidden(w, err.Error())
		default:
			response.InternalError(w, "Failed to compute balances")
		}
		return
	}

	response.JSON(w, http.StatusOK, summary)
}
