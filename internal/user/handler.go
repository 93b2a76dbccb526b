package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/umerqur/cottagetrip/pkg/middleware"
	"github.com/umerqur/cottagetrip/pkg/response"
)

// Handler handles HTTP requests for user operations
type Handler struct {
	repo *Repository
}

// NewHandler creates a new user handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Routes returns the router for user endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/me", h.Me)
	return r
}

// Me handles GET /users/me
// @Summary      Get the authenticated user's profile
// @Tags         users
// @Produce      json
// @Success      200 {object} response.APIResponse{data=User}
// @Failure      404 {object} response.APIResponse
// @Router       /users/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	user, err := h.repo.GetByID(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to get user")
		return
	}
	if user == nil {
		response.NotFound(w, "User not found")
		return
	}

	response.JSON(w, http.StatusOK, user)
}
