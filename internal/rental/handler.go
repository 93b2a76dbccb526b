package rental

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/umerqur/cottagetrip/internal/expense"
	"github.com/umerqur/cottagetrip/internal/room"
	"github.com/umerqur/cottagetrip/pkg/middleware"
	"github.com/umerqur/cottagetrip/pkg/response"
)

// Handler handles HTTP requests for the pinned cottage rental
type Handler struct {
	service *Service
}

// NewHandler creates a new rental handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for rental endpoints mounted at
// /rooms/{roomId}/rental
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Get)
	r.Put("/amount", h.SetAmount)
	r.Post("/rebalance", h.Rebalance)
	r.Get("/payments", h.ListPayments)
	r.Put("/payments/{userId}", h.SetPaymentStatus)

	return r
}

// Get handles GET /rooms/{roomId}/rental
// @Summary      Get the room's pinned cottage rental
// @Description  Creates the rental with a zero amount on first access
// @Tags         rental
// @Produce      json
// @Param        roomId path string true "Room ID"
// @Success      200 {object} response.APIResponse{data=RentalResponse}
// @Failure      403 {object} response.APIResponse
// @Router       /rooms/{roomId}/rental [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
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

	exp, payments, err := h.service.Ensure(r.Context(), roomID, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, toResponse(exp, payments))
}

// SetAmount handles PUT /rooms/{roomId}/rental/amount
// @Summary      Set the rental amount
// @Description  Recomputes equal shares over the current split members and re-syncs payment amounts
// @Tags         rental
// @Accept       json
// @Produce      json
// @Param        roomId path string true "Room ID"
// @Param        request body SetAmountRequest true "New rental amount"
// @Success      200 {object} response.APIResponse{data=RentalResponse}
// @Failure      403 {object} response.APIResponse
// @Router       /rooms/{roomId}/rental/amount [put]
func (h *Handler) SetAmount(w http.ResponseWriter, r *http.Request) {
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

	var req SetAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	exp, payments, err := h.service.SetAmount(r.Context(), roomID, userID, req.AmountCents)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, toResponse(exp, payments))
}

// Rebalance handles POST /rooms/{roomId}/rental/rebalance
// @Summary      Re-split the rental across the full room membership
// @Description  Picks up members added since the last split; existing paid flags survive
// @Tags         rental
// @Produce      json
// @Param        roomId path string true "Room ID"
// @Success      200 {object} response.APIResponse{data=RentalResponse}
// @Failure      403 {object} response.APIResponse
// @Router       /rooms/{roomId}/rental/rebalance [post]
func (h *Handler) Rebalance(w http.ResponseWriter, r *http.Request) {
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

	exp, payments, err := h.service.Rebalance(r.Context(), roomID, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, toResponse(exp, payments))
}

// ListPayments handles GET /rooms/{roomId}/rental/payments
// @Summary      List rental payment rows
// @Tags         rental
// @Produce      json
// @Param        roomId path string true "Room ID"
// @Success      200 {object} response.APIResponse{data=[]Payment}
// @Failure      404 {object} response.APIResponse
// @Router       /rooms/{roomId}/rental/payments [get]
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
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

	payments, err := h.service.Payments(r.Context(), roomID, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, payments)
}

// SetPaymentStatus handles PUT /rooms/{roomId}/rental/payments/{userId}
// @Summary      Mark a rental share paid or unpaid
// @Description  Members update their own row; the room admin may update anyone's
// @Tags         rental
// @Accept       json
// @Produce      json
// @Param        roomId path string true "Room ID"
// @Param        userId path string true "Member user ID"
// @Param        request body SetPaymentStatusRequest true "Payment status"
// @Success      200 {object} response.APIResponse{data=Payment}
// @Failure      403 {object} response.APIResponse
// @Router       /rooms/{roomId}/rental/payments/{userId} [put]
func (h *Handler) SetPaymentStatus(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	roomID, err := uuid.Parse(chi.URLParam(r, "roomId"))
	if err != nil {
		response.BadRequest(w, "Invalid room ID")
		return
	}

	targetID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	var req SetPaymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	payment, err := h.service.SetPaymentStatus(r.Context(), roomID, callerID, targetID, req.Paid)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, payment)
}

func toResponse(result *expense.ExpenseWithSplits, payments []*Payment) *RentalResponse {
	resp := result.Expense.ToResponse()
	resp.Splits = make([]*expense.SplitResponse, len(result.Splits))
	for i, s := range result.Splits {
		resp.Splits[i] = s.ToResponse()
	}
	return &RentalResponse{Expense: resp, Payments: payments}
}

// writeServiceError maps rental errors to HTTP responses
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrRentalNotFound),
		errors.Is(err, ErrPaymentNotFound),
		errors.Is(err, room.ErrRoomNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrNotAuthorized), errors.Is(err, room.ErrNotMember), errors.Is(err, room.ErrNotAdmin):
		response.Forbidden(w, err.Error())
	case errors.Is(err, ErrNegativeAmount):
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, "Something went wrong")
	}
}
