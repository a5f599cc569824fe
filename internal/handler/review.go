package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/antoinevw/kebapp/internal/auth"
	"github.com/antoinevw/kebapp/internal/service"
)

// ReviewHandler exposes the review ledger: list and upsert.
type ReviewHandler struct {
	reviews *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(reviews *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, logger: logger}
}

type upsertReviewRequest struct {
	Body   string `json:"body"`
	Rating int    `json:"rating"`
}

// HandleUpsert creates or updates the caller's review of one restaurant
// and responds with the full ledger snapshot.
//
// HTTP: PUT /api/reviews/{restaurantID}
// BODY: {"body": "Top!", "rating": 4}
//
// PUT, not POST: under the replace policy the operation is idempotent per
// restaurant, which is exactly PUT's contract.
func (h *ReviewHandler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "valid session required"})
		return
	}

	restaurantID := chi.URLParam(r, "restaurantID")

	var req upsertReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid review JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	ledger, err := h.reviews.Upsert(r.Context(), accountID, restaurantID, req.Body, req.Rating)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ledger)
}

// HandleList returns the caller's review ledger in insertion order.
//
// HTTP: GET /api/reviews
func (h *ReviewHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "valid session required"})
		return
	}

	ledger, err := h.reviews.List(r.Context(), accountID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ledger)
}
