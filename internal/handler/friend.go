package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/antoinevw/kebapp/internal/auth"
	"github.com/antoinevw/kebapp/internal/service"
)

// FriendHandler exposes the friend graph: list and one-sided add.
type FriendHandler struct {
	friends *service.FriendService
	logger  *slog.Logger
}

// NewFriendHandler creates a FriendHandler.
func NewFriendHandler(friends *service.FriendService, logger *slog.Logger) *FriendHandler {
	return &FriendHandler{friends: friends, logger: logger}
}

type addFriendRequest struct {
	ID string `json:"id"`
}

// HandleAdd appends a friend ref to the caller's graph and responds with
// the updated graph snapshot. Only the caller's account is written.
//
// HTTP: POST /api/friends
// BODY: {"id": "leila"}
func (h *FriendHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "valid session required"})
		return
	}

	var req addFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid friend JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	graph, err := h.friends.Add(r.Context(), accountID, req.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, graph)
}

// HandleList returns the caller's friend refs in insertion order.
//
// HTTP: GET /api/friends
func (h *FriendHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "valid session required"})
		return
	}

	graph, err := h.friends.List(r.Context(), accountID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, graph)
}
