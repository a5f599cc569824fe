// Package handler contains the HTTP layer: it parses intents from JSON
// requests, dispatches them to the services and renders state snapshots
// back. No business rule lives here and nothing below it knows HTTP.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/antoinevw/kebapp/internal/auth"
	"github.com/antoinevw/kebapp/internal/service"
)

// SessionHandler exposes register, login, logout and the profile lookup.
//
// The session token rides in an HttpOnly cookie so the browser client
// never touches it from script. "Stay logged in" turns the session cookie
// into a persistent one with the long expiry the service picked.
type SessionHandler struct {
	sessions *service.SessionService
	logger   *slog.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(sessions *service.SessionService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, logger: logger}
}

// credentialsRequest is the body of both register and login intents.
type credentialsRequest struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	StayLoggedIn bool   `json:"stayLoggedIn"`
}

// HandleRegister creates an account and opens a session.
//
// HTTP: POST /api/register
// BODY: {"id": "paul", "email": "p@x.com", "password": "pw", "stayLoggedIn": false}
func (h *SessionHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid register JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	result, err := h.sessions.Register(r.Context(), req.ID, req.Email, req.Password, req.StayLoggedIn)
	if err != nil {
		writeError(w, err)
		return
	}

	h.setSessionCookie(w, result, req.StayLoggedIn)
	writeJSON(w, http.StatusCreated, result.Account)
}

// HandleLogin authenticates an account and opens a session.
//
// HTTP: POST /api/login
func (h *SessionHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid login JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	result, err := h.sessions.Login(r.Context(), req.ID, req.Email, req.Password, req.StayLoggedIn)
	if err != nil {
		writeError(w, err)
		return
	}

	h.setSessionCookie(w, result, req.StayLoggedIn)
	writeJSON(w, http.StatusOK, result.Account)
}

// HandleLogout clears the session cookie. Unconditional: it succeeds
// whether or not a valid session was present.
//
// HTTP: POST /api/logout
func (h *SessionHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // delete immediately
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe returns the authenticated account's snapshot.
//
// HTTP: GET /api/me (behind RequireSession)
func (h *SessionHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "valid session required"})
		return
	}

	account, err := h.sessions.GetAccount(r.Context(), accountID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// setSessionCookie installs the session token. Without stay-logged-in the
// cookie has no MaxAge, so it dies with the browser session; with it, the
// cookie persists for the token's full lifetime.
func (h *SessionHandler) setSessionCookie(w http.ResponseWriter, result *service.SessionResult, persistent bool) {
	cookie := &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    result.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if persistent {
		cookie.MaxAge = int(result.TTL.Seconds())
	}
	http.SetCookie(w, cookie)
}
