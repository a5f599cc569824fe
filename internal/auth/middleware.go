package auth

import (
	"context"
	"net/http"
)

// SessionCookie is the name of the HttpOnly cookie carrying the session
// token. The login/register handlers set it; the middleware reads it.
const SessionCookie = "session"

// contextKey is an unexported type for context keys in this package, so
// no other package can read or shadow the session identity.
type contextKey string

const accountIDKey contextKey = "accountID"

// RequireSession enforces authentication on protected routes.
//
// It reads the session cookie, validates the token and stores the account
// id in the request context. The context value is the per-request session
// context: every operation downstream receives the identity explicitly
// instead of consulting any process-wide state.
//
// Missing or invalid tokens end the request with 401.
func RequireSession(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accountID, err := extractAccountID(r, tokens)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized","message":"valid session required"}`))
				return
			}

			ctx := context.WithValue(r.Context(), accountIDKey, accountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccountIDFromContext retrieves the authenticated account id from the
// request context. Returns ("", false) when the request carries no valid
// session.
func AccountIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(accountIDKey).(string)
	return id, ok && id != ""
}

// extractAccountID reads the session cookie and validates its token.
func extractAccountID(r *http.Request, tokens *TokenService) (string, error) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		// http.ErrNoCookie: no session at all
		return "", err
	}
	return tokens.Validate(cookie.Value)
}
