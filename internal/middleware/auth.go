package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/lipinotes/backend/internal/auth"
	"github.com/lipinotes/backend/internal/http/respond"
)

// SessionCookieName is the cookie the login handler sets and logout clears.
const SessionCookieName = "session"

type contextKey int

const accountIDKey contextKey = iota

// RequireSession resolves the authenticated account from the Authorization
// header or the session cookie and stores its id in the request context.
// Requests without a valid session are rejected with 401.
func RequireSession(tokens *auth.TokenManager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				token = strings.TrimSpace(cookie.Value)
			}
		}
		if token == "" {
			respond.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		accountID, err := tokens.AccountID(token)
		if err != nil {
			respond.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		next(w, r.WithContext(WithAccountID(r.Context(), accountID)))
	}
}

// WithAccountID returns a context carrying the authenticated account id.
func WithAccountID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, accountIDKey, id)
}

// AccountID extracts the authenticated account id placed by RequireSession.
func AccountID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(accountIDKey).(int64)
	return id, ok
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
