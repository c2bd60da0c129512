package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/lipinotes/backend/internal/http/respond"
	"github.com/lipinotes/backend/internal/middleware"
)

// effectiveAccountID reconciles an optional client-supplied user id with the
// authenticated session. Identity always comes from the session; a supplied
// id is only accepted when it matches, so stale clients keep working without
// being able to read another account's data. Writes the error response and
// returns false when the request must not proceed.
func effectiveAccountID(w http.ResponseWriter, r *http.Request, requested string) (int64, bool) {
	accountID, ok := middleware.AccountID(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return 0, false
	}
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return accountID, true
	}
	id, err := strconv.ParseInt(requested, 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid user id")
		return 0, false
	}
	if id != accountID {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return 0, false
	}
	return accountID, true
}
