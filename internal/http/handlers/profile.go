package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/lipinotes/backend/internal/auth"
	"github.com/lipinotes/backend/internal/http/respond"
	"github.com/lipinotes/backend/internal/middleware"
	"github.com/lipinotes/backend/internal/models/dto"
	"github.com/lipinotes/backend/internal/storage"
)

// ProfileHandler serves the public profile of the authenticated account.
type ProfileHandler struct {
	store  storage.AccountStore
	tokens *auth.TokenManager
}

// NewProfileHandler constructs the handler.
func NewProfileHandler(store storage.AccountStore, tokens *auth.TokenManager) *ProfileHandler {
	return &ProfileHandler{store: store, tokens: tokens}
}

// Register attaches the profile route to the mux.
func (h *ProfileHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/get_profile", middleware.RequireSession(h.tokens, h.handleGetProfile))
}

func (h *ProfileHandler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	accountID, ok := effectiveAccountID(w, r, r.URL.Query().Get("user_id"))
	if !ok {
		return
	}

	account, err := h.store.FindAccountByID(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "user not found")
			return
		}
		log.Printf("get profile error: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to fetch profile")
		return
	}

	respond.Success(w, http.StatusOK, "profile fetched successfully", respond.Body{
		"profile": dto.Profile{Username: account.Username, Email: account.Email},
	})
}
