package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/lipinotes/backend/internal/auth"
	"github.com/lipinotes/backend/internal/http/respond"
	"github.com/lipinotes/backend/internal/middleware"
	"github.com/lipinotes/backend/internal/models"
	"github.com/lipinotes/backend/internal/models/dto"
	"github.com/lipinotes/backend/internal/storage"
)

// NotesHandler owns the save/list note endpoints.
type NotesHandler struct {
	store  storage.NoteStore
	tokens *auth.TokenManager
}

// NewNotesHandler constructs the handler.
func NewNotesHandler(store storage.NoteStore, tokens *auth.TokenManager) *NotesHandler {
	return &NotesHandler{store: store, tokens: tokens}
}

// Register attaches note routes to the mux. Both routes require a session.
func (h *NotesHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/save_note", middleware.RequireSession(h.tokens, h.handleSaveNote))
	mux.HandleFunc("/api/get_notes", middleware.RequireSession(h.tokens, h.handleGetNotes))
}

func (h *NotesHandler) handleSaveNote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.SaveNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	requested := ""
	if req.UserID != 0 {
		requested = strconv.FormatInt(req.UserID, 10)
	}
	ownerID, ok := effectiveAccountID(w, r, requested)
	if !ok {
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		respond.Error(w, http.StatusBadRequest, "note content is required")
		return
	}

	note, err := h.store.CreateNote(r.Context(), models.Note{
		OwnerID: ownerID,
		Content: req.Content,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "user not found")
		default:
			log.Printf("save note error: %v", err)
			respond.Error(w, http.StatusInternalServerError, "failed to save note")
		}
		return
	}

	respond.Success(w, http.StatusCreated, "note saved successfully", respond.Body{"note": note})
}

func (h *NotesHandler) handleGetNotes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ownerID, ok := effectiveAccountID(w, r, r.URL.Query().Get("user_id"))
	if !ok {
		return
	}

	notes, err := h.store.ListNotesByOwner(r.Context(), ownerID)
	if err != nil {
		log.Printf("list notes error: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to fetch notes")
		return
	}

	respond.Success(w, http.StatusOK, "notes fetched successfully", respond.Body{"notes": notes})
}
