package storage

import (
	"context"
	"errors"

	"github.com/lipinotes/backend/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// AccountStore captures account persistence operations needed by handlers.
type AccountStore interface {
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)
	FindAccountByUsername(ctx context.Context, username string) (models.Account, error)
	FindAccountByID(ctx context.Context, id int64) (models.Account, error)
}

// NoteStore captures note persistence operations needed by handlers.
type NoteStore interface {
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)
	ListNotesByOwner(ctx context.Context, ownerID int64) ([]models.Note, error)
}

// Store is the full persistence surface the server is wired with.
type Store interface {
	AccountStore
	NoteStore
}
