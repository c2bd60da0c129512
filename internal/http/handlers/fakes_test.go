package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/lipinotes/backend/internal/models"
	"github.com/lipinotes/backend/internal/storage"
)

// fakeStore is an in-memory storage.Store for handler tests.
type fakeStore struct {
	mu       sync.Mutex
	accounts map[int64]models.Account
	notes    []models.Note
	nextID   int64
	clock    time.Time

	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts: make(map[int64]models.Account),
		notes:    []models.Note{},
		clock:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStore) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeStore) CreateAccount(_ context.Context, account models.Account) (models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return models.Account{}, f.failWith
	}
	for _, existing := range f.accounts {
		if existing.Username == account.Username || existing.Email == account.Email {
			return models.Account{}, storage.ErrAlreadyExists
		}
	}
	f.nextID++
	account.ID = f.nextID
	account.CreatedAt = f.tick()
	f.accounts[account.ID] = account
	return account, nil
}

func (f *fakeStore) FindAccountByUsername(_ context.Context, username string) (models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, account := range f.accounts {
		if account.Username == username {
			return account, nil
		}
	}
	return models.Account{}, storage.ErrNotFound
}

func (f *fakeStore) FindAccountByID(_ context.Context, id int64) (models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	account, ok := f.accounts[id]
	if !ok {
		return models.Account{}, storage.ErrNotFound
	}
	return account, nil
}

func (f *fakeStore) CreateNote(_ context.Context, note models.Note) (models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return models.Note{}, f.failWith
	}
	if _, ok := f.accounts[note.OwnerID]; !ok {
		return models.Note{}, storage.ErrNotFound
	}
	f.nextID++
	note.ID = f.nextID
	note.CreatedAt = f.tick()
	f.notes = append(f.notes, note)
	return note, nil
}

func (f *fakeStore) ListNotesByOwner(_ context.Context, ownerID int64) ([]models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Note{}
	for _, note := range f.notes {
		if note.OwnerID == ownerID {
			out = append(out, note)
		}
	}
	return out, nil
}

// fakeExtractor records calls and returns a canned answer.
type fakeExtractor struct {
	text  string
	err   error
	calls int
}

func (f *fakeExtractor) ExtractText(_ context.Context, _ []byte) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}
