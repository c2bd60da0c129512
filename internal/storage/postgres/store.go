package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/lipinotes/backend/internal/models"
	"github.com/lipinotes/backend/internal/storage"
	"github.com/lipinotes/backend/internal/storage/postgres/migrations"
)

// Postgres error codes we translate into storage sentinels.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

// Store provides Postgres-backed persistence for accounts and notes.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to the database and applies pending migrations.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	if err := migrate(ctx, databaseURL); err != nil {
		return nil, err
	}

	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func migrate(ctx context.Context, databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// CreateAccount inserts a new account row.
func (s *Store) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	const query = `
	INSERT INTO accounts (username, email, password_hash)
	VALUES ($1, $2, $3)
	RETURNING id, created_at;
	`
	row := s.pool.QueryRow(ctx, query, account.Username, account.Email, account.PasswordHash)
	if err := row.Scan(&account.ID, &account.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation {
			return models.Account{}, storage.ErrAlreadyExists
		}
		return models.Account{}, fmt.Errorf("insert account: %w", err)
	}
	return account, nil
}

// FindAccountByUsername fetches an account by username.
func (s *Store) FindAccountByUsername(ctx context.Context, username string) (models.Account, error) {
	const query = `
	SELECT id, username, email, password_hash, created_at
	FROM accounts
	WHERE username = $1;
	`
	return scanAccount(s.pool.QueryRow(ctx, query, username))
}

// FindAccountByID fetches an account by primary key.
func (s *Store) FindAccountByID(ctx context.Context, id int64) (models.Account, error) {
	const query = `
	SELECT id, username, email, password_hash, created_at
	FROM accounts
	WHERE id = $1;
	`
	return scanAccount(s.pool.QueryRow(ctx, query, id))
}

// CreateNote inserts a new note row owned by an existing account.
func (s *Store) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	const query = `
	INSERT INTO notes (owner_id, content)
	VALUES ($1, $2)
	RETURNING id, created_at;
	`
	row := s.pool.QueryRow(ctx, query, note.OwnerID, note.Content)
	if err := row.Scan(&note.ID, &note.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation {
			return models.Note{}, storage.ErrNotFound
		}
		return models.Note{}, fmt.Errorf("insert note: %w", err)
	}
	return note, nil
}

// ListNotesByOwner returns the owner's notes ordered by creation time
// ascending. An owner with no notes yields an empty slice, not an error.
func (s *Store) ListNotesByOwner(ctx context.Context, ownerID int64) ([]models.Note, error) {
	const query = `
	SELECT id, owner_id, content, created_at
	FROM notes
	WHERE owner_id = $1
	ORDER BY created_at ASC, id ASC;
	`
	rows, err := s.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		var note models.Note
		if err := rows.Scan(&note.ID, &note.OwnerID, &note.Content, &note.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

func scanAccount(row pgx.Row) (models.Account, error) {
	var account models.Account
	err := row.Scan(&account.ID, &account.Username, &account.Email, &account.PasswordHash, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Account{}, storage.ErrNotFound
		}
		return models.Account{}, fmt.Errorf("scan account: %w", err)
	}
	return account, nil
}
