package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dkruglov/store-api/internal/model"
	"github.com/dkruglov/store-api/internal/storage"
)

// CreateUser inserts a new user and fills in its generated ID.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *model.User) error {
	if user == nil {
		return storage.ErrNilEntity
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)",
		user.Username, user.PasswordHash, user.CreatedAt.Unix(),
	)
	if err != nil {
		if mapped := mapConstraintError(err); errors.Is(mapped, storage.ErrAlreadyExists) {
			return mapped
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read user id: %w", err)
	}
	user.ID = id

	return nil
}

// GetUserByUsername retrieves a user by username.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.getUser(ctx,
		"SELECT id, username, password_hash, created_at FROM users WHERE username = ?",
		username,
	)
}

// GetUserByID retrieves a user by primary key.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	return s.getUser(ctx,
		"SELECT id, username, password_hash, created_at FROM users WHERE id = ?",
		id,
	)
}

// getUser runs a single-row user query and scans the result.
func (s *SQLiteStore) getUser(ctx context.Context, query string, arg any) (*model.User, error) {
	user := &model.User{}
	var createdAt int64

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.CreatedAt = time.Unix(createdAt, 0).UTC()

	return user, nil
}
