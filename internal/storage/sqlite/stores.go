package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkruglov/store-api/internal/model"
	"github.com/dkruglov/store-api/internal/storage"
)

// CreateStore inserts a new store and fills in its generated ID.
func (s *SQLiteStore) CreateStore(ctx context.Context, store *model.Store) error {
	if store == nil {
		return storage.ErrNilEntity
	}

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO stores (name) VALUES (?)",
		store.Name,
	)
	if err != nil {
		if mapped := mapConstraintError(err); errors.Is(mapped, storage.ErrAlreadyExists) {
			return mapped
		}
		return fmt.Errorf("failed to insert store: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read store id: %w", err)
	}
	store.ID = id

	return nil
}

// GetStoreByName retrieves a store by name with its items populated.
func (s *SQLiteStore) GetStoreByName(ctx context.Context, name string) (*model.Store, error) {
	store := &model.Store{}

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name FROM stores WHERE name = ?",
		name,
	).Scan(&store.ID, &store.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get store: %w", err)
	}

	items, err := s.itemsForStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	store.Items = items

	return store, nil
}

// DeleteStoreByName removes a store by name. Its items go with it via
// the ON DELETE CASCADE constraint.
func (s *SQLiteStore) DeleteStoreByName(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM stores WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete store: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// ListStores returns all stores with their items populated.
func (s *SQLiteStore) ListStores(ctx context.Context) ([]model.Store, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM stores ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	defer rows.Close()

	stores := make([]model.Store, 0)
	for rows.Next() {
		var store model.Store
		if err := rows.Scan(&store.ID, &store.Name); err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		stores = append(stores, store)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stores: %w", err)
	}

	for i := range stores {
		items, err := s.itemsForStore(ctx, stores[i].ID)
		if err != nil {
			return nil, err
		}
		stores[i].Items = items
	}

	return stores, nil
}
