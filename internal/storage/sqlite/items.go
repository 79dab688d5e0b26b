package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkruglov/store-api/internal/model"
	"github.com/dkruglov/store-api/internal/storage"
)

// CreateItem inserts a new item and fills in its generated ID.
func (s *SQLiteStore) CreateItem(ctx context.Context, item *model.Item) error {
	if item == nil {
		return storage.ErrNilEntity
	}

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO items (name, price, store_id) VALUES (?, ?, ?)",
		item.Name, item.Price, item.StoreID,
	)
	if err != nil {
		if mapped := mapConstraintError(err); errors.Is(mapped, storage.ErrAlreadyExists) {
			return mapped
		}
		return fmt.Errorf("failed to insert item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read item id: %w", err)
	}
	item.ID = id

	return nil
}

// GetItemByName retrieves an item by name.
func (s *SQLiteStore) GetItemByName(ctx context.Context, name string) (*model.Item, error) {
	item := &model.Item{}

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, price, store_id FROM items WHERE name = ?",
		name,
	).Scan(&item.ID, &item.Name, &item.Price, &item.StoreID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return item, nil
}

// UpdateItem replaces the stored item identified by its primary key.
func (s *SQLiteStore) UpdateItem(ctx context.Context, item *model.Item) error {
	if item == nil {
		return storage.ErrNilEntity
	}

	result, err := s.db.ExecContext(ctx,
		"UPDATE items SET name = ?, price = ?, store_id = ? WHERE id = ?",
		item.Name, item.Price, item.StoreID, item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// DeleteItemByName removes an item by name.
func (s *SQLiteStore) DeleteItemByName(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM items WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
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

// ListItems returns all items ordered by primary key.
func (s *SQLiteStore) ListItems(ctx context.Context) ([]model.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, price, store_id FROM items ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := make([]model.Item, 0)
	for rows.Next() {
		var item model.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.StoreID); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

// itemsForStore collects the items owned by a store, ordered by primary key.
func (s *SQLiteStore) itemsForStore(ctx context.Context, storeID int64) ([]model.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, price, store_id FROM items WHERE store_id = ? ORDER BY id",
		storeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get store items: %w", err)
	}
	defer rows.Close()

	items := make([]model.Item, 0)
	for rows.Next() {
		var item model.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.StoreID); err != nil {
			return nil, fmt.Errorf("failed to scan store item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate store items: %w", err)
	}

	return items, nil
}
