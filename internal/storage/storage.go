// Package storage provides the persistence gateway interface and implementations.
package storage

import (
	"context"
	"errors"

	"github.com/dkruglov/store-api/internal/model"
)

// Storage errors.
var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
	ErrNilEntity     = errors.New("entity cannot be nil")
)

// Store defines the interface for persistence operations on users,
// stores and items. Lookups that miss return ErrNotFound; inserts that
// collide on a unique key return ErrAlreadyExists.
type Store interface {
	// CreateUser persists a new user and fills in its generated ID.
	CreateUser(ctx context.Context, user *model.User) error

	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// GetUserByID retrieves a user by primary key.
	GetUserByID(ctx context.Context, id int64) (*model.User, error)

	// CreateItem persists a new item and fills in its generated ID.
	CreateItem(ctx context.Context, item *model.Item) error

	// GetItemByName retrieves an item by name.
	GetItemByName(ctx context.Context, name string) (*model.Item, error)

	// UpdateItem replaces the stored item identified by its primary key.
	UpdateItem(ctx context.Context, item *model.Item) error

	// DeleteItemByName removes an item by name.
	DeleteItemByName(ctx context.Context, name string) error

	// ListItems returns all items ordered by primary key.
	ListItems(ctx context.Context) ([]model.Item, error)

	// CreateStore persists a new store and fills in its generated ID.
	CreateStore(ctx context.Context, store *model.Store) error

	// GetStoreByName retrieves a store by name with its items populated.
	GetStoreByName(ctx context.Context, name string) (*model.Store, error)

	// DeleteStoreByName removes a store by name along with its items.
	DeleteStoreByName(ctx context.Context, name string) error

	// ListStores returns all stores with their items populated.
	ListStores(ctx context.Context) ([]model.Store, error)

	// Close releases any resources held by the gateway.
	Close() error
}
