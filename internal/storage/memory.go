package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dkruglov/store-api/internal/model"
)

// MemoryStore implements Store with in-memory maps. It backs tests and
// runs without a database path configured.
type MemoryStore struct {
	mu     sync.RWMutex
	users  map[int64]model.User
	stores map[int64]model.Store
	items  map[int64]model.Item

	nextUserID  int64
	nextStoreID int64
	nextItemID  int64
}

// NewMemoryStore creates a new MemoryStore instance.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[int64]model.User),
		stores: make(map[int64]model.Store),
		items:  make(map[int64]model.Item),
	}
}

// Close releases no resources for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// CreateUser persists a new user and fills in its generated ID.
func (s *MemoryStore) CreateUser(ctx context.Context, user *model.User) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("create user: %w", ctx.Err())
	default:
	}

	if user == nil {
		return ErrNilEntity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username {
			return ErrAlreadyExists
		}
	}

	s.nextUserID++
	user.ID = s.nextUserID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	s.users[user.ID] = *user

	return nil
}

// GetUserByUsername retrieves a user by username.
func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("get user: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}

	return nil, ErrNotFound
}

// GetUserByID retrieves a user by primary key.
func (s *MemoryStore) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("get user: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[id]
	if !exists {
		return nil, ErrNotFound
	}

	return &user, nil
}

// CreateItem persists a new item and fills in its generated ID.
func (s *MemoryStore) CreateItem(ctx context.Context, item *model.Item) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("create item: %w", ctx.Err())
	default:
	}

	if item == nil {
		return ErrNilEntity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if existing.Name == item.Name {
			return ErrAlreadyExists
		}
	}

	s.nextItemID++
	item.ID = s.nextItemID
	s.items[item.ID] = *item

	return nil
}

// GetItemByName retrieves an item by name.
func (s *MemoryStore) GetItemByName(ctx context.Context, name string) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("get item: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.Name == name {
			i := item
			return &i, nil
		}
	}

	return nil, ErrNotFound
}

// UpdateItem replaces the stored item identified by its primary key.
func (s *MemoryStore) UpdateItem(ctx context.Context, item *model.Item) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("update item: %w", ctx.Err())
	default:
	}

	if item == nil {
		return ErrNilEntity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[item.ID]; !exists {
		return ErrNotFound
	}

	s.items[item.ID] = *item

	return nil
}

// DeleteItemByName removes an item by name.
func (s *MemoryStore) DeleteItemByName(ctx context.Context, name string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("delete item: %w", ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, item := range s.items {
		if item.Name == name {
			delete(s.items, id)
			return nil
		}
	}

	return ErrNotFound
}

// ListItems returns all items ordered by primary key.
func (s *MemoryStore) ListItems(ctx context.Context) ([]model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("list items: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]model.Item, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	return items, nil
}

// CreateStore persists a new store and fills in its generated ID.
func (s *MemoryStore) CreateStore(ctx context.Context, store *model.Store) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("create store: %w", ctx.Err())
	default:
	}

	if store == nil {
		return ErrNilEntity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.stores {
		if existing.Name == store.Name {
			return ErrAlreadyExists
		}
	}

	s.nextStoreID++
	store.ID = s.nextStoreID
	s.stores[store.ID] = model.Store{ID: store.ID, Name: store.Name}

	return nil
}

// GetStoreByName retrieves a store by name with its items populated.
func (s *MemoryStore) GetStoreByName(ctx context.Context, name string) (*model.Store, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("get store: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, store := range s.stores {
		if store.Name == name {
			st := store
			st.Items = s.itemsForStore(store.ID)
			return &st, nil
		}
	}

	return nil, ErrNotFound
}

// DeleteStoreByName removes a store by name along with its items.
func (s *MemoryStore) DeleteStoreByName(ctx context.Context, name string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("delete store: %w", ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, store := range s.stores {
		if store.Name == name {
			delete(s.stores, id)
			for itemID, item := range s.items {
				if item.StoreID == id {
					delete(s.items, itemID)
				}
			}
			return nil
		}
	}

	return ErrNotFound
}

// ListStores returns all stores with their items populated.
func (s *MemoryStore) ListStores(ctx context.Context) ([]model.Store, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("list stores: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	stores := make([]model.Store, 0, len(s.stores))
	for _, store := range s.stores {
		st := store
		st.Items = s.itemsForStore(store.ID)
		stores = append(stores, st)
	}

	sort.Slice(stores, func(i, j int) bool { return stores[i].ID < stores[j].ID })

	return stores, nil
}

// itemsForStore collects the items owned by a store, ordered by primary key.
// Callers must hold at least a read lock.
func (s *MemoryStore) itemsForStore(storeID int64) []model.Item {
	items := make([]model.Item, 0)
	for _, item := range s.items {
		if item.StoreID == storeID {
			items = append(items, item)
		}
	}

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	return items
}
