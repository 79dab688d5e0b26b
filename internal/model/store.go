package model

import "errors"

// Validation errors for Store.
var (
	ErrEmptyStoreName   = errors.New("store name cannot be empty")
	ErrStoreNameTooLong = errors.New("store name cannot exceed 255 characters")
)

// Store represents a store owning zero or more items.
type Store struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Validate checks if the Store has valid field values.
func (s *Store) Validate() error {
	if s.Name == "" {
		return ErrEmptyStoreName
	}

	if len(s.Name) > MaxNameLength {
		return ErrStoreNameTooLong
	}

	return nil
}

// StoreJSON is the client-facing serialization of a Store with its items nested.
type StoreJSON struct {
	Name  string     `json:"name"`
	Items []ItemJSON `json:"items"`
}

// JSON returns the response shape for the store. The items slice is always
// present, empty rather than null for a store without items.
func (s *Store) JSON() StoreJSON {
	items := make([]ItemJSON, 0, len(s.Items))
	for i := range s.Items {
		items = append(items, s.Items[i].JSON())
	}

	return StoreJSON{
		Name:  s.Name,
		Items: items,
	}
}

// StoreListResponse wraps the full store listing.
type StoreListResponse struct {
	Stores []StoreJSON `json:"stores"`
}
