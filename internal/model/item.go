// Package model defines data structures used throughout the application.
package model

import "errors"

// Validation errors for Item.
var (
	ErrEmptyItemName   = errors.New("name cannot be empty")
	ErrItemNameTooLong = errors.New("name cannot exceed 255 characters")
	ErrMissingStoreID  = errors.New("store id is required")
)

// Validation constants.
const (
	MaxNameLength = 255
)

// Item represents a product belonging to a store.
type Item struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	StoreID int64   `json:"store_id"`
}

// Validate checks if the Item has valid field values.
// Price carries no range restriction.
func (i *Item) Validate() error {
	if i.Name == "" {
		return ErrEmptyItemName
	}

	if len(i.Name) > MaxNameLength {
		return ErrItemNameTooLong
	}

	if i.StoreID == 0 {
		return ErrMissingStoreID
	}

	return nil
}

// ItemJSON is the client-facing serialization of an Item.
// The id and store_id fields are never exposed.
type ItemJSON struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// JSON returns the response shape for the item.
func (i *Item) JSON() ItemJSON {
	return ItemJSON{
		Name:  i.Name,
		Price: i.Price,
	}
}

// MessageResponse is the generic acknowledgment body used across endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// FieldErrorResponse carries per-field validation messages for a 400 response.
type FieldErrorResponse struct {
	Message map[string]string `json:"message"`
}

// ItemListResponse wraps the full item listing.
type ItemListResponse struct {
	Items []ItemJSON `json:"items"`
}
