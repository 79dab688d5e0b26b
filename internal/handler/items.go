package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/dkruglov/store-api/internal/auth"
	"github.com/dkruglov/store-api/internal/model"
	"github.com/dkruglov/store-api/internal/storage"
)

// GetItem handles GET /item/{name} requests. The route is composed
// behind the bearer-token guard; by the time this runs the caller
// identity is in the request context.
func (h *RESTHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := mux.Vars(r)["name"]

	if identity, ok := auth.IdentityFromContext(ctx); ok {
		h.logger.Debug("item lookup",
			zap.String("item", name),
			zap.String("username", identity.Username),
		)
	}

	item, err := h.storage.GetItemByName(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		h.writeMessage(w, http.StatusNotFound, "Item not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to get item", zap.String("item", name), zap.Error(err))
		h.writeMessage(w, http.StatusInternalServerError, "An error occurred looking up the item.")
		return
	}

	h.writeJSON(w, http.StatusOK, item.JSON())
}

// CreateItem handles POST /item/{name} requests.
func (h *RESTHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := mux.Vars(r)["name"]

	// Existence is checked before the body is parsed, matching the
	// duplicate-before-validation precedence of the API contract.
	if _, err := h.storage.GetItemByName(ctx, name); err == nil {
		h.writeMessage(w, http.StatusBadRequest,
			fmt.Sprintf("An item with name '%s' already exists.", name))
		return
	}

	payload, fields := parseItemPayload(r)
	if fields != nil {
		h.writeFieldErrors(w, fields)
		return
	}

	item := &model.Item{
		Name:    name,
		Price:   payload.Price,
		StoreID: payload.StoreID,
	}

	if err := item.Validate(); err != nil {
		h.writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.storage.CreateItem(ctx, item); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			// Lost the race to a concurrent insert; same response as the
			// up-front existence check.
			h.writeMessage(w, http.StatusBadRequest,
				fmt.Sprintf("An item with name '%s' already exists.", name))
			return
		}
		h.logger.Error("failed to insert item", zap.String("item", name), zap.Error(err))
		h.writeMessage(w, http.StatusInternalServerError, "An error occurred inserting the item.")
		return
	}

	h.writeJSON(w, http.StatusCreated, item.JSON())
}

// PutItem handles PUT /item/{name} requests as an upsert keyed by name.
// A missing item is created with the given price and store id; an
// existing item gets only its price updated, its store id stays as is.
func (h *RESTHandler) PutItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := mux.Vars(r)["name"]

	payload, fields := parseItemPayload(r)
	if fields != nil {
		h.writeFieldErrors(w, fields)
		return
	}

	item, err := h.storage.GetItemByName(ctx, name)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		item = &model.Item{
			Name:    name,
			Price:   payload.Price,
			StoreID: payload.StoreID,
		}
		if err := item.Validate(); err != nil {
			h.writeMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		err = h.storage.CreateItem(ctx, item)
	case err == nil:
		item.Price = payload.Price
		err = h.storage.UpdateItem(ctx, item)
	}

	if err != nil {
		h.logger.Error("failed to upsert item", zap.String("item", name), zap.Error(err))
		h.writeMessage(w, http.StatusInternalServerError, "An error occurred inserting the item.")
		return
	}

	h.writeJSON(w, http.StatusOK, item.JSON())
}

// DeleteItem handles DELETE /item/{name} requests. The acknowledgment
// is the same whether or not the item existed.
func (h *RESTHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := mux.Vars(r)["name"]

	err := h.storage.DeleteItemByName(ctx, name)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		h.logger.Error("failed to delete item", zap.String("item", name), zap.Error(err))
		h.writeMessage(w, http.StatusInternalServerError, "An error occurred deleting the item.")
		return
	}

	h.writeMessage(w, http.StatusOK, "Item deleted")
}

// ListItems handles GET /items requests.
func (h *RESTHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.storage.ListItems(ctx)
	if err != nil {
		h.logger.Error("failed to list items", zap.Error(err))
		h.writeMessage(w, http.StatusInternalServerError, "An error occurred listing items.")
		return
	}

	serialized := make([]model.ItemJSON, 0, len(items))
	for i := range items {
		serialized = append(serialized, items[i].JSON())
	}

	h.writeJSON(w, http.StatusOK, model.ItemListResponse{Items: serialized})
}
