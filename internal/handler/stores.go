package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/dkruglov/store-api/internal/model"
	"github.com/dkruglov/store-api/internal/storage"
)

// GetStore handles GET /store/{name} requests. The response nests the
// store's items.
func (h *RESTHandler) GetStore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := mux.Vars(r)["name"]

	store, err := h.storage.GetStoreByName(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		h.writeMessage(w, http.StatusNotFound, "Store not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to get store", zap.String("store", name), zap.Error(err))
		h.writeMessage(w, http.StatusInternalServerError, "An error occurred looking up the store.")
		return
	}

	h.writeJSON(w, http.StatusOK, store.JSON())
}

// CreateStore handles POST /store/{name} requests. The name path
// parameter is the only input; a store has no other mutable fields.
func (h *RESTHandler) CreateStore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := mux.Vars(r)["name"]

	store := &model.Store{Name: name}

	if err := store.Validate(); err != nil {
		h.writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.storage.CreateStore(ctx, store); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			h.writeMessage(w, http.StatusBadRequest,
				fmt.Sprintf("A store with name '%s' already exists.", name))
			return
		}
		h.logger.Error("failed to create store", zap.String("store", name), zap.Error(err))
		h.writeMessage(w, http.StatusInternalServerError, "An error occurred creating the store.")
		return
	}

	h.writeJSON(w, http.StatusCreated, store.JSON())
}

// PutStore handles PUT /store/{name} requests as create-if-absent. An
// existing store is returned unchanged since it has no mutable fields
// besides its items.
func (h *RESTHandler) PutStore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := mux.Vars(r)["name"]

	store, err := h.storage.GetStoreByName(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		store = &model.Store{Name: name}
		if err := store.Validate(); err != nil {
			h.writeMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		err = h.storage.CreateStore(ctx, store)
	}

	if err != nil {
		h.logger.Error("failed to upsert store", zap.String("store", name), zap.Error(err))
		h.writeMessage(w, http.StatusInternalServerError, "An error occurred creating the store.")
		return
	}

	h.writeJSON(w, http.StatusOK, store.JSON())
}

// DeleteStore handles DELETE /store/{name} requests. Deleting a store
// cascades to its items. The acknowledgment is the same whether or not
// the store existed.
func (h *RESTHandler) DeleteStore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := mux.Vars(r)["name"]

	err := h.storage.DeleteStoreByName(ctx, name)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		h.logger.Error("failed to delete store", zap.String("store", name), zap.Error(err))
		h.writeMessage(w, http.StatusInternalServerError, "An error occurred deleting the store.")
		return
	}

	h.writeMessage(w, http.StatusOK, "Store deleted")
}

// ListStores handles GET /stores requests.
func (h *RESTHandler) ListStores(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stores, err := h.storage.ListStores(ctx)
	if err != nil {
		h.logger.Error("failed to list stores", zap.Error(err))
		h.writeMessage(w, http.StatusInternalServerError, "An error occurred listing stores.")
		return
	}

	serialized := make([]model.StoreJSON, 0, len(stores))
	for i := range stores {
		serialized = append(serialized, stores[i].JSON())
	}

	h.writeJSON(w, http.StatusOK, model.StoreListResponse{Stores: serialized})
}
