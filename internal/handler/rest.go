package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/dkruglov/store-api/internal/auth"
	"github.com/dkruglov/store-api/internal/middleware"
	"github.com/dkruglov/store-api/internal/model"
	"github.com/dkruglov/store-api/internal/storage"
)

// Version is the application version.
const Version = "1.0.0"

// RESTHandler handles REST API requests for users, stores and items.
type RESTHandler struct {
	storage storage.Store
	auth    *auth.Service
	logger  *zap.Logger
}

// NewRESTHandler creates a new RESTHandler instance.
func NewRESTHandler(s storage.Store, authService *auth.Service, logger *zap.Logger) *RESTHandler {
	return &RESTHandler{
		storage: s,
		auth:    authService,
		logger:  logger,
	}
}

// RegisterRoutes registers the REST API routes with the router.
// requireAuth guards the single protected endpoint, GET /item/{name}.
func (h *RESTHandler) RegisterRoutes(router *mux.Router, requireAuth middleware.Middleware) {
	router.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)

	router.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	router.HandleFunc("/auth", h.Login).Methods(http.MethodPost)

	router.Handle("/item/{name}", requireAuth(http.HandlerFunc(h.GetItem))).Methods(http.MethodGet)
	router.HandleFunc("/item/{name}", h.CreateItem).Methods(http.MethodPost)
	router.HandleFunc("/item/{name}", h.PutItem).Methods(http.MethodPut)
	router.HandleFunc("/item/{name}", h.DeleteItem).Methods(http.MethodDelete)
	router.HandleFunc("/items", h.ListItems).Methods(http.MethodGet)

	router.HandleFunc("/store/{name}", h.GetStore).Methods(http.MethodGet)
	router.HandleFunc("/store/{name}", h.CreateStore).Methods(http.MethodPost)
	router.HandleFunc("/store/{name}", h.PutStore).Methods(http.MethodPut)
	router.HandleFunc("/store/{name}", h.DeleteStore).Methods(http.MethodDelete)
	router.HandleFunc("/stores", h.ListStores).Methods(http.MethodGet)
}

// HealthCheck handles GET /health requests.
func (h *RESTHandler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: Version,
	})
}

// writeJSON writes a JSON response with the given status code.
func (h *RESTHandler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

// writeMessage writes a {"message": ...} response with the given status code.
func (h *RESTHandler) writeMessage(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, model.MessageResponse{Message: message})
}

// writeFieldErrors writes a 400 response carrying per-field validation messages.
func (h *RESTHandler) writeFieldErrors(w http.ResponseWriter, fields map[string]string) {
	h.writeJSON(w, http.StatusBadRequest, model.FieldErrorResponse{Message: fields})
}
