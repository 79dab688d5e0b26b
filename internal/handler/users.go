package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/dkruglov/store-api/internal/auth"
	"github.com/dkruglov/store-api/internal/model"
)

// accessTokenResponse is the body returned by a successful login.
type accessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Register handles POST /register requests.
func (h *RESTHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payload, fields := parseCredentials(r)
	if fields != nil {
		h.writeFieldErrors(w, fields)
		return
	}

	err := h.auth.Register(ctx, payload.Username, payload.Password)
	if errors.Is(err, auth.ErrUserExists) {
		h.writeMessage(w, http.StatusBadRequest, "A user with that username already exists.")
		return
	}
	if errors.Is(err, model.ErrEmptyUsername) ||
		errors.Is(err, model.ErrUsernameTooLong) ||
		errors.Is(err, model.ErrEmptyPassword) {
		h.writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("failed to register user",
			zap.String("username", payload.Username), zap.Error(err))
		h.writeMessage(w, http.StatusInternalServerError, "An error occurred creating the user.")
		return
	}

	h.writeMessage(w, http.StatusCreated, "User created successfully.")
}

// Login handles POST /auth requests, issuing a signed token on a
// successful username/password match.
func (h *RESTHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payload, fields := parseCredentials(r)
	if fields != nil {
		h.writeFieldErrors(w, fields)
		return
	}

	token, err := h.auth.Login(ctx, payload.Username, payload.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		h.writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		h.logger.Error("failed to log in user",
			zap.String("username", payload.Username), zap.Error(err))
		h.writeMessage(w, http.StatusInternalServerError, "An error occurred logging in.")
		return
	}

	h.writeJSON(w, http.StatusOK, accessTokenResponse{AccessToken: token})
}
