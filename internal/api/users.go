package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jfsanchez2k/webflow-ecommerce/internal/user"
	"github.com/jfsanchez2k/webflow-ecommerce/pkg/logging"
)

// UserStore is the user directory as the handlers need it.
type UserStore interface {
	List(ctx context.Context) ([]user.User, error)
	Create(ctx context.Context, u *user.User) error
	Get(ctx context.Context, id int64) (user.User, error)
	Update(ctx context.Context, u user.User) error
	Delete(ctx context.Context, id int64) error
}

type UsersHandler struct {
	store UserStore
}

func NewUsersHandler(store UserStore) *UsersHandler {
	return &UsersHandler{store: store}
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.List(r.Context())
	if err != nil {
		h.storeError(w, "list_users", err)
		return
	}
	writeData(w, http.StatusOK, users)
}

type userRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be a JSON object")
		return
	}
	if req.Username == nil || req.Email == nil {
		writeError(w, http.StatusBadRequest, "username and email are required")
		return
	}

	u := user.User{Username: *req.Username, Email: *req.Email}
	u.Normalize()
	if problems := u.Validate(); len(problems) > 0 {
		writeError(w, http.StatusBadRequest, "invalid user data", problems...)
		return
	}

	if err := h.store.Create(r.Context(), &u); err != nil {
		h.storeError(w, "create_user", err)
		return
	}
	writeData(w, http.StatusCreated, u)
}

func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	u, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.storeError(w, "get_user", err)
		return
	}
	writeData(w, http.StatusOK, u)
}

func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	u, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.storeError(w, "update_user", err)
		return
	}

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be a JSON object")
		return
	}
	if req.Username != nil {
		u.Username = *req.Username
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	u.Normalize()
	if problems := u.Validate(); len(problems) > 0 {
		writeError(w, http.StatusBadRequest, "invalid user data", problems...)
		return
	}

	if err := h.store.Update(r.Context(), u); err != nil {
		h.storeError(w, "update_user", err)
		return
	}
	writeData(w, http.StatusOK, u)
}

func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		h.storeError(w, "delete_user", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "user deleted"})
}

func userID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

func (h *UsersHandler) storeError(w http.ResponseWriter, step string, err error) {
	switch {
	case errors.Is(err, user.ErrNotFound):
		writeError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, user.ErrConflict):
		writeError(w, http.StatusConflict, "username or email already exists")
	default:
		logging.Log(logging.Fields{
			Service: serviceName,
			Step:    step,
			Status:  "error",
			Error:   err.Error(),
		})
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
