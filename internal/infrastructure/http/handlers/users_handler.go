package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/gatekit/gatekit/internal/application/user"
	"github.com/gatekit/gatekit/internal/domain"
	"github.com/gatekit/gatekit/internal/domain/apperror"
	"github.com/gatekit/gatekit/internal/infrastructure/http/middleware"
)

// UsersHandler serves the authenticated /users endpoints.
type UsersHandler struct {
	getUser      *user.GetUser
	findUsers    *user.FindUsers
	updateUser   *user.UpdateUser
	toggleStatus *user.ToggleUserStatus
	deleteUser   *user.DeleteUser
	validate     *validator.Validate
	log          zerolog.Logger
}

func NewUsersHandler(getUser *user.GetUser, findUsers *user.FindUsers, updateUser *user.UpdateUser, toggleStatus *user.ToggleUserStatus, deleteUser *user.DeleteUser, log zerolog.Logger) *UsersHandler {
	return &UsersHandler{
		getUser:      getUser,
		findUsers:    findUsers,
		updateUser:   updateUser,
		toggleStatus: toggleStatus,
		deleteUser:   deleteUser,
		validate:     validator.New(),
		log:          log,
	}
}

// List handles GET /users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := user.FindUsersInput{
		Search:      q.Get("search"),
		PageRequest: pageRequestFromQuery(r),
	}
	if s := q.Get("status"); s != "" {
		status := domain.UserStatus(s)
		input.Status = &status
	}
	page, err := h.findUsers.Execute(r.Context(), input, middleware.AppContextFromContext(r.Context()))
	if err != nil {
		writeAppErr(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// Get handles GET /users/{id}.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.getUser.Execute(r.Context(), user.GetUserInput{
		ID: chi.URLParam(r, "id"),
	}, middleware.AppContextFromContext(r.Context()))
	if err != nil {
		writeAppErr(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Update handles PUT /users/{id}.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body struct {
		DisplayName *string `json:"displayName" validate:"omitempty,max=100"`
		Username    *string `json:"username" validate:"omitempty,max=32"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAppErr(w, h.log, apperror.New(apperror.CodeInvalidRequest, "invalid request body"))
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeAppErr(w, h.log, apperror.New(apperror.CodeInvalidRequest, err.Error()))
		return
	}
	err := h.updateUser.Execute(r.Context(), user.UpdateUserInput{
		ID:          chi.URLParam(r, "id"),
		DisplayName: body.DisplayName,
		Username:    body.Username,
	}, middleware.AppContextFromContext(r.Context()))
	if err != nil {
		middleware.RecordCommand("update_user", string(apperror.CodeOf(err)))
		writeAppErr(w, h.log, err)
		return
	}
	middleware.RecordCommand("update_user", "OK")
	w.WriteHeader(http.StatusNoContent)
}

// ToggleStatus handles PUT /users/{id}/status.
func (h *UsersHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Enabled *bool `json:"enabled" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Enabled == nil {
		writeAppErr(w, h.log, apperror.New(apperror.CodeInvalidRequest, "invalid request body"))
		return
	}
	err := h.toggleStatus.Execute(r.Context(), user.ToggleUserStatusInput{
		ID:      chi.URLParam(r, "id"),
		Enabled: *body.Enabled,
	}, middleware.AppContextFromContext(r.Context()))
	if err != nil {
		middleware.RecordCommand("toggle_user_status", string(apperror.CodeOf(err)))
		writeAppErr(w, h.log, err)
		return
	}
	middleware.RecordCommand("toggle_user_status", "OK")
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /users/{id}.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.deleteUser.Execute(r.Context(), user.DeleteUserInput{
		ID: chi.URLParam(r, "id"),
	}, middleware.AppContextFromContext(r.Context()))
	if err != nil {
		middleware.RecordCommand("delete_user", string(apperror.CodeOf(err)))
		writeAppErr(w, h.log, err)
		return
	}
	middleware.RecordCommand("delete_user", "OK")
	w.WriteHeader(http.StatusNoContent)
}
