package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/gatekit/gatekit/internal/application/group"
	"github.com/gatekit/gatekit/internal/domain/apperror"
	"github.com/gatekit/gatekit/internal/infrastructure/http/middleware"
)

// GroupsHandler serves the authenticated /user-groups endpoints.
type GroupsHandler struct {
	createGroup *group.CreateUserGroup
	updateGroup *group.UpdateUserGroup
	deleteGroup *group.DeleteUserGroup
	getGroup    *group.GetUserGroup
	findGroups  *group.FindUserGroups
	addRole     *group.AddRoleToUserGroup
	removeRole  *group.RemoveRoleFromUserGroup
	addUser     *group.AddUserToUserGroup
	removeUser  *group.RemoveUserFromUserGroup
	validate    *validator.Validate
	log         zerolog.Logger
}

func NewGroupsHandler(createGroup *group.CreateUserGroup, updateGroup *group.UpdateUserGroup, deleteGroup *group.DeleteUserGroup, getGroup *group.GetUserGroup, findGroups *group.FindUserGroups, addRole *group.AddRoleToUserGroup, removeRole *group.RemoveRoleFromUserGroup, addUser *group.AddUserToUserGroup, removeUser *group.RemoveUserFromUserGroup, log zerolog.Logger) *GroupsHandler {
	return &GroupsHandler{
		createGroup: createGroup,
		updateGroup: updateGroup,
		deleteGroup: deleteGroup,
		getGroup:    getGroup,
		findGroups:  findGroups,
		addRole:     addRole,
		removeRole:  removeRole,
		addUser:     addUser,
		removeUser:  removeUser,
		validate:    validator.New(),
		log:         log,
	}
}

// Create handles POST /user-groups.
func (h *GroupsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string  `json:"name" validate:"required,max=100"`
		Description *string `json:"description" validate:"omitempty,max=500"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAppErr(w, h.log, apperror.New(apperror.CodeInvalidRequest, "invalid request body"))
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeAppErr(w, h.log, apperror.New(apperror.CodeInvalidRequest, err.Error()))
		return
	}
	result, err := h.createGroup.Execute(r.Context(), group.CreateUserGroupInput{
		Name:        body.Name,
		Description: body.Description,
	}, middleware.AppContextFromContext(r.Context()))
	if err != nil {
		middleware.RecordCommand("create_user_group", string(apperror.CodeOf(err)))
		writeAppErr(w, h.log, err)
		return
	}
	middleware.RecordCommand("create_user_group", "OK")
	writeJSON(w, http.StatusCreated, map[string]string{"id": result.ID})
}

// Update handles PUT /user-groups/{id}.
func (h *GroupsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        *string `json:"name" validate:"omitempty,max=100"`
		Description *string `json:"description" validate:"omitempty,max=500"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAppErr(w, h.log, apperror.New(apperror.CodeInvalidRequest, "invalid request body"))
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeAppErr(w, h.log, apperror.New(apperror.CodeInvalidRequest, err.Error()))
		return
	}
	err := h.updateGroup.Execute(r.Context(), group.UpdateUserGroupInput{
		ID:          chi.URLParam(r, "id"),
		Name:        body.Name,
		Description: body.Description,
	}, middleware.AppContextFromContext(r.Context()))
	if err != nil {
		middleware.RecordCommand("update_user_group", string(apperror.CodeOf(err)))
		writeAppErr(w, h.log, err)
		return
	}
	middleware.RecordCommand("update_user_group", "OK")
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /user-groups/{id}.
func (h *GroupsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.deleteGroup.Execute(r.Context(), group.DeleteUserGroupInput{
		ID: chi.URLParam(r, "id"),
	}, middleware.AppContextFromContext(r.Context()))
	if err != nil {
		middleware.RecordCommand("delete_user_group", string(apperror.CodeOf(err)))
		writeAppErr(w, h.log, err)
		return
	}
	middleware.RecordCommand("delete_user_group", "OK")
	w.WriteHeader(http.StatusNoContent)
}

// Get handles GET /user-groups/{id}.
func (h *GroupsHandler) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.getGroup.Execute(r.Context(), group.GetUserGroupInput{
		ID: chi.URLParam(r, "id"),
	}, middleware.AppContextFromContext(r.Context()))
	if err != nil {
		writeAppErr(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// List handles GET /user-groups.
func (h *GroupsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.findGroups.Execute(r.Context(), group.FindUserGroupsInput{
		Search:      q.Get("search"),
		UserID:      q.Get("userId"),
		PageRequest: pageRequestFromQuery(r),
	}, middleware.AppContextFromContext(r.Context()))
	if err != nil {
		writeAppErr(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// AddRole handles POST /user-groups/{id}/roles/{roleId}.
func (h *GroupsHandler) AddRole(w http.ResponseWriter, r *http.Request) {
	err := h.addRole.Execute(r.Context(), group.AddRoleInput{
		GroupID: chi.URLParam(r, "id"),
		RoleID:  chi.URLParam(r, "roleId"),
	}, middleware.AppContextFromContext(r.Context()))
	if err != nil {
		middleware.RecordCommand("add_role_to_user_group", string(apperror.CodeOf(err)))
		writeAppErr(w, h.log, err)
		return
	}
	middleware.RecordCommand("add_role_to_user_group", "OK")
	w.WriteHeader(http.StatusNoContent)
}

// RemoveRole handles DELETE /user-groups/{id}/roles/{roleId}.
func (h *GroupsHandler) RemoveRole(w http.ResponseWriter, r *http.Request) {
	err := h.removeRole.Execute(r.Context(), group.RemoveRoleInput{
		GroupID: chi.URLParam(r, "id"),
		RoleID:  chi.URLParam(r, "roleId"),
	}, middleware.AppContextFromContext(r.Context()))
	if err != nil {
		middleware.RecordCommand("remove_role_from_user_group", string(apperror.CodeOf(err)))
		writeAppErr(w, h.log, err)
		return
	}
	middleware.RecordCommand("remove_role_from_user_group", "OK")
	w.WriteHeader(http.StatusNoContent)
}

// AddUser handles POST /user-groups/{id}/users/{userId}.
func (h *GroupsHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	err := h.addUser.Execute(r.Context(), group.AddUserInput{
		GroupID: chi.URLParam(r, "id"),
		UserID:  chi.URLParam(r, "userId"),
	}, middleware.AppContextFromContext(r.Context()))
	if err != nil {
		middleware.RecordCommand("add_user_to_user_group", string(apperror.CodeOf(err)))
		writeAppErr(w, h.log, err)
		return
	}
	middleware.RecordCommand("add_user_to_user_group", "OK")
	w.WriteHeader(http.StatusNoContent)
}

// RemoveUser handles DELETE /user-groups/{id}/users/{userId}.
func (h *GroupsHandler) RemoveUser(w http.ResponseWriter, r *http.Request) {
	err := h.removeUser.Execute(r.Context(), group.RemoveUserInput{
		GroupID: chi.URLParam(r, "id"),
		UserID:  chi.URLParam(r, "userId"),
	}, middleware.AppContextFromContext(r.Context()))
	if err != nil {
		middleware.RecordCommand("remove_user_from_user_group", string(apperror.CodeOf(err)))
		writeAppErr(w, h.log, err)
		return
	}
	middleware.RecordCommand("remove_user_from_user_group", "OK")
	w.WriteHeader(http.StatusNoContent)
}
