package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/gatekit/gatekit/internal/application/role"
	"github.com/gatekit/gatekit/internal/infrastructure/http/middleware"
)

// RolesHandler serves the authenticated /roles endpoints.
type RolesHandler struct {
	findRoles *role.FindRoles
	log       zerolog.Logger
}

func NewRolesHandler(findRoles *role.FindRoles, log zerolog.Logger) *RolesHandler {
	return &RolesHandler{findRoles: findRoles, log: log}
}

// List handles GET /roles.
func (h *RolesHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.findRoles.Execute(r.Context(), role.FindRolesInput{
		UserGroupID: r.URL.Query().Get("userGroupId"),
		PageRequest: pageRequestFromQuery(r),
	}, middleware.AppContextFromContext(r.Context()))
	if err != nil {
		writeAppErr(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}
