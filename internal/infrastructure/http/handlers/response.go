package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gatekit/gatekit/internal/application/ports"
	"github.com/gatekit/gatekit/internal/domain/apperror"
)

type errorResponse struct {
	Error string                 `json:"error"`
	Code  string                 `json:"code"`
	Data  map[string]interface{} `json:"data,omitempty"`
}

// writeAppErr serializes an application error with its mapped HTTP status.
// Unexpected errors are logged and reported as INTERNAL_ERROR without detail.
func writeAppErr(w http.ResponseWriter, log zerolog.Logger, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		appErr = apperror.Internal(err)
	}
	if appErr.Code == apperror.CodeInternal {
		log.Error().Err(err).Msg("request failed")
	}
	message := appErr.Message
	var data map[string]interface{}
	if appErr.Code != apperror.CodeInternal {
		data = appErr.Data
	}
	writeJSON(w, apperror.HTTPStatus(appErr.Code), errorResponse{
		Error: message,
		Code:  string(appErr.Code),
		Data:  data,
	})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// pageRequestFromQuery reads pageIndex/pageSize/sortField/sortOrder query
// parameters. The query handlers normalize and clamp the values.
func pageRequestFromQuery(r *http.Request) ports.PageRequest {
	q := r.URL.Query()
	page := ports.PageRequest{
		SortField: q.Get("sortField"),
	}
	if v, err := strconv.Atoi(q.Get("pageIndex")); err == nil {
		page.PageIndex = v
	}
	if v, err := strconv.Atoi(q.Get("pageSize")); err == nil {
		page.PageSize = v
	}
	if q.Get("sortOrder") == string(ports.SortDesc) {
		page.SortOrder = ports.SortDesc
	}
	return page
}
