package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a stable machine-readable error code returned to clients.
type Code string

const (
	CodeUnauthorized         Code = "UNAUTHORIZED"
	CodeForbidden            Code = "FORBIDDEN"
	CodeInvalidRequest       Code = "INVALID_REQUEST"
	CodeInvalidUUID          Code = "INVALID_UUID"
	CodeInvalidEmail         Code = "INVALID_EMAIL"
	CodeInvalidUsername      Code = "INVALID_USERNAME"
	CodeNoUpdates            Code = "NO_UPDATES"
	CodeEmailAlreadyTaken    Code = "EMAIL_ALREADY_TAKEN"
	CodeUsernameAlreadyTaken Code = "USERNAME_ALREADY_TAKEN"
	CodeInvalidCredentials   Code = "INVALID_CREDENTIALS"
	CodeUserNotFound         Code = "USER_NOT_FOUND"
	CodeUserAlreadyDeleted   Code = "USER_ALREADY_DELETED"
	CodeUserNotActive        Code = "USER_NOT_ACTIVE"
	CodeUserStatusUnchanged  Code = "USER_STATUS_UNCHANGED"
	CodeUserGroupNotFound    Code = "USER_GROUP_NOT_FOUND"
	CodeRoleNotFound         Code = "ROLE_NOT_FOUND"
	CodeRoleAlreadyAssigned  Code = "ROLE_ALREADY_ASSIGNED"
	CodeRoleNotAssigned      Code = "ROLE_NOT_ASSIGNED"
	CodeUserAlreadyMember    Code = "USER_ALREADY_MEMBER"
	CodeUserNotMember        Code = "USER_NOT_MEMBER"
	CodeOutdatedVersion      Code = "OUTDATED_VERSION"
	CodeInternal             Code = "INTERNAL_ERROR"
)

// httpStatus maps codes to HTTP statuses. Kept as data so the transport
// layer never hard-codes status literals.
var httpStatus = map[Code]int{
	CodeUnauthorized:         http.StatusUnauthorized,
	CodeForbidden:            http.StatusForbidden,
	CodeInvalidRequest:       http.StatusBadRequest,
	CodeInvalidUUID:          http.StatusBadRequest,
	CodeInvalidEmail:         http.StatusBadRequest,
	CodeInvalidUsername:      http.StatusBadRequest,
	CodeNoUpdates:            http.StatusBadRequest,
	CodeEmailAlreadyTaken:    http.StatusBadRequest,
	CodeUsernameAlreadyTaken: http.StatusBadRequest,
	CodeInvalidCredentials:   http.StatusBadRequest,
	CodeUserNotFound:         http.StatusNotFound,
	CodeUserAlreadyDeleted:   http.StatusBadRequest,
	CodeUserNotActive:        http.StatusBadRequest,
	CodeUserStatusUnchanged:  http.StatusBadRequest,
	CodeUserGroupNotFound:    http.StatusNotFound,
	CodeRoleNotFound:         http.StatusNotFound,
	CodeRoleAlreadyAssigned:  http.StatusBadRequest,
	CodeRoleNotAssigned:      http.StatusBadRequest,
	CodeUserAlreadyMember:    http.StatusBadRequest,
	CodeUserNotMember:        http.StatusBadRequest,
	CodeOutdatedVersion:      http.StatusConflict,
	CodeInternal:             http.StatusInternalServerError,
}

// HTTPStatus returns the HTTP status for a code (500 for unknown codes).
func HTTPStatus(code Code) int {
	if s, ok := httpStatus[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Error is a typed application error carrying a stable code and optional
// structured data for the client.
type Error struct {
	Code    Code
	Message string
	Data    map[string]interface{}
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches two *Error values by code, so errors.Is works with sentinels
// like apperror.New(CodeUserNotFound, ...).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// New creates an error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithData attaches structured data and returns the error.
func (e *Error) WithData(data map[string]interface{}) *Error {
	e.Data = data
	return e
}

// Unauthorized is returned when the caller is not authenticated.
func Unauthorized() *Error {
	return New(CodeUnauthorized, "authentication required")
}

// Forbidden is returned when the caller lacks a required role.
func Forbidden() *Error {
	return New(CodeForbidden, "insufficient permissions")
}

// Internal wraps an unexpected error. The cause is logged server-side and
// never serialized to the client.
func Internal(cause error) *Error {
	return &Error{Code: CodeInternal, Message: "internal error", cause: cause}
}

// CodeOf extracts the code from err, or CodeInternal if err is not an *Error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
