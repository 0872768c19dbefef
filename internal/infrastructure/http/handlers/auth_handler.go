package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/gatekit/gatekit/internal/application/user"
	"github.com/gatekit/gatekit/internal/domain"
	"github.com/gatekit/gatekit/internal/domain/apperror"
	"github.com/gatekit/gatekit/internal/infrastructure/http/middleware"
)

// AuthHandler serves the anonymous /auth endpoints.
type AuthHandler struct {
	register *user.RegisterUser
	signIn   *user.SignIn
	validate *validator.Validate
	log      zerolog.Logger
}

func NewAuthHandler(register *user.RegisterUser, signIn *user.SignIn, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		register: register,
		signIn:   signIn,
		validate: validator.New(),
		log:      log,
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email       string  `json:"email" validate:"required,max=254"`
		Password    string  `json:"password" validate:"omitempty,min=8,max=128"`
		SignInType  string  `json:"signInType" validate:"required,oneof=EMAIL GOOGLE APPLE"`
		IDToken     string  `json:"idToken" validate:"omitempty,max=4096"`
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
	result, err := h.register.Execute(r.Context(), user.RegisterUserInput{
		Email:       strings.TrimSpace(body.Email),
		Password:    body.Password,
		SignInType:  domain.SignInType(body.SignInType),
		IDToken:     body.IDToken,
		DisplayName: body.DisplayName,
		Username:    body.Username,
	}, domain.AppContext{})
	if err != nil {
		middleware.RecordCommand("register_user", string(apperror.CodeOf(err)))
		writeAppErr(w, h.log, err)
		return
	}
	middleware.RecordCommand("register_user", "OK")
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":          result.ID,
		"idToken":     result.IDToken,
		"signInToken": result.SignInToken,
	})
}

// SignIn handles POST /auth/sign-in. Failures deliberately collapse into one
// INVALID_CREDENTIALS response regardless of cause.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"omitempty,max=254"`
		Username string `json:"username" validate:"omitempty,max=32"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAppErr(w, h.log, apperror.New(apperror.CodeInvalidCredentials, "invalid email or password"))
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeAppErr(w, h.log, apperror.New(apperror.CodeInvalidCredentials, "invalid email or password"))
		return
	}
	result, err := h.signIn.Execute(r.Context(), user.SignInInput{
		Email:    strings.TrimSpace(body.Email),
		Username: strings.TrimSpace(body.Username),
		Password: body.Password,
	}, domain.AppContext{})
	if err != nil {
		middleware.RecordCommand("sign_in", string(apperror.CodeOf(err)))
		writeAppErr(w, h.log, err)
		return
	}
	middleware.RecordCommand("sign_in", "OK")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"userId":      result.UserID,
		"idToken":     result.IDToken,
		"signInToken": result.SignInToken,
		"accessToken": result.AccessToken,
		"expiresIn":   result.ExpiresIn,
	})
}
