package handler

import (
	"context"
	"net/http"

	"github.com/dtroode/studentinfo-server/internal/logger"
	"github.com/dtroode/studentinfo-server/internal/model"
)

// AuthService defines user registration and login operations.
type AuthService interface {
	Register(ctx context.Context, params model.RegisterParams) (model.PublicUser, error)
	Login(ctx context.Context, username, password string) (model.Token, error)
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService    AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register creates a user from a JSON body.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var params model.RegisterParams
	if err := decodeJSON(w, r, &params); err != nil {
		writeBodyError(w, err)
		return
	}

	user, err := h.authService.Register(r.Context(), params)
	if err != nil {
		h.logger.Debug("Auth handler: registration failed",
			"username", params.Username,
			"error", err.Error())
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, user)
}

// Token exchanges form credentials for an access token.
func (h *Auth) Token(w http.ResponseWriter, r *http.Request) {
	limitBody(w, r)
	if err := r.ParseForm(); err != nil {
		writeBodyError(w, err)
		return
	}

	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")

	var missing []model.FieldError
	if username == "" {
		missing = append(missing, model.FieldError{Field: "username", Message: "field required"})
	}
	if password == "" {
		missing = append(missing, model.FieldError{Field: "password", Message: "field required"})
	}
	if len(missing) > 0 {
		WriteError(w, &model.ValidationError{Fields: missing})
		return
	}

	token, err := h.authService.Login(r.Context(), username, password)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, token)
}

// Me returns the authenticated user.
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		WriteUnauthorized(w, MsgNotAuthenticated)
		return
	}

	WriteJSON(w, http.StatusOK, user.Public())
}
