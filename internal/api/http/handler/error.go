package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dtroode/studentinfo-server/internal/model"
)

// Messages returned in the detail field.
const (
	MsgUsernameTaken      = "Username already registered"
	MsgInvalidCredentials = "Incorrect username or password"
	MsgNotAuthenticated   = "Not authenticated"
	MsgInvalidToken       = "Could not validate credentials"
	MsgInactiveUser       = "Inactive user"
	MsgStudentNotFound    = "Student not found"
	MsgNoUpdateData       = "No update data provided."
	MsgUnavailable        = "Service temporarily unavailable"
	MsgInternal           = "Internal server error"
	MsgNotFound           = "Not Found"
	MsgMethodNotAllowed   = "Method Not Allowed"
	MsgBodyTooLarge       = "Request body too large"
)

type detailResponse struct {
	Detail any `json:"detail"`
}

// WriteJSON encodes v as the response body.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteDetail writes {"detail": msg}.
func WriteDetail(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, detailResponse{Detail: msg})
}

// WriteUnauthorized writes a 401 carrying the bearer challenge.
func WriteUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	WriteDetail(w, http.StatusUnauthorized, msg)
}

// WriteError maps domain errors to HTTP responses.
func WriteError(w http.ResponseWriter, err error) {
	var vErr *model.ValidationError
	if errors.As(err, &vErr) {
		WriteJSON(w, http.StatusUnprocessableEntity, detailResponse{Detail: vErr.Fields})
		return
	}

	switch {
	case errors.Is(err, model.ErrDuplicateUsername):
		WriteDetail(w, http.StatusBadRequest, MsgUsernameTaken)
	case errors.Is(err, model.ErrDuplicateEnrollment):
		WriteDetail(w, http.StatusBadRequest, "Student with this enrollment number already exists.")
	case errors.Is(err, model.ErrNoUpdateFields):
		WriteDetail(w, http.StatusBadRequest, MsgNoUpdateData)
	case errors.Is(err, model.ErrInvalidCredentials):
		WriteUnauthorized(w, MsgInvalidCredentials)
	case errors.Is(err, model.ErrUserDisabled):
		WriteUnauthorized(w, MsgInactiveUser)
	case errors.Is(err, model.ErrInvalidSignature),
		errors.Is(err, model.ErrExpired),
		errors.Is(err, model.ErrMalformedClaims),
		errors.Is(err, model.ErrUnknownSubject):
		WriteUnauthorized(w, MsgInvalidToken)
	case errors.Is(err, model.ErrNotFound):
		WriteDetail(w, http.StatusNotFound, MsgStudentNotFound)
	case errors.Is(err, model.ErrStoreUnavailable):
		WriteDetail(w, http.StatusServiceUnavailable, MsgUnavailable)
	default:
		WriteDetail(w, http.StatusInternalServerError, MsgInternal)
	}
}

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 1 << 20

func limitBody(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	limitBody(w, r)
	return json.NewDecoder(r.Body).Decode(v)
}

func writeBodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		WriteDetail(w, http.StatusRequestEntityTooLarge, MsgBodyTooLarge)
		return
	}
	WriteError(w, model.NewValidationError("body", err.Error()))
}
