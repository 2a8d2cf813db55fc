package handler

import (
	"net/http"
	"slices"
	"strings"
)

const welcomeMessage = "Welcome to the Student Information API!"

// Root returns the welcome message.
func Root(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"message": welcomeMessage})
}

// NotFound answers unmatched routes.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	WriteDetail(w, http.StatusNotFound, MsgNotFound)
}

// MethodNotAllowed answers a known route called with an unsupported method.
func MethodNotAllowed(methods ...string) http.HandlerFunc {
	allowed := slices.Clone(methods)
	if slices.Contains(allowed, http.MethodGet) && !slices.Contains(allowed, http.MethodHead) {
		allowed = append(allowed, http.MethodHead)
	}
	allow := strings.Join(allowed, ", ")

	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Allow", allow)
		WriteDetail(w, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
	}
}
