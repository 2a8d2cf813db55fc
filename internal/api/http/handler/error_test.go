package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtroode/studentinfo-server/internal/model"
)

func TestWriteError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
		wantChall  bool
	}{
		{name: "duplicate username", err: model.ErrDuplicateUsername, wantStatus: http.StatusBadRequest, wantDetail: MsgUsernameTaken},
		{name: "no update fields", err: model.ErrNoUpdateFields, wantStatus: http.StatusBadRequest, wantDetail: MsgNoUpdateData},
		{name: "invalid credentials", err: model.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized, wantDetail: MsgInvalidCredentials, wantChall: true},
		{name: "invalid signature", err: fmt.Errorf("%w: bad", model.ErrInvalidSignature), wantStatus: http.StatusUnauthorized, wantDetail: MsgInvalidToken, wantChall: true},
		{name: "expired", err: model.ErrExpired, wantStatus: http.StatusUnauthorized, wantDetail: MsgInvalidToken, wantChall: true},
		{name: "malformed claims", err: model.ErrMalformedClaims, wantStatus: http.StatusUnauthorized, wantDetail: MsgInvalidToken, wantChall: true},
		{name: "unknown subject", err: model.ErrUnknownSubject, wantStatus: http.StatusUnauthorized, wantDetail: MsgInvalidToken, wantChall: true},
		{name: "disabled", err: model.ErrUserDisabled, wantStatus: http.StatusUnauthorized, wantDetail: MsgInactiveUser, wantChall: true},
		{name: "not found", err: model.ErrNotFound, wantStatus: http.StatusNotFound, wantDetail: MsgStudentNotFound},
		{name: "wrapped store unavailable", err: fmt.Errorf("failed to get: %w", model.ErrStoreUnavailable), wantStatus: http.StatusServiceUnavailable, wantDetail: MsgUnavailable},
		{name: "unknown", err: assert.AnError, wantStatus: http.StatusInternalServerError, wantDetail: MsgInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			WriteError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"detail":%q}`, tt.wantDetail), rec.Body.String())
			if tt.wantChall {
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			} else {
				assert.Empty(t, rec.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestRoot(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	Root(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Welcome to the Student Information API!"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		methods   []string
		wantAllow string
	}{
		{name: "post only", methods: []string{http.MethodPost}, wantAllow: "POST"},
		{name: "get adds head", methods: []string{http.MethodGet, http.MethodPut, http.MethodDelete}, wantAllow: "GET, PUT, DELETE, HEAD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			MethodNotAllowed(tt.methods...)(rec, httptest.NewRequest(http.MethodPatch, "/students/E2", nil))

			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, tt.wantAllow, rec.Header().Get("Allow"))
			assert.JSONEq(t, `{"detail":"Method Not Allowed"}`, rec.Body.String())
		})
	}
}
