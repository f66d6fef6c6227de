package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sbilibin2017/taskboard/internal/repositories"
	"github.com/sbilibin2017/taskboard/internal/services"
	"github.com/sbilibin2017/taskboard/internal/validation"
	"github.com/stretchr/testify/assert"
)

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{validation.ErrEmailInvalid, http.StatusBadRequest},
		{validation.ErrPasswordTooLong, http.StatusBadRequest},
		{fmt.Errorf("new task: %w", validation.ErrTitleEmpty), http.StatusBadRequest},
		{services.ErrInvalidStatus, http.StatusBadRequest},
		{services.ErrInvalidRecoveryToken, http.StatusBadRequest},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{services.ErrForbidden, http.StatusForbidden},
		{services.ErrSelfDeletion, http.StatusForbidden},
		{services.ErrSelfDemotion, http.StatusForbidden},
		{services.ErrUserNotFound, http.StatusNotFound},
		{services.ErrTaskNotFound, http.StatusNotFound},
		{services.ErrUserAlreadyExists, http.StatusConflict},
		{services.ErrTooManyAttempts, http.StatusTooManyRequests},
		{fmt.Errorf("get task: %w", repositories.ErrStorage), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rr := httptest.NewRecorder()
			writeServiceError(rr, tt.err)

			assert.Equal(t, tt.code, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.NotEmpty(t, decodeMap(t, rr)["error"])
		})
	}
}

func TestWriteServiceErrorHidesStorageDetails(t *testing.T) {
	rr := httptest.NewRecorder()
	writeServiceError(rr, fmt.Errorf("%w: disk I/O error at /var/lib/taskboard.db", repositories.ErrStorage))

	assert.Equal(t, map[string]any{"error": "Internal server error"}, decodeMap(t, rr))
}
