package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/taskboard/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestLogoutHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	user := testUser(false)

	tests := []struct {
		name         string
		user         *models.User
		mockSetup    func(m *MockLogouter)
		expectedCode int
		expectedBody map[string]any
	}{
		{
			name: "success",
			user: user,
			mockSetup: func(m *MockLogouter) {
				m.EXPECT().Logout(gomock.Any(), user.ID).Return(nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: map[string]any{"message": "Logged out"},
		},
		{
			name:         "no user in context",
			expectedCode: http.StatusUnauthorized,
			expectedBody: map[string]any{"error": "Unauthorized"},
		},
		{
			name: "storage failure",
			user: user,
			mockSetup: func(m *MockLogouter) {
				m.EXPECT().Logout(gomock.Any(), user.ID).Return(errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: map[string]any{"error": "Internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockLogouter(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			req := withUser(httptest.NewRequest(http.MethodPost, "/logout", nil), tt.user)
			rr := httptest.NewRecorder()
			NewLogoutHandler(mockSvc)(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.Equal(t, tt.expectedBody, decodeMap(t, rr))
		})
	}
}
