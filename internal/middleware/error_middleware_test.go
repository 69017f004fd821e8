package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/sims/internal/app/models/dto"
	"github.com/yigit/sims/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    dto.ErrorCode
		field   string
		message string
	}{
		{
			name:    "validation",
			err:     apperrors.NewValidationError("fullName", "full name is required"),
			status:  http.StatusBadRequest,
			code:    dto.ErrorCodeValidationFailed,
			field:   "fullName",
			message: "full name is required",
		},
		{
			name:    "conflict",
			err:     fmt.Errorf("create: %w", apperrors.NewConflictError("studentCode", "student code already exists")),
			status:  http.StatusConflict,
			code:    dto.ErrorCodeConflict,
			field:   "studentCode",
			message: "student code already exists",
		},
		{
			name:   "not found",
			err:    apperrors.ErrCourseNotFound,
			status: http.StatusNotFound,
			code:   dto.ErrorCodeResourceNotFound,
		},
		{
			name:   "credentials",
			err:    apperrors.ErrInvalidCredentials,
			status: http.StatusUnauthorized,
			code:   dto.ErrorCodeInvalidCredentials,
		},
		{
			name:   "inactive",
			err:    apperrors.ErrAccountInactive,
			status: http.StatusForbidden,
			code:   dto.ErrorCodeAccountInactive,
		},
		{
			name:   "transient",
			err:    fmt.Errorf("%w: gave up", apperrors.ErrTransientStorage),
			status: http.StatusServiceUnavailable,
			code:   dto.ErrorCodeStorageUnavailable,
		},
		{
			name:    "unknown",
			err:     errors.New("driver exploded"),
			status:  http.StatusInternalServerError,
			code:    dto.ErrorCodeInternalServer,
			message: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/things", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.True(t, c.IsAborted())
			resp := decodeError(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.field, resp.Error.Field)
			if tt.message != "" {
				assert.Equal(t, tt.message, resp.Error.Message)
			}
		})
	}
}

func TestHandleAPIError_EchoesDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/enrollments", nil)

	err := apperrors.NewConflictError("courseId", "student is already enrolled in this course").
		WithDetails(map[string]interface{}{"studentId": 3, "courseId": 7})
	HandleAPIError(c, fmt.Errorf("assign: %w", err))

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "courseId", resp.Error.Field)
	assert.Equal(t, map[string]interface{}{"studentId": float64(3), "courseId": float64(7)}, resp.Error.Details)
}

func TestHandleAPIError_OmitsDetailsOnServerErrors(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/things", nil)

	err := &apperrors.CustomError{Err: errors.New("pool closed"), Details: map[string]interface{}{"dsn": "secret"}}
	HandleAPIError(c, err)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Nil(t, decodeError(t, w).Error.Details)
}
