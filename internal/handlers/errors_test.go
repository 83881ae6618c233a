package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thereayou/geoguess/internal/services"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"conflict", &services.Error{Kind: services.ErrConflict, Message: "username already taken"}, http.StatusConflict, "username already taken"},
		{"unauthorized", &services.Error{Kind: services.ErrUnauthorized, Message: "invalid credentials"}, http.StatusUnauthorized, "invalid credentials"},
		{"not found", &services.Error{Kind: services.ErrNotFound, Message: "avatar is not set"}, http.StatusNotFound, "avatar is not set"},
		{"invalid", &services.Error{Kind: services.ErrInvalidInput, Message: "limit must be positive"}, http.StatusBadRequest, "limit must be positive"},
		{"storage", &services.StorageError{Op: "save user", Err: errors.New("connection refused")}, http.StatusInternalServerError, "internal server error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body["error"])
			assert.NotContains(t, rec.Body.String(), "connection refused")
		})
	}
}
