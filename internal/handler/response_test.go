package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/healthbridge/records-api/pkg/apperror"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"validation", apperror.Validation("bad input"), http.StatusBadRequest, "bad input"},
		{"unauthorized", apperror.Unauthorized("invalid credentials"), http.StatusUnauthorized, "invalid credentials"},
		{"forbidden", apperror.PermissionDenied("nope"), http.StatusForbidden, "nope"},
		{"not found", apperror.NotFound("patient"), http.StatusNotFound, "patient not found"},
		{"exhausted", apperror.IdentifierExhausted("PAT", nil), http.StatusInternalServerError, "could not allocate"},
		{"plain error masked", errors.New("pq: connection refused"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

			RespondError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}
