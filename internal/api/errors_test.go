package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"kinetica/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", apperr.NotFound("Member not found"), http.StatusNotFound},
		{"wrapped forbidden", fmt.Errorf("update: %w", apperr.Forbidden("nope")), http.StatusForbidden},
		{"bad request sentinel", apperr.ErrBadRequest, http.StatusBadRequest},
		{"conflict", apperr.Conflict("Email already registered"), http.StatusConflict},
		{"unauthenticated", apperr.Unauthenticated("Invalid credentials"), http.StatusUnauthorized},
		{"plain error", errors.New("pq: connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.err))
		})
	}
}

func TestFail(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("domain error keeps its message", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/members/1", nil)

		Fail(c, apperr.NotFound("Member not found"))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Member not found"}`, w.Body.String())
	})

	t.Run("internal error is hidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/members/1", nil)

		Fail(c, errors.New("pq: password authentication failed"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "pq:")
	})
}

func TestParamID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, tt := range []struct {
		raw    string
		want   int
		wantOK bool
	}{
		{"12", 12, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
	} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: tt.raw}}

		id, ok := ParamID(c, "id")
		assert.Equal(t, tt.wantOK, ok, tt.raw)
		assert.Equal(t, tt.want, id, tt.raw)
		if !ok {
			assert.Equal(t, http.StatusBadRequest, w.Code)
		}
	}
}
