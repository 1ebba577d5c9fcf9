package gym

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"kinetica/internal/api"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestUpdateGymRequest_Validation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.PUT("/", func(c *gin.Context) {
		var req UpdateGymRequest
		if !api.BindJSON(c, &req) {
			return
		}
		c.JSON(http.StatusOK, req)
	})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"empty body is a no-op", `{}`, http.StatusOK},
		{"valid type", `{"type":"personal_studio"}`, http.StatusOK},
		{"unknown type", `{"type":"spa"}`, http.StatusBadRequest},
		{"empty name", `{"name":""}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPut, "/", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}
