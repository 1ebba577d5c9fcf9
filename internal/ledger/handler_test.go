package ledger

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"kinetica/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestRouter(f *fixture, id auth.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(f.svc)

	r := gin.New()
	r.Use(func(c *gin.Context) { auth.SetIdentity(c, id) })
	r.POST("/payments", h.CreatePayment)
	r.GET("/payments/:id", h.GetPayment)
	r.PUT("/payments/:id", h.UpdatePayment)
	r.PUT("/payments/:id/sessions-remaining", h.OverrideSessionsRemaining)
	return r
}

func send(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_CreatePaymentValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing start date", `{"member_id":5,"package_id":3,"price_paid":100}`},
		{"negative price", `{"member_id":5,"package_id":3,"price_paid":-5,"start_date":"2024-01-01"}`},
		{"unknown method", `{"member_id":5,"package_id":3,"price_paid":100,"start_date":"2024-01-01","payment_method":"crypto"}`},
		{"bad date", `{"member_id":5,"package_id":3,"price_paid":100,"start_date":"01/01/2024"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := send(newTestRouter(newFixture(), owner), http.MethodPost, "/payments", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestHandler_GetPayment(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByID", mock.Anything, 7, 11).Return(stored(9, intPtr(2)), nil)
	f.repo.On("GetByID", mock.Anything, 7, 12).Return(nil, ErrMemberPackageNotFound)

	w := send(newTestRouter(f, trainerA), http.MethodGet, "/payments/11", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sessions_remaining":9`)
	assert.Contains(t, w.Body.String(), `"member_name":"Jane"`)
	assert.NotContains(t, w.Body.String(), "member_trainer_id")

	w = send(newTestRouter(f, trainerB), http.MethodGet, "/payments/11", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = send(newTestRouter(f, owner), http.MethodGet, "/payments/12", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_OverrideSessionsRemaining(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByID", mock.Anything, 7, 11).Return(stored(9, intPtr(2)), nil)
	f.repo.On("SetRemaining", mock.Anything, nil, 11, 10).Return(nil)

	w := send(newTestRouter(f, trainerB), http.MethodPut, "/payments/11/sessions-remaining", `{"sessions_remaining":10}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = send(newTestRouter(f, trainerA), http.MethodPut, "/payments/11/sessions-remaining", `{"sessions_remaining":10}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = send(newTestRouter(f, owner), http.MethodPut, "/payments/11/sessions-remaining", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send(newTestRouter(f, owner), http.MethodPut, "/payments/11/sessions-remaining", `{"sessions_remaining":11}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send(newTestRouter(f, owner), http.MethodPut, "/payments/11/sessions-remaining", `{"sessions_remaining":10}`)
	assert.Equal(t, http.StatusOK, w.Code)
}
