package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSystemHandler(t *testing.T) (*SystemHandler, sqlmock.Sqlmock, redismock.ClientMock) {
	mockDB, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	rdb, redisMock := redismock.NewClientMock()
	t.Cleanup(func() { rdb.Close() })

	return NewSystemHandler(sqlx.NewDb(mockDB, "sqlmock"), rdb), dbMock, redisMock
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		dbErr    error
		redisErr error
		want     int
		body     string
	}{
		{"all up", nil, nil, http.StatusOK, `{"status":"ok","database":"up","redis":"up"}`},
		{"redis down", nil, errors.New("connection refused"), http.StatusOK, `{"status":"degraded","database":"up","redis":"down"}`},
		{"database down", errors.New("connection refused"), nil, http.StatusServiceUnavailable, `{"status":"unavailable","database":"down","redis":"up"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, dbMock, redisMock := newTestSystemHandler(t)
			ping := dbMock.ExpectPing()
			if tt.dbErr != nil {
				ping.WillReturnError(tt.dbErr)
			}
			if tt.redisErr != nil {
				redisMock.ExpectPing().SetErr(tt.redisErr)
			} else {
				redisMock.ExpectPing().SetVal("PONG")
			}

			router := gin.New()
			router.GET("/health", h.Health)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.want, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
			assert.NoError(t, dbMock.ExpectationsWereMet())
			assert.NoError(t, redisMock.ExpectationsWereMet())
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/metrics", Metrics())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "kinetica_ledger_clamped_total")
}
