package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/coldstore/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// newIDTestRouter wires every handler without a backing service: a malformed
// path ID must be rejected before any service call happens.
func newIDTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(middleware.TenantIDKey, uuid.New().String())
	})
	api := engine.Group("/api/v1")
	NewCashbookHandler(nil, nil).RegisterRoutes(api)
	NewPartnerHandler(nil).RegisterRoutes(api)
	NewDueHandler(nil).RegisterRoutes(api)
	NewSaleHandler(nil).RegisterRoutes(api)
	NewBankAccountHandler(nil).RegisterRoutes(api)
	return engine
}

func TestMalformedPathIDRejected(t *testing.T) {
	engine := newIDTestRouter()

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"get entry", http.MethodGet, "/api/v1/cashbook/entries/not-a-uuid"},
		{"reverse entry", http.MethodPost, "/api/v1/cashbook/entries/not-a-uuid/reverse"},
		{"get buyer", http.MethodGet, "/api/v1/buyers/42"},
		{"get farmer", http.MethodGet, "/api/v1/farmers/42"},
		{"buyer due", http.MethodGet, "/api/v1/dues/buyers/not-a-uuid"},
		{"farmer due", http.MethodGet, "/api/v1/dues/farmers/not-a-uuid"},
		{"get sale", http.MethodGet, "/api/v1/sales/not-a-uuid"},
		{"delete bank account", http.MethodDelete, "/api/v1/bank-accounts/not-a-uuid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, nil)
			engine.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "VALIDATION_FAILED")
		})
	}
}
