package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTenantTestRouter(cfg TenantMiddlewareConfig) (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(TenantMiddlewareWithConfig(cfg))

	var seenTenant string
	handler := func(c *gin.Context) {
		seenTenant = GetTenantID(c)
		c.Status(http.StatusOK)
	}
	engine.GET("/entries", handler)
	engine.GET("/healthz", handler)
	return engine, &seenTenant
}

func TestTenantMiddlewareMissingHeader(t *testing.T) {
	engine, _ := newTenantTestRouter(DefaultTenantConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/entries", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestTenantMiddlewareInvalidUUID(t *testing.T) {
	engine, _ := newTenantTestRouter(DefaultTenantConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/entries", nil)
	req.Header.Set(TenantHeaderKey, "not-a-uuid")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid tenant ID format")
}

func TestTenantMiddlewareValidTenant(t *testing.T) {
	engine, seenTenant := newTenantTestRouter(DefaultTenantConfig())
	tenantID := uuid.New().String()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/entries", nil)
	req.Header.Set(TenantHeaderKey, tenantID)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, tenantID, *seenTenant)
}

func TestTenantMiddlewareSkipPath(t *testing.T) {
	engine, seenTenant := newTenantTestRouter(DefaultTenantConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, *seenTenant)
}

func TestTenantMiddlewareOptional(t *testing.T) {
	cfg := DefaultTenantConfig()
	cfg.Required = false
	engine, seenTenant := newTenantTestRouter(cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/entries", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, *seenTenant)
}

func TestGetTenantUUID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	id, err := GetTenantUUID(c)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, id)

	want := uuid.New()
	c.Set(TenantIDKey, want.String())
	id, err = GetTenantUUID(c)
	require.NoError(t, err)
	assert.Equal(t, want, id)
}
