package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func corsRouter(cfg CORSConfig) *gin.Engine {
	router := gin.New()
	router.Use(CORSWithConfig(cfg))
	router.POST("/api/v1/webhook", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func TestCORSWithConfig(t *testing.T) {
	t.Run("whitelisted origin gets CORS headers", func(t *testing.T) {
		router := corsRouter(CORSConfig{
			AllowOrigins:     []string{"https://painel.mcpfinanceiro.com"},
			AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "X-Client-Id"},
			AllowCredentials: true,
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/webhook", nil)
		req.Header.Set("Origin", "https://painel.mcpfinanceiro.com")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://painel.mcpfinanceiro.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "X-Client-Id")
	})

	t.Run("unlisted origin gets no CORS headers", func(t *testing.T) {
		router := corsRouter(CORSConfig{
			AllowOrigins: []string{"https://painel.mcpfinanceiro.com"},
			AllowMethods: []string{"GET", "POST"},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/webhook", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard allows any origin without credentials", func(t *testing.T) {
		router := corsRouter(CORSConfig{
			AllowOrigins:     []string{"*"},
			AllowMethods:     []string{"GET", "POST"},
			AllowCredentials: true,
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/webhook", nil)
		req.Header.Set("Origin", "https://anywhere.example.com")
		router.ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("empty whitelist leaves responses untouched", func(t *testing.T) {
		router := corsRouter(CORSConfig{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/webhook", nil)
		req.Header.Set("Origin", "https://painel.mcpfinanceiro.com")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight returns 204", func(t *testing.T) {
		router := corsRouter(CORSConfig{
			AllowOrigins: []string{"https://painel.mcpfinanceiro.com"},
			AllowMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowHeaders: []string{"Content-Type"},
			MaxAge:       12 * time.Hour,
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("OPTIONS", "/api/v1/webhook", nil)
		req.Header.Set("Origin", "https://painel.mcpfinanceiro.com")
		req.Header.Set("Access-Control-Request-Method", "POST")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://painel.mcpfinanceiro.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
		assert.Equal(t, "43200", w.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("preflight from unlisted origin still gets 204 without headers", func(t *testing.T) {
		router := corsRouter(CORSConfig{
			AllowOrigins: []string{"https://painel.mcpfinanceiro.com"},
			AllowMethods: []string{"GET", "POST"},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("OPTIONS", "/api/v1/webhook", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestDefaultCORSConfig(t *testing.T) {
	cfg := DefaultCORSConfig()

	assert.Empty(t, cfg.AllowOrigins)
	assert.Contains(t, cfg.AllowMethods, "PATCH")
	assert.NotContains(t, cfg.AllowMethods, "DELETE")
	assert.Contains(t, cfg.AllowHeaders, "X-Client-Id")
	assert.Contains(t, cfg.ExposeHeaders, "X-RateLimit-Remaining")
	assert.True(t, cfg.AllowCredentials)
	assert.Equal(t, 12*time.Hour, cfg.MaxAge)
}

func TestRequestID(t *testing.T) {
	t.Run("generates an ID when none supplied", func(t *testing.T) {
		router := gin.New()
		router.Use(RequestID())
		var seen string
		router.GET("/api/v1/system/ping", func(c *gin.Context) {
			seen = c.GetString(RequestIDKey)
			c.JSON(http.StatusOK, gin.H{"message": "pong"})
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/system/ping", nil)
		router.ServeHTTP(w, req)

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
	})

	t.Run("propagates the caller's ID", func(t *testing.T) {
		router := gin.New()
		router.Use(RequestID())
		var seen string
		router.GET("/api/v1/system/ping", func(c *gin.Context) {
			seen = c.GetString(RequestIDKey)
			c.JSON(http.StatusOK, gin.H{"message": "pong"})
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/system/ping", nil)
		req.Header.Set(RequestIDHeader, "req-boleto-42")
		router.ServeHTTP(w, req)

		assert.Equal(t, "req-boleto-42", seen)
		assert.Equal(t, "req-boleto-42", w.Header().Get(RequestIDHeader))
	})
}

func TestGenerateRequestID(t *testing.T) {
	a := generateRequestID()
	b := generateRequestID()

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 32)
}

func TestSecure(t *testing.T) {
	router := gin.New()
	router.Use(Secure())
	router.GET("/api/v1/system/info", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": "boleto-resolution"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/system/info", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "frame-ancestors 'none'")
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}

func TestSecureWithConfig(t *testing.T) {
	t.Run("HSTS enabled with subdomains and preload", func(t *testing.T) {
		router := gin.New()
		router.Use(SecureWithConfig(SecurityConfig{
			HSTSEnabled:           true,
			HSTSMaxAge:            31536000,
			HSTSIncludeSubdomains: true,
			HSTSPreload:           true,
		}))
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, "max-age=31536000; includeSubDomains; preload", w.Header().Get("Strict-Transport-Security"))
	})

	t.Run("CSP disabled omits the header", func(t *testing.T) {
		router := gin.New()
		router.Use(SecureWithConfig(SecurityConfig{CSPEnabled: false}))
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		assert.Empty(t, w.Header().Get("Content-Security-Policy"))
		assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	})
}

func TestDefaultSecurityConfig(t *testing.T) {
	cfg := DefaultSecurityConfig()

	assert.False(t, cfg.HSTSEnabled)
	assert.True(t, cfg.CSPEnabled)
	assert.Contains(t, cfg.CSPDirective, "default-src 'self'")
}
