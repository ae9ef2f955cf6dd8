package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"form-service/internal/permission"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(testSecret))
	checker := permission.NewClaimsChecker()
	router.GET("/guarded", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user":   c.GetString(ContextUserID),
			"create": checker.CanCreateForm(c.Request.Context()),
			"edit3":  checker.CanEditForm(c.Request.Context(), 3),
		})
	})
	return router
}

func TestAuth(t *testing.T) {
	valid := signToken(t, testSecret, Claims{
		UserID:      "u-1",
		Permissions: []string{permission.GrantCreateForm, permission.EditFormGrant(3)},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	subjectOnly := signToken(t, testSecret, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u-2"},
	})
	expired := signToken(t, testSecret, Claims{
		UserID: "u-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	wrongKey := signToken(t, "other", Claims{UserID: "u-1"})
	noSubject := signToken(t, testSecret, Claims{Permissions: []string{permission.GrantAdmin}})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   string
		wantCreate bool
		wantEdit   bool
	}{
		{"missing header", "", http.StatusUnauthorized, "", false, false},
		{"bad scheme", "Basic abc", http.StatusUnauthorized, "", false, false},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, "", false, false},
		{"wrong key", "Bearer " + wrongKey, http.StatusUnauthorized, "", false, false},
		{"no subject", "Bearer " + noSubject, http.StatusUnauthorized, "", false, false},
		{"valid with grants", "Bearer " + valid, http.StatusOK, "u-1", true, true},
		{"subject claim", "Bearer " + subjectOnly, http.StatusOK, "u-2", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupAuthRouter()
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, false, body["success"])
				return
			}
			assert.Equal(t, tt.wantUser, body["user"])
			assert.Equal(t, tt.wantCreate, body["create"])
			assert.Equal(t, tt.wantEdit, body["edit3"])
		})
	}
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Recovery(zap.NewNop()))
	router.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("allow list", func(t *testing.T) {
		router := gin.New()
		router.Use(CORS([]string{"https://site.example"}))
		router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", "https://site.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, "https://site.example", w.Header().Get("Access-Control-Allow-Origin"))

		req = httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", "https://evil.example")
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		router := gin.New()
		router.Use(CORS(nil))
		router.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodOptions, "/x", nil)
		req.Header.Set("Origin", "https://any.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://any.example", w.Header().Get("Access-Control-Allow-Origin"))
	})
}
