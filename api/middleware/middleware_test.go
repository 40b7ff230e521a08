package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestId())
	engine.GET("/me", RequireUser(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": UserId(c), "requestId": GetRequestId(c)})
	})
	return engine
}

func TestRequireUser(t *testing.T) {
	engine := setupTestEngine()

	tests := []struct {
		name     string
		header   string
		expected int
	}{
		{name: "valid", header: "7", expected: http.StatusOK},
		{name: "missing", header: "", expected: http.StatusUnauthorized},
		{name: "zero", header: "0", expected: http.StatusUnauthorized},
		{name: "not a number", header: "abc", expected: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(UserIdHeader, tt.header)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, tt.expected, w.Code)
		})
	}
}

func TestRequestId(t *testing.T) {
	engine := setupTestEngine()

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(UserIdHeader, "7")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.NotEmpty(t, w.Header().Get(RequestIdHeader))

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(UserIdHeader, "7")
	req.Header.Set(RequestIdHeader, "fixed-id")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, "fixed-id", w.Header().Get(RequestIdHeader))
	assert.Contains(t, w.Body.String(), `"requestId":"fixed-id"`)
}
