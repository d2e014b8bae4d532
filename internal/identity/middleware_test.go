package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupRouter() (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)

	var seen string
	r := gin.New()
	r.GET("/probe", Required(), func(c *gin.Context) {
		seen = CallerID(c)
		c.Status(http.StatusOK)
	})
	return r, &seen
}

func TestRequired(t *testing.T) {
	const callerID = "11111111-1111-1111-1111-111111111111"

	t.Run("missing header", func(t *testing.T) {
		r, _ := setupRouter()
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)

		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed user id", func(t *testing.T) {
		r, _ := setupRouter()
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set(Header, "not-a-uuid")

		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("valid header reaches the handler", func(t *testing.T) {
		r, seen := setupRouter()
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set(Header, callerID)

		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, callerID, *seen)
	})
}

func TestCallerIDWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, CallerID(c))
}
