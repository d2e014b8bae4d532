package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lenditapp/lendit-backend/internal/pkg/apperror"
)

func record(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Error(c, err)
	return w
}

func TestErrorKeepsBusinessStatus(t *testing.T) {
	w := record(apperror.New(http.StatusConflict, "slot taken"))

	assert.Equal(t, http.StatusConflict, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "slot taken", body.Error)
}

func TestErrorFindsWrappedAppError(t *testing.T) {
	sentinel := apperror.New(http.StatusNotFound, "item not found")
	w := record(fmt.Errorf("loading item: %w", sentinel))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestErrorMasksInternalFailures(t *testing.T) {
	w := record(errors.New("connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body.Error)
}
