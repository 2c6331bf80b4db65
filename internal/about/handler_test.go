package about

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAbout(t *testing.T) {
	rec := httptest.NewRecorder()
	GetAbout(rec, httptest.NewRequest(http.MethodGet, "/about", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var got Author
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, Profile, got)
	assert.Equal(t, "Nathan Daniel", got.Name)
	assert.NotEmpty(t, got.Image)
}
