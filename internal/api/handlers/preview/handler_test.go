package preview

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Stash/internal/core/preview"
)

// stubService resolves by validating then returning a canned result.
type stubService struct {
	result *preview.Result
}

func (s *stubService) Resolve(_ context.Context, rawURL string) (*preview.Result, error) {
	if err := preview.ValidateURL(rawURL); err != nil {
		return nil, err
	}
	if s.result != nil {
		return s.result, nil
	}
	return preview.Fallback(rawURL), nil
}

func TestHandleResolve_MissingURLParam(t *testing.T) {
	handler := NewHandler(&stubService{})

	rec := httptest.NewRecorder()
	handler.HandleResolve(rec, httptest.NewRequest(http.MethodGet, "/preview", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleResolve_InvalidURL(t *testing.T) {
	handler := NewHandler(&stubService{})

	req := httptest.NewRequest(http.MethodGet, "/preview?url=not-a-url", nil)
	rec := httptest.NewRecorder()
	handler.HandleResolve(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "InvalidURL", body["error"])
}

func TestHandleResolve_Success(t *testing.T) {
	title := "An Article"
	handler := NewHandler(&stubService{result: &preview.Result{
		URL:   "https://example.com/article",
		Title: &title,
	}})

	req := httptest.NewRequest(http.MethodGet, "/preview?url=https%3A%2F%2Fexample.com%2Farticle", nil)
	rec := httptest.NewRecorder()
	handler.HandleResolve(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result preview.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "https://example.com/article", result.URL)
	assert.Equal(t, "An Article", *result.Title)
}

func TestHandleResolve_FallbackSerializesNullFields(t *testing.T) {
	handler := NewHandler(&stubService{})

	req := httptest.NewRequest(http.MethodGet, "/preview?url=https%3A%2F%2Funreachable.example.com", nil)
	rec := httptest.NewRecorder()
	handler.HandleResolve(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "null", string(body["title"]))
	assert.Equal(t, "null", string(body["image"]))
	assert.JSONEq(t, `"https://unreachable.example.com"`, string(body["url"]))
}
