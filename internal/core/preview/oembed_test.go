package preview

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractYouTubeID_AllURLShapes(t *testing.T) {
	shapes := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ":       "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ":                      "dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ":         "dQw4w9WgXcQ",
		"https://www.youtube.com/shorts/dQw4w9WgXcQ":        "dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=10s": "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ?si=share":             "dQw4w9WgXcQ",
	}

	for rawURL, want := range shapes {
		assert.Equal(t, want, extractYouTubeID(rawURL), "url: %s", rawURL)
	}
}

func TestExtractYouTubeID_NoMatch(t *testing.T) {
	assert.Empty(t, extractYouTubeID("https://www.youtube.com/feed/subscriptions"))
	assert.Empty(t, extractYouTubeID("https://example.com/watch?v=abc"))
}

func TestOEmbedStrategy_DeclinesNonYouTube(t *testing.T) {
	s := NewOEmbedStrategy(&stubNormalizer{}, time.Second, "test-agent")

	result, err := s.TryResolve(context.Background(), "https://example.com/article")
	assert.Nil(t, result)
	assert.NoError(t, err)
}

func TestOEmbedStrategy_DeclinesYouTubeWithoutVideoID(t *testing.T) {
	s := NewOEmbedStrategy(&stubNormalizer{}, time.Second, "test-agent")

	result, err := s.TryResolve(context.Background(), "https://www.youtube.com/feed/trending")
	assert.Nil(t, result)
	assert.NoError(t, err)
}

func TestOEmbedStrategy_MapsResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", r.URL.Query().Get("url"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"title": "Rick Astley - Never Gonna Give You Up",
			"author_name": "RickAstleyVEVO",
			"provider_name": "YouTube",
			"thumbnail_url": "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg",
			"thumbnail_width": 480,
			"thumbnail_height": 360
		}`))
	}))
	defer server.Close()

	normalizer := &stubNormalizer{}
	s := NewOEmbedStrategy(normalizer, time.Second, "test-agent")
	s.endpoint = server.URL

	result, err := s.TryResolve(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", result.URL)
	assert.Equal(t, "Rick Astley - Never Gonna Give You Up", *result.Title)
	assert.Equal(t, "RickAstleyVEVO - YouTube", *result.Description)
	assert.Equal(t, "YouTube", *result.SiteName)
	assert.Equal(t, "video.other", *result.Type)
	assert.Equal(t, "https://www.youtube.com/favicon.ico", *result.Favicon)
	assert.Equal(t, []string{"https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg"}, normalizer.calls)
}

func TestOEmbedStrategy_ErrorOnUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	s := NewOEmbedStrategy(&stubNormalizer{}, time.Second, "test-agent")
	s.endpoint = server.URL

	result, err := s.TryResolve(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	assert.Nil(t, result)
	assert.Error(t, err)
}
