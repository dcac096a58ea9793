package preview

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOpenGraph_ValidTags(t *testing.T) {
	page := `
<!DOCTYPE html>
<html>
<head>
	<meta property="og:title" content="Test Article Title" />
	<meta property="og:description" content="This is a test description" />
	<meta property="og:image" content="https://example.com/image.jpg" />
	<meta property="og:url" content="https://example.com/canonical" />
	<meta property="og:type" content="article" />
	<meta property="og:site_name" content="Example" />
</head>
<body><p>Some content</p></body>
</html>`

	og, err := parseOpenGraph(strings.NewReader(page), nil)
	require.NoError(t, err)

	assert.Equal(t, "Test Article Title", og.Title)
	assert.Equal(t, "This is a test description", og.Description)
	assert.Equal(t, []string{"https://example.com/image.jpg"}, og.Images)
	assert.Equal(t, "https://example.com/canonical", og.URL)
	assert.Equal(t, "article", og.Type)
	assert.Equal(t, "Example", og.SiteName)
}

func TestParseOpenGraph_FallbackToTitleAndMetaDescription(t *testing.T) {
	page := `
<html>
<head>
	<title>Page Title Fallback</title>
	<meta name="description" content="Meta description fallback" />
</head>
<body></body>
</html>`

	og, err := parseOpenGraph(strings.NewReader(page), nil)
	require.NoError(t, err)

	assert.Equal(t, "Page Title Fallback", og.Title)
	assert.Equal(t, "Meta description fallback", og.Description)
}

func TestParseOpenGraph_PrefersOpenGraphOverFallback(t *testing.T) {
	page := `
<html>
<head>
	<title>Plain Title</title>
	<meta property="og:title" content="OG Title" />
</head>
</html>`

	og, err := parseOpenGraph(strings.NewReader(page), nil)
	require.NoError(t, err)
	assert.Equal(t, "OG Title", og.Title)
}

func TestParseOpenGraph_CollectsAllImageCandidates(t *testing.T) {
	page := `
<html>
<head>
	<meta property="og:image" content="https://example.com/a.jpg" />
	<meta property="og:image" content="https://example.com/b.jpg" />
</head>
</html>`

	og, err := parseOpenGraph(strings.NewReader(page), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/a.jpg", "https://example.com/b.jpg"}, og.Images)
}

func TestParseOpenGraph_ResolvesRelativeFavicon(t *testing.T) {
	page := `<html><head><link rel="shortcut icon" href="/static/favicon.ico"></head></html>`

	base, _ := url.Parse("https://example.com/deep/page")
	og, err := parseOpenGraph(strings.NewReader(page), base)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/static/favicon.ico", og.Favicon)
}

func TestOpenGraphStrategy_ResolvesPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		assert.NotEmpty(t, r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head>
			<meta property="og:title" content="Served Page" />
			<meta property="og:site_name" content="Test Site" />
		</head></html>`))
	}))
	defer server.Close()

	s := NewOpenGraphStrategy(&stubNormalizer{}, time.Second)

	result, err := s.TryResolve(context.Background(), server.URL)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "Served Page", *result.Title)
	assert.Equal(t, "Test Site", *result.SiteName)
}

func TestOpenGraphStrategy_RetriesWithRotatedUserAgent(t *testing.T) {
	var agents []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agents = append(agents, r.Header.Get("User-Agent"))
		if len(agents) < 3 {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Write([]byte(`<html><head><meta property="og:title" content="Third Time Lucky" /></head></html>`))
	}))
	defer server.Close()

	s := NewOpenGraphStrategy(&stubNormalizer{}, time.Second)
	// Collapse the retry delay so the test runs fast.
	s.client.Backoff = func(_, _ time.Duration, _ int, _ *http.Response) time.Duration {
		return time.Millisecond
	}

	result, err := s.TryResolve(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Third Time Lucky", *result.Title)

	require.Len(t, agents, 3)
	assert.NotEqual(t, agents[0], agents[1], "each retry should present a different User-Agent")
	assert.NotEqual(t, agents[1], agents[2], "each retry should present a different User-Agent")
}

func TestOpenGraphStrategy_GivesUpAfterRetries(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	s := NewOpenGraphStrategy(&stubNormalizer{}, time.Second)
	s.client.Backoff = func(_, _ time.Duration, _ int, _ *http.Response) time.Duration {
		return time.Millisecond
	}

	result, err := s.TryResolve(context.Background(), server.URL)
	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Equal(t, 3, hits, "expected exactly three attempts")
}

func TestNormalizeFirst_SkipsNonHTTPSAndFailures(t *testing.T) {
	normalizer := &stubNormalizer{}
	desc := normalizeFirst(context.Background(), normalizer, []string{
		"http://insecure.example.com/a.jpg",
		"https://example.com/b.jpg",
	})

	assert.Nil(t, desc, "stub returns nil, so no candidate wins")
	assert.Equal(t, []string{"https://example.com/b.jpg"}, normalizer.calls,
		"non-https candidates are never fetched")
}
