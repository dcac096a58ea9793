package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const youtubeOEmbedEndpoint = "https://www.youtube.com/oembed"

// Recognized YouTube URL shapes: watch?v=ID, youtu.be/ID, embed/ID, shorts/ID
var youtubeIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#/]+)`),
	regexp.MustCompile(`youtube\.com/shorts/([^&\n?#/]+)`),
}

// oEmbedResponse is the subset of the provider's oEmbed payload we map.
type oEmbedResponse struct {
	Title           string `json:"title"`
	AuthorName      string `json:"author_name"`
	ProviderName    string `json:"provider_name"`
	ThumbnailURL    string `json:"thumbnail_url"`
	ThumbnailWidth  int    `json:"thumbnail_width"`
	ThumbnailHeight int    `json:"thumbnail_height"`
}

// OEmbedStrategy resolves YouTube URLs through the provider's public oEmbed
// endpoint. Non-YouTube URLs are declined without any network call.
type OEmbedStrategy struct {
	client    *http.Client
	images    ImageNormalizer
	endpoint  string
	userAgent string
}

// NewOEmbedStrategy creates the YouTube oEmbed strategy.
func NewOEmbedStrategy(images ImageNormalizer, timeout time.Duration, userAgent string) *OEmbedStrategy {
	return &OEmbedStrategy{
		client:    &http.Client{Timeout: timeout},
		images:    images,
		endpoint:  youtubeOEmbedEndpoint,
		userAgent: userAgent,
	}
}

func (s *OEmbedStrategy) Name() string { return "oembed" }

// TryResolve fetches oEmbed metadata for a recognized YouTube URL.
func (s *OEmbedStrategy) TryResolve(ctx context.Context, rawURL string) (*Result, error) {
	if !isYouTubeURL(rawURL) {
		return nil, nil
	}
	if extractYouTubeID(rawURL) == "" {
		return nil, nil
	}

	oembedURL := fmt.Sprintf("%s?url=%s&format=json", s.endpoint, url.QueryEscape(rawURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, oembedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create oEmbed request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch oEmbed data: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oEmbed endpoint returned status %d", resp.StatusCode)
	}

	var oembed oEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&oembed); err != nil {
		return nil, fmt.Errorf("failed to parse oEmbed response: %w", err)
	}

	result := &Result{
		URL:      rawURL,
		Title:    strOrNil(oembed.Title),
		SiteName: str("YouTube"),
		Type:     str("video.other"),
		Favicon:  str("https://www.youtube.com/favicon.ico"),
	}
	if oembed.AuthorName != "" {
		result.Description = str(oembed.AuthorName + " - YouTube")
	}
	if oembed.ThumbnailURL != "" {
		result.Image = s.images.Normalize(ctx, oembed.ThumbnailURL)
	}

	return result, nil
}

func isYouTubeURL(rawURL string) bool {
	return strings.Contains(rawURL, "youtube.com") || strings.Contains(rawURL, "youtu.be")
}

// extractYouTubeID pulls the video id out of any recognized URL shape.
// Returns "" when no shape matches.
func extractYouTubeID(rawURL string) string {
	for _, pattern := range youtubeIDPatterns {
		if match := pattern.FindStringSubmatch(rawURL); match != nil {
			return match[1]
		}
	}
	return ""
}
