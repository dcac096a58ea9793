package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// unfurlerResponse is the full-metadata payload of the self-hosted
// unfurling service: a meta block plus a flat list of typed links.
type unfurlerResponse struct {
	Meta struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Site        string `json:"site"`
		Medium      string `json:"medium"`
	} `json:"meta"`
	Links []unfurlerLink `json:"links"`
}

type unfurlerLink struct {
	Rel  []string `json:"rel"`
	Type string   `json:"type"`
	Href string   `json:"href"`
}

// UnfurlerStrategy queries the operator-controlled unfurling service. It is
// the cheapest structured source and the default first strategy.
type UnfurlerStrategy struct {
	baseURL   string
	client    *http.Client
	images    ImageNormalizer
	userAgent string
}

// NewUnfurlerStrategy creates a strategy backed by the internal unfurling
// service at baseURL.
func NewUnfurlerStrategy(baseURL string, images ImageNormalizer, timeout time.Duration, userAgent string) *UnfurlerStrategy {
	return &UnfurlerStrategy{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{Timeout: timeout},
		images:    images,
		userAgent: userAgent,
	}
}

func (s *UnfurlerStrategy) Name() string { return "unfurler" }

// TryResolve calls GET {base}/iframely?url= and maps the structured
// response. Service unavailability is an ordinary failure, never a panic.
func (s *UnfurlerStrategy) TryResolve(ctx context.Context, rawURL string) (*Result, error) {
	endpoint := fmt.Sprintf("%s/iframely?url=%s", s.baseURL, url.QueryEscape(rawURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create unfurler request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach unfurler: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unfurler returned status %d", resp.StatusCode)
	}

	var data unfurlerResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse unfurler response: %w", err)
	}

	result := &Result{
		URL:         rawURL,
		Title:       strOrNil(data.Meta.Title),
		Description: strOrNil(data.Meta.Description),
		SiteName:    strOrNil(data.Meta.Site),
		Type:        str("link"),
	}
	if data.Meta.Medium != "" {
		result.Type = str(data.Meta.Medium)
	}

	if thumb := selectThumbnail(data.Links); thumb != "" {
		result.Image = s.images.Normalize(ctx, thumb)
	}
	if favicon := selectFavicon(data.Links); favicon != "" {
		result.Favicon = str(favicon)
	}

	return result, nil
}

// selectThumbnail picks the first link that declares an image MIME type and
// a thumbnail relation.
func selectThumbnail(links []unfurlerLink) string {
	for _, link := range links {
		if strings.HasPrefix(link.Type, "image/") && hasRel(link.Rel, "thumbnail") {
			return link.Href
		}
	}
	return ""
}

// selectFavicon picks the first icon-relation or ICO-typed link. Favicons
// are used directly, without re-hosting.
func selectFavicon(links []unfurlerLink) string {
	for _, link := range links {
		if hasRel(link.Rel, "icon") || link.Type == "image/x-icon" || link.Type == "image/ico" {
			return link.Href
		}
	}
	return ""
}

func hasRel(rels []string, want string) bool {
	for _, rel := range rels {
		if rel == want {
			return true
		}
	}
	return false
}
