package preview

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/net/html"

	"Stash/internal/core/images"
)

const maxPageBytes = 10 * 1024 * 1024

// Realistic browser User-Agents, rotated across retry attempts so a blocked
// fingerprint is not reused. Scraping arbitrary third-party sites reliably
// means looking like ordinary browser traffic.
var browserUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64; rv:124.0) Gecko/20100101 Firefox/124.0",
}

// openGraphData holds the raw og:* metadata scraped from one page.
type openGraphData struct {
	Title       string
	Description string
	SiteName    string
	Type        string
	URL         string
	Images      []string
	Favicon     string
}

// OpenGraphStrategy scrapes the target page for og:* meta tags. It retries
// up to three times with linearly increasing delay and a fresh User-Agent
// per attempt, and sends a full browser header set to survive basic bot
// detection.
type OpenGraphStrategy struct {
	client *retryablehttp.Client
	images ImageNormalizer
}

// NewOpenGraphStrategy creates the OpenGraph scraping strategy. timeout
// bounds each individual attempt.
func NewOpenGraphStrategy(images ImageNormalizer, timeout time.Duration) *OpenGraphStrategy {
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = 2 // 3 attempts total
	client.HTTPClient = &http.Client{
		Timeout:       timeout,
		CheckRedirect: RedirectPolicy(),
	}
	// Delay between attempts grows linearly: 1s, then 2s.
	client.Backoff = func(min, max time.Duration, attemptNum int, resp *http.Response) time.Duration {
		return time.Duration(attemptNum+1) * time.Second
	}
	// Retry on any transport error or non-200 status; bot walls usually
	// answer 403/429, which the default policy would not retry.
	client.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if err != nil {
			return true, nil
		}
		return resp.StatusCode != http.StatusOK, nil
	}
	client.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		req.Header.Set("User-Agent", browserUserAgents[attempt%len(browserUserAgents)])
	}

	return &OpenGraphStrategy{client: client, images: images}
}

func (s *OpenGraphStrategy) Name() string { return "opengraph" }

// TryResolve fetches the page and maps its OpenGraph metadata. Image
// candidates are tried in order; the first https one the normalizer accepts
// wins.
func (s *OpenGraphStrategy) TryResolve(ctx context.Context, rawURL string) (*Result, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	setBrowserHeaders(req.Header)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP request returned status %d", resp.StatusCode)
	}

	base := resp.Request.URL
	og, err := parseOpenGraph(io.LimitReader(resp.Body, maxPageBytes), base)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	result := &Result{
		URL:         rawURL,
		Title:       strOrNil(og.Title),
		Description: strOrNil(og.Description),
		SiteName:    strOrNil(og.SiteName),
		Type:        strOrNil(og.Type),
		Favicon:     strOrNil(og.Favicon),
	}
	if og.URL != "" {
		result.URL = og.URL
	}
	result.Image = normalizeFirst(ctx, s.images, og.Images)

	return result, nil
}

// normalizeFirst walks image candidates in order, skipping non-https URLs,
// and stops at the first one the normalizer successfully re-hosts.
func normalizeFirst(ctx context.Context, normalizer ImageNormalizer, candidates []string) *images.Descriptor {
	for _, candidate := range candidates {
		if !strings.HasPrefix(candidate, "https://") {
			continue
		}
		if desc := normalizer.Normalize(ctx, candidate); desc != nil {
			return desc
		}
	}
	return nil
}

// setBrowserHeaders installs the realistic header set sent with every
// scraping attempt. Accept-Encoding is left to the transport so gzip bodies
// are transparently decompressed.
func setBrowserHeaders(h http.Header) {
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	h.Set("Accept-Language", "en-US,en;q=0.9")
	h.Set("DNT", "1")
	h.Set("Connection", "keep-alive")
	h.Set("Upgrade-Insecure-Requests", "1")
	h.Set("Sec-Fetch-Dest", "document")
	h.Set("Sec-Fetch-Mode", "navigate")
	h.Set("Sec-Fetch-Site", "none")
	h.Set("Sec-Fetch-User", "?1")
	h.Set("Cache-Control", "no-cache")
	h.Set("Pragma", "no-cache")
}

// parseOpenGraph extracts og:* tags plus title/description/favicon
// fallbacks from the page. Relative favicon hrefs are resolved against base.
func parseOpenGraph(r io.Reader, base *url.URL) (*openGraphData, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	og := &openGraphData{}
	var pageTitle, metaDescription, iconHref string

	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				property := getAttr(n, "property")
				name := getAttr(n, "name")
				content := getAttr(n, "content")

				switch property {
				case "og:title":
					if og.Title == "" {
						og.Title = content
					}
				case "og:description":
					if og.Description == "" {
						og.Description = content
					}
				case "og:image":
					if content != "" {
						og.Images = append(og.Images, content)
					}
				case "og:url":
					if og.URL == "" {
						og.URL = content
					}
				case "og:type":
					if og.Type == "" {
						og.Type = content
					}
				case "og:site_name":
					if og.SiteName == "" {
						og.SiteName = content
					}
				}

				if name == "description" && metaDescription == "" {
					metaDescription = content
				}

			case "link":
				rel := strings.ToLower(getAttr(n, "rel"))
				if iconHref == "" && strings.Contains(rel, "icon") {
					iconHref = getAttr(n, "href")
				}

			case "title":
				if pageTitle == "" && n.FirstChild != nil {
					pageTitle = n.FirstChild.Data
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)

	if og.Title == "" {
		og.Title = strings.TrimSpace(pageTitle)
	}
	if og.Description == "" {
		og.Description = metaDescription
	}
	if iconHref != "" {
		og.Favicon = resolveRef(base, iconHref)
	}

	return og, nil
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// resolveRef resolves a possibly-relative href against the page URL.
func resolveRef(base *url.URL, href string) string {
	if base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
