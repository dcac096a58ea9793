package preview

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const mobileUserAgent = "Mozilla/5.0 (Linux; Android 15; Mobile) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124 Mobile Safari/537.36"

// maximum number of inline <img> candidates collected per page
const maxImageCandidates = 5

// pageMeta is what the generic heuristics can pull from arbitrary HTML
// without relying on structured OpenGraph data.
type pageMeta struct {
	Title       string
	Description string
	SiteName    string
	Type        string
	Favicon     string
	Images      []string
}

// LinkPreviewStrategy is the last-resort structural scraper: plain <title>,
// meta description, link icons and inline images, fetched with a generic
// mobile User-Agent behind the redirect policy guard.
type LinkPreviewStrategy struct {
	client *http.Client
	images ImageNormalizer
}

// NewLinkPreviewStrategy creates the generic fallback strategy.
func NewLinkPreviewStrategy(images ImageNormalizer, timeout time.Duration) *LinkPreviewStrategy {
	return &LinkPreviewStrategy{
		client: &http.Client{
			Timeout:       timeout,
			CheckRedirect: RedirectPolicy(),
		},
		images: images,
	}
}

func (s *LinkPreviewStrategy) Name() string { return "linkpreview" }

// TryResolve scrapes whatever the generic HTML heuristics can find.
func (s *LinkPreviewStrategy) TryResolve(ctx context.Context, rawURL string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", mobileUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP request returned status %d", resp.StatusCode)
	}

	base := resp.Request.URL
	meta, err := parsePage(io.LimitReader(resp.Body, maxPageBytes), base)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	result := &Result{
		URL:         rawURL,
		Title:       strOrNil(meta.Title),
		Description: strOrNil(meta.Description),
		SiteName:    strOrNil(meta.SiteName),
		Type:        str("link"),
		Favicon:     strOrNil(meta.Favicon),
	}
	if meta.Type != "" {
		result.Type = str(meta.Type)
	}
	result.Image = normalizeFirst(ctx, s.images, meta.Images)

	return result, nil
}

// parsePage extracts generic metadata, preferring structured tags where
// present but falling back to <title>, meta description and inline images.
func parsePage(r io.Reader, base *url.URL) (*pageMeta, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	meta := &pageMeta{}
	var pageTitle, ogTitle, twitterTitle string
	var metaDescription, ogDescription string
	var iconHref string
	var ogImages, inlineImages []string

	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				property := strings.ToLower(getAttr(n, "property"))
				name := strings.ToLower(getAttr(n, "name"))
				content := getAttr(n, "content")
				if content == "" {
					break
				}

				switch {
				case property == "og:title" && ogTitle == "":
					ogTitle = content
				case name == "twitter:title" && twitterTitle == "":
					twitterTitle = content
				case property == "og:description" && ogDescription == "":
					ogDescription = content
				case name == "description" && metaDescription == "":
					metaDescription = content
				case property == "og:site_name" && meta.SiteName == "":
					meta.SiteName = content
				case property == "og:type" && meta.Type == "":
					meta.Type = content
				case property == "og:image" || name == "twitter:image":
					ogImages = append(ogImages, resolveRef(base, content))
				}

			case "link":
				rel := strings.ToLower(getAttr(n, "rel"))
				if iconHref == "" && strings.Contains(rel, "icon") {
					iconHref = getAttr(n, "href")
				}

			case "img":
				if src := getAttr(n, "src"); src != "" && len(inlineImages) < maxImageCandidates {
					inlineImages = append(inlineImages, resolveRef(base, src))
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

	switch {
	case ogTitle != "":
		meta.Title = ogTitle
	case twitterTitle != "":
		meta.Title = twitterTitle
	default:
		meta.Title = strings.TrimSpace(pageTitle)
	}

	if ogDescription != "" {
		meta.Description = ogDescription
	} else {
		meta.Description = metaDescription
	}

	if iconHref != "" {
		meta.Favicon = resolveRef(base, iconHref)
	} else if base != nil {
		meta.Favicon = base.Scheme + "://" + base.Host + "/favicon.ico"
	}

	meta.Images = append(ogImages, inlineImages...)

	return meta, nil
}
