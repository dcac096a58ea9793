package preview

import (
	"net/url"
	"strings"
)

// ValidateURL rejects malformed and non-http(s) URLs before any network
// call is made. Blocks file:, ftp: and relative-looking strings outright.
func ValidateURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return ErrInvalidURL
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return ErrInvalidURL
	}

	if parsed.Host == "" {
		return ErrInvalidURL
	}

	return nil
}
