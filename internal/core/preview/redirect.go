package preview

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
)

const maxRedirects = 10

// Known URL-shortener/redirector hosts that legitimately redirect
// cross-domain. Anything else redirecting off-host is denied.
var redirectorHosts = map[string]bool{
	"t.co":        true,
	"bit.ly":      true,
	"tinyurl.com": true,
	"goo.gl":      true,
	"ow.ly":       true,
	"search.app":  true,
	"app.search":  true,
}

// IsRedirectAllowed decides whether a single redirect hop is safe to follow.
// Rules, first match wins: exact host match, www-equivalence, http->https
// upgrade on the same host, or an allow-listed redirector origin. Everything
// else is denied so a hostile input URL cannot steer the fetcher into
// attacker-controlled infrastructure.
func IsRedirectAllowed(originHost, originScheme, candidateURL string) bool {
	candidate, err := url.Parse(candidateURL)
	if err != nil {
		return false
	}

	originHost = strings.ToLower(originHost)
	candidateHost := strings.ToLower(candidate.Hostname())

	if candidateHost == originHost {
		return true
	}

	if candidateHost == "www."+originHost || "www."+candidateHost == originHost {
		return true
	}

	if strings.EqualFold(originScheme, "http") &&
		strings.EqualFold(candidate.Scheme, "https") &&
		candidateHost == originHost {
		return true
	}

	if redirectorHosts[originHost] {
		return true
	}

	return false
}

// RedirectPolicy returns a CheckRedirect hook that applies IsRedirectAllowed
// on every hop of a redirect chain, with the previous hop as origin.
func RedirectPolicy() func(req *http.Request, via []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return fmt.Errorf("stopped after %d redirects", maxRedirects)
		}

		prev := via[len(via)-1].URL
		if !IsRedirectAllowed(prev.Hostname(), prev.Scheme, req.URL.String()) {
			log.Printf("[PREVIEW] Blocking redirect from %s to %s", prev, req.URL)
			return fmt.Errorf("redirect from %s to %s not allowed", prev.Hostname(), req.URL.Hostname())
		}

		return nil
	}
}
