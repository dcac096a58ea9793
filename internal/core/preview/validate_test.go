package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateURL_Valid(t *testing.T) {
	valid := []string{
		"https://example.com",
		"http://example.com/path?query=1",
		"HTTPS://EXAMPLE.COM/UPPER",
		"https://sub.domain.example.com:8443/deep/path#fragment",
	}

	for _, raw := range valid {
		assert.NoError(t, ValidateURL(raw), "expected %s to be valid", raw)
	}
}

func TestValidateURL_Invalid(t *testing.T) {
	invalid := []string{
		"",
		"not a url",
		"example.com",            // no scheme
		"ftp://example.com/file", // wrong scheme
		"file:///etc/passwd",
		"javascript:alert(1)",
		"https://",  // no host
		"//example", // scheme-relative
	}

	for _, raw := range invalid {
		assert.ErrorIs(t, ValidateURL(raw), ErrInvalidURL, "expected %s to be rejected", raw)
	}
}
