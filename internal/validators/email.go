package validators

import (
	"net"
	"regexp"
	"strings"
)

const MinPasswordLength = 8

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsEmailDomainValid reports whether the domain of email resolves to a
// mail exchanger or at least to an address.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}

// NormalizeSlug lower-cases and trims s and reports whether the result is
// a valid business slug (lowercase words joined by single dashes).
func NormalizeSlug(s string) (string, bool) {
	slug := strings.ToLower(strings.TrimSpace(s))
	return slug, slugPattern.MatchString(slug)
}
