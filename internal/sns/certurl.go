package sns

import (
	"net/url"
	"regexp"
	"strings"
)

// Hosts allowed to serve signing certificates. Anything else is treated as
// attacker-controlled: with an arbitrary cert URL a caller could supply
// their own keypair and sign forged events.
var certHostPattern = regexp.MustCompile(`^sns\.[a-zA-Z0-9\-]{3,}\.amazonaws\.com(\.cn)?$`)

// ValidCertURL reports whether a SigningCertURL may be fetched. It requires
// https, an sns.*.amazonaws.com host, and a .pem path. Malformed URLs are
// rejected, never an error.
func ValidCertURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "https" {
		return false
	}
	if !certHostPattern.MatchString(u.Host) {
		return false
	}
	return strings.HasSuffix(u.Path, ".pem")
}
