package domain

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

var ErrInvalidHostname = errors.New("invalid hostname")

// NormalizeHostname reduces user input ("HTTPS://Example.com/about") to the
// lowercased hostname used as a website key. The host must sit under a
// listed public suffix; IP literals and private names (db.internal,
// foo.localhost) are rejected.
func NormalizeHostname(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrInvalidHostname
	}
	if !strings.Contains(s, "://") {
		s = "http://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidHostname, err)
	}
	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	if host == "" || strings.ContainsAny(host, " _") {
		return "", fmt.Errorf("%w: %q", ErrInvalidHostname, raw)
	}
	if net.ParseIP(host) != nil {
		return "", fmt.Errorf("%w: %q is an IP address", ErrInvalidHostname, raw)
	}
	// Unlisted TLDs fall through to the default "*" rule, which reports the
	// bare last label as a non-ICANN suffix.
	if suffix, icann := publicsuffix.PublicSuffix(host); !icann && !strings.Contains(suffix, ".") {
		return "", fmt.Errorf("%w: %q has no public suffix", ErrInvalidHostname, raw)
	}
	if _, err := publicsuffix.EffectiveTLDPlusOne(host); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidHostname, raw)
	}
	return host, nil
}
