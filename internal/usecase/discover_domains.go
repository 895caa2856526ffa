package usecase

import (
	"context"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/aalvaropc/domscan/internal/domain"
	"github.com/aalvaropc/domscan/internal/ports"
)

// DiscoverDomains lists the candidate domains of a sitemap and marks the ones
// already in the registry.
type DiscoverDomains struct {
	scanner ports.ResourceScanner
}

func NewDiscoverDomains(scanner ports.ResourceScanner) *DiscoverDomains {
	return &DiscoverDomains{scanner: scanner}
}

func (uc *DiscoverDomains) Execute(ctx context.Context, rootURL string, registered []domain.DomainEntry) ([]domain.DiscoveredDomain, error) {
	rootURL = strings.TrimSpace(rootURL)
	if rootURL == "" {
		return nil, &domain.OpError{
			Op:   "usecase.discover",
			Kind: domain.KindValidation,
			Err:  domain.ErrEmptyDomain,
		}
	}

	found, err := uc.scanner.Discover(ctx, rootURL)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "usecase.discover",
			Kind: domain.KindFetch,
			Path: rootURL,
			Err:  err,
		}
	}

	known := make(map[string]bool, len(registered))
	for _, e := range registered {
		known[hostOf(e.Name)] = true
	}

	seen := map[string]bool{}
	out := make([]domain.DiscoveredDomain, 0, len(found))
	for _, raw := range found {
		name := strings.TrimSpace(raw)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		host := hostOf(name)
		out = append(out, domain.DiscoveredDomain{
			Name:        name,
			Registrable: registrable(host),
			Registered:  known[host],
		})
	}
	return out, nil
}

// hostOf extracts a lower-cased host from a bare domain, a domain with a path,
// or a full URL.
func hostOf(s string) string {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "://") {
		if u, err := url.Parse(s); err == nil && u.Host != "" {
			s = u.Host
		}
	}
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	if h, _, err := net.SplitHostPort(s); err == nil {
		s = h
	}
	return strings.ToLower(strings.TrimSuffix(s, "."))
}

// registrable returns the eTLD+1 of host, or host itself when the public
// suffix list cannot tell.
func registrable(host string) string {
	if host == "" {
		return ""
	}
	r, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return r
}
