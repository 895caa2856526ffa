package ports

import (
	"context"

	"github.com/aalvaropc/domscan/internal/domain"
)

// ResourceScanner fronts the remote crawler endpoints.
type ResourceScanner interface {
	// Scan returns the resources found at a single URL.
	Scan(ctx context.Context, url string) ([]domain.ResourceRecord, error)
	// Sync crawls a registered domain and returns its resources plus unresolved links.
	Sync(ctx context.Context, domainName string) (domain.SyncResult, error)
	// Discover lists candidate domains found in the sitemap under rootURL.
	Discover(ctx context.Context, rootURL string) ([]string, error)
}
