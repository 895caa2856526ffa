package ports

import (
	"context"

	"github.com/aalvaropc/domscan/internal/domain"
)

// DomainService is the remote domain registry.
type DomainService interface {
	ListDomains(ctx context.Context) ([]domain.DomainEntry, error)
	CreateDomain(ctx context.Context, name string) (domain.DomainEntry, error)
	UpdateDomain(ctx context.Context, id string, name string) error
	DeleteDomain(ctx context.Context, id string) error
}
