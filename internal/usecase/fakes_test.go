package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/aalvaropc/domscan/internal/domain"
)

type fakeScanner struct {
	scan     func(ctx context.Context, url string) ([]domain.ResourceRecord, error)
	sync     func(ctx context.Context, name string) (domain.SyncResult, error)
	discover func(ctx context.Context, root string) ([]string, error)
}

func (f fakeScanner) Scan(ctx context.Context, url string) ([]domain.ResourceRecord, error) {
	if f.scan == nil {
		return nil, errors.New("scan not configured")
	}
	return f.scan(ctx, url)
}

func (f fakeScanner) Sync(ctx context.Context, name string) (domain.SyncResult, error) {
	if f.sync == nil {
		return domain.SyncResult{}, errors.New("sync not configured")
	}
	return f.sync(ctx, name)
}

func (f fakeScanner) Discover(ctx context.Context, root string) ([]string, error) {
	if f.discover == nil {
		return nil, errors.New("discover not configured")
	}
	return f.discover(ctx, root)
}

type memStore struct {
	mu    sync.Mutex
	saved []domain.SyncReport
	err   error
}

func (s *memStore) SaveReport(r domain.SyncReport) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	s.saved = append(s.saved, r)
	return "report-" + r.Domain, nil
}
