package usecase

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/aalvaropc/domscan/internal/classify"
	"github.com/aalvaropc/domscan/internal/domain"
	"github.com/aalvaropc/domscan/internal/ports"
)

const (
	recentTTL     = 30 * time.Minute
	recentCleanup = 10 * time.Minute
)

// SyncDomain crawls one registered domain through the remote scanner and keeps
// the latest completed report. When two syncs overlap, the one that completes
// last is kept.
type SyncDomain struct {
	scanner ports.ResourceScanner
	store   ports.ReportStore
	log     *slog.Logger
	now     func() time.Time

	mu     sync.Mutex
	latest *domain.SyncReport

	recent *cache.Cache
}

type SyncOption func(*SyncDomain)

// WithReportStore persists every completed report.
func WithReportStore(s ports.ReportStore) SyncOption {
	return func(uc *SyncDomain) { uc.store = s }
}

func WithSyncLogger(l *slog.Logger) SyncOption {
	return func(uc *SyncDomain) {
		if l != nil {
			uc.log = l
		}
	}
}

// WithClock is useful for tests.
func WithClock(now func() time.Time) SyncOption {
	return func(uc *SyncDomain) {
		if now != nil {
			uc.now = now
		}
	}
}

func NewSyncDomain(scanner ports.ResourceScanner, opts ...SyncOption) *SyncDomain {
	uc := &SyncDomain{
		scanner: scanner,
		log:     slog.New(slog.NewJSONHandler(io.Discard, nil)),
		now:     time.Now,
		recent:  cache.New(recentTTL, recentCleanup),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute syncs domainName. On failure the previous latest report is kept and
// the error is of kind fetch. A report store failure does not undo the sync:
// the report is returned together with the store error.
func (uc *SyncDomain) Execute(ctx context.Context, domainName string) (domain.SyncReport, error) {
	name := domain.NormalizeDomainName(domainName)
	if name == "" {
		return domain.SyncReport{}, &domain.OpError{
			Op:   "usecase.sync",
			Kind: domain.KindValidation,
			Err:  domain.ErrEmptyDomain,
		}
	}

	start := uc.now()
	uc.log.Info("sync.start", "domain", name)

	res, err := uc.scanner.Sync(ctx, name)
	if err != nil {
		uc.log.Warn("sync.failed", "domain", name, "err", err)
		return domain.SyncReport{}, &domain.OpError{
			Op:   "usecase.sync",
			Kind: domain.KindFetch,
			Path: name,
			Err:  err,
		}
	}

	report := domain.SyncReport{
		Domain:       name,
		Records:      res.Requests,
		InvalidLinks: res.InvalidLinks,
		CompletedAt:  uc.now().UTC(),
	}
	if report.Records == nil {
		report.Records = []domain.ResourceRecord{}
	}
	if report.InvalidLinks == nil {
		report.InvalidLinks = []string{}
	}

	uc.mu.Lock()
	uc.latest = &report
	uc.mu.Unlock()
	uc.recent.Set(name, report, cache.DefaultExpiration)

	uc.log.Info("sync.ok",
		"domain", name,
		"records", len(report.Records),
		"invalid_links", len(report.InvalidLinks),
		"duration_ms", report.CompletedAt.Sub(start.UTC()).Milliseconds(),
	)

	if uc.store != nil {
		id, err := uc.store.SaveReport(report)
		if err != nil {
			uc.log.Error("sync.save_failed", "domain", name, "err", err)
			return report, err
		}
		report.SavedAs = id
		uc.log.Info("sync.saved", "domain", name, "id", id)
	}
	return report, nil
}

// Latest returns the most recently completed report and its grouped view.
func (uc *SyncDomain) Latest() (domain.SyncReport, classify.View, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.latest == nil {
		return domain.SyncReport{}, classify.Classify(nil), false
	}
	r := *uc.latest
	return r, classify.Classify(r.Records), true
}

// Recent returns the last report for domainName if it is younger than the
// cache TTL.
func (uc *SyncDomain) Recent(domainName string) (domain.SyncReport, bool) {
	v, ok := uc.recent.Get(domain.NormalizeDomainName(domainName))
	if !ok {
		return domain.SyncReport{}, false
	}
	r, ok := v.(domain.SyncReport)
	return r, ok
}
