package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalvaropc/domscan/internal/domain"
)

func fixedSync(res domain.SyncResult) fakeScanner {
	return fakeScanner{sync: func(context.Context, string) (domain.SyncResult, error) { return res, nil }}
}

func TestSyncDomain_ClassifiesAndKeepsLinksVerbatim(t *testing.T) {
	res := domain.SyncResult{
		Requests: []domain.ResourceRecord{
			{Type: domain.ResourceJS, URL: "a.js", IsValid: true},
			{Type: domain.ResourceImage, URL: "b.png", IsValid: false},
			{Type: domain.ResourceJS, URL: "c.js", IsValid: true},
		},
		InvalidLinks: []string{"https://x.com/b.png", "https://x.com/gone"},
	}
	uc := NewSyncDomain(fixedSync(res))

	report, err := uc.Execute(context.Background(), "  x.com ")
	require.NoError(t, err)
	assert.Equal(t, "x.com", report.Domain)
	assert.Equal(t, res.InvalidLinks, report.InvalidLinks)

	latest, view, ok := uc.Latest()
	require.True(t, ok)
	assert.Equal(t, report, latest)
	assert.Equal(t, []domain.ResourceType{domain.ResourceJS, domain.ResourceImage}, view.Types)
	assert.Len(t, view.Groups[domain.ResourceJS], 2)
	assert.Equal(t, 3, view.Len(), "invalid links are never merged into records")
}

func TestSyncDomain_FailureKeepsPreviousReport(t *testing.T) {
	fail := false
	uc := NewSyncDomain(fakeScanner{sync: func(_ context.Context, name string) (domain.SyncResult, error) {
		if fail {
			return domain.SyncResult{}, errors.New("connection refused")
		}
		return domain.SyncResult{Requests: []domain.ResourceRecord{{Type: domain.ResourceCSS, URL: name}}}, nil
	}})

	_, err := uc.Execute(context.Background(), "a.com")
	require.NoError(t, err)

	fail = true
	_, err = uc.Execute(context.Background(), "b.com")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindFetch))

	latest, _, ok := uc.Latest()
	require.True(t, ok)
	assert.Equal(t, "a.com", latest.Domain)
}

func TestSyncDomain_EmptyResultIsEmptyView(t *testing.T) {
	uc := NewSyncDomain(fixedSync(domain.SyncResult{}))

	report, err := uc.Execute(context.Background(), "a.com")
	require.NoError(t, err)
	assert.NotNil(t, report.Records)
	assert.NotNil(t, report.InvalidLinks)

	_, view, ok := uc.Latest()
	require.True(t, ok)
	assert.Empty(t, view.Types)
	assert.NotNil(t, view.Groups)
}

func TestSyncDomain_LastCompletedWins(t *testing.T) {
	releaseA := make(chan struct{})
	startedA := make(chan struct{})
	uc := NewSyncDomain(fakeScanner{sync: func(_ context.Context, name string) (domain.SyncResult, error) {
		if name == "a.com" {
			close(startedA)
			<-releaseA
		}
		return domain.SyncResult{Requests: []domain.ResourceRecord{{URL: name}}}, nil
	}})

	done := make(chan error, 1)
	go func() {
		_, err := uc.Execute(context.Background(), "a.com")
		done <- err
	}()
	<-startedA

	_, err := uc.Execute(context.Background(), "b.com")
	require.NoError(t, err)
	latest, _, _ := uc.Latest()
	assert.Equal(t, "b.com", latest.Domain)

	close(releaseA)
	require.NoError(t, <-done)

	latest, _, _ = uc.Latest()
	assert.Equal(t, "a.com", latest.Domain, "the sync completing last owns the slot")
}

func TestSyncDomain_RecentIsPerDomain(t *testing.T) {
	uc := NewSyncDomain(fakeScanner{sync: func(_ context.Context, name string) (domain.SyncResult, error) {
		return domain.SyncResult{Requests: []domain.ResourceRecord{{URL: name}}}, nil
	}})

	_, ok := uc.Recent("a.com")
	assert.False(t, ok)

	_, err := uc.Execute(context.Background(), "a.com")
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), "b.com")
	require.NoError(t, err)

	r, ok := uc.Recent("a.com")
	require.True(t, ok)
	assert.Equal(t, "a.com", r.Records[0].URL)
}

func TestSyncDomain_PersistsWhenStoreConfigured(t *testing.T) {
	store := &memStore{}
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	uc := NewSyncDomain(fixedSync(domain.SyncResult{}), WithReportStore(store), WithClock(func() time.Time { return now }))

	report, err := uc.Execute(context.Background(), "a.com")
	require.NoError(t, err)
	assert.Equal(t, "report-a.com", report.SavedAs)
	require.Len(t, store.saved, 1)
	assert.Equal(t, now, store.saved[0].CompletedAt)
}

func TestSyncDomain_StoreFailureStillUpdatesLatest(t *testing.T) {
	store := &memStore{err: errors.New("disk full")}
	uc := NewSyncDomain(fixedSync(domain.SyncResult{}), WithReportStore(store))

	report, err := uc.Execute(context.Background(), "a.com")
	require.Error(t, err)
	assert.Equal(t, "a.com", report.Domain)

	_, _, ok := uc.Latest()
	assert.True(t, ok)
}

func TestSyncDomain_EmptyNameIsValidation(t *testing.T) {
	called := false
	uc := NewSyncDomain(fakeScanner{sync: func(context.Context, string) (domain.SyncResult, error) {
		called = true
		return domain.SyncResult{}, nil
	}})

	_, err := uc.Execute(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindValidation))
	assert.False(t, called)
}
