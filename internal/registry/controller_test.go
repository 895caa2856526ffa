package registry

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalvaropc/domscan/internal/domain"
	"github.com/aalvaropc/domscan/internal/ports"
)

// fakeService is an in-memory DomainService with injectable failures.
type fakeService struct {
	entries []domain.DomainEntry
	nextID  int

	listErr   error
	createErr error
	updateErr error
	deleteErr error

	calls []string
}

func newFakeService(names ...string) *fakeService {
	f := &fakeService{}
	for _, n := range names {
		f.nextID++
		f.entries = append(f.entries, domain.DomainEntry{ID: fmt.Sprint(f.nextID), Name: n})
	}
	return f
}

func (f *fakeService) ListDomains(_ context.Context) ([]domain.DomainEntry, error) {
	f.calls = append(f.calls, "list")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.DomainEntry(nil), f.entries...), nil
}

func (f *fakeService) CreateDomain(_ context.Context, name string) (domain.DomainEntry, error) {
	f.calls = append(f.calls, "create:"+name)
	if f.createErr != nil {
		return domain.DomainEntry{}, f.createErr
	}
	f.nextID++
	e := domain.DomainEntry{ID: fmt.Sprint(f.nextID), Name: name}
	f.entries = append(f.entries, e)
	return e, nil
}

func (f *fakeService) UpdateDomain(_ context.Context, id string, name string) error {
	f.calls = append(f.calls, "update:"+id+":"+name)
	if f.updateErr != nil {
		return f.updateErr
	}
	if i := domain.FindByID(f.entries, id); i >= 0 {
		f.entries[i].Name = name
	}
	return nil
}

func (f *fakeService) DeleteDomain(_ context.Context, id string) error {
	f.calls = append(f.calls, "delete:"+id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if i := domain.FindByID(f.entries, id); i >= 0 {
		f.entries = append(f.entries[:i], f.entries[i+1:]...)
	}
	return nil
}

func yes() ports.Confirmer { return ports.AlwaysConfirm() }

func no() ports.Confirmer {
	return ports.ConfirmFunc(func(context.Context, string) (bool, error) { return false, nil })
}

func loaded(t *testing.T, svc *fakeService, opts ...Option) *Controller {
	t.Helper()
	c := New(svc, opts...)
	require.NoError(t, c.Load(context.Background()))
	svc.calls = nil
	return c
}

func names(entries []domain.DomainEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func TestLoad_ReplacesMirrorAndClearsCursor(t *testing.T) {
	svc := newFakeService("a.com", "b.com")
	c := loaded(t, svc)

	_, err := c.BeginEdit(1)
	require.NoError(t, err)

	svc.entries = append(svc.entries, domain.DomainEntry{ID: "9", Name: "z.com"})
	require.NoError(t, c.Load(context.Background()))

	assert.Equal(t, []string{"a.com", "b.com", "z.com"}, names(c.Domains()))
	_, editing := c.EditCursor()
	assert.False(t, editing)
	assert.Empty(t, c.Draft())
}

func TestLoad_FailureKeepsPreviousMirror(t *testing.T) {
	svc := newFakeService("a.com")
	c := loaded(t, svc)

	svc.listErr = errors.New("connection refused")
	err := c.Load(context.Background())

	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindFetch))
	assert.Equal(t, []string{"a.com"}, names(c.Domains()))
	assert.False(t, c.Pending())
}

func TestBeginEdit_RangeChecked(t *testing.T) {
	c := loaded(t, newFakeService("a.com"))

	for _, idx := range []int{-1, 1, 5} {
		_, err := c.BeginEdit(idx)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrIndexOutOfRange))
	}

	draft, err := c.BeginEdit(0)
	require.NoError(t, err)
	assert.Equal(t, "a.com", draft)
	assert.Equal(t, "a.com", c.Draft())
}

func TestBeginEdit_ReassignsCursor(t *testing.T) {
	c := loaded(t, newFakeService("a.com", "b.com"))

	_, _ = c.BeginEdit(0)
	_, _ = c.BeginEdit(1)

	idx, ok := c.EditCursor()
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "b.com", c.Draft())
}

func TestSubmit_ValidationNeverCallsRemote(t *testing.T) {
	svc := newFakeService("a.com")
	c := loaded(t, svc)

	for _, draft := range []string{"", "   ", "not a domain", "localhost"} {
		_, err := c.Submit(context.Background(), draft)
		require.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindValidation), "draft %q", draft)
	}
	assert.Empty(t, svc.calls)
}

func TestSubmit_CreateDuplicate(t *testing.T) {
	svc := newFakeService("a.com", "b.com")
	c := loaded(t, svc)

	_, err := c.Submit(context.Background(), "  a.com ")

	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindDuplicate))
	assert.True(t, errors.Is(err, domain.ErrDuplicateDomain))
	assert.Equal(t, []string{"a.com", "b.com"}, names(c.Domains()))
	assert.Empty(t, svc.calls, "duplicate check must happen before the remote call")
}

func TestSubmit_CreateDuplicateIsCaseSensitive(t *testing.T) {
	svc := newFakeService("a.com")
	c := loaded(t, svc)

	created, err := c.Submit(context.Background(), "A.com")

	require.NoError(t, err)
	assert.Equal(t, "A.com", created.Name)
	assert.Equal(t, []string{"a.com", "A.com"}, names(c.Domains()))
}

func TestSubmit_CreateAppendsServerEntry(t *testing.T) {
	svc := newFakeService("a.com")
	c := loaded(t, svc)

	created, err := c.Submit(context.Background(), " new.io ")

	require.NoError(t, err)
	assert.Equal(t, domain.DomainEntry{ID: "2", Name: "new.io"}, created)
	assert.Equal(t, []domain.DomainEntry{{ID: "1", Name: "a.com"}, {ID: "2", Name: "new.io"}}, c.Domains())
	assert.Equal(t, []string{"create:new.io"}, svc.calls)
}

func TestSubmit_CreateRemoteFailure(t *testing.T) {
	svc := newFakeService("a.com")
	c := loaded(t, svc)
	svc.createErr = errors.New("500")

	_, err := c.Submit(context.Background(), "new.io")

	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindRemote))
	assert.Equal(t, []string{"a.com"}, names(c.Domains()))
	assert.False(t, c.Pending())
}

func TestSubmit_Update(t *testing.T) {
	svc := &fakeService{entries: []domain.DomainEntry{{ID: "1", Name: "a.com"}, {ID: "2", Name: "b.com"}}}
	c := loaded(t, svc)

	_, err := c.BeginEdit(1)
	require.NoError(t, err)

	updated, err := c.Submit(context.Background(), "c.com")

	require.NoError(t, err)
	assert.Equal(t, domain.DomainEntry{ID: "2", Name: "c.com"}, updated)
	assert.Equal(t, []domain.DomainEntry{{ID: "1", Name: "a.com"}, {ID: "2", Name: "c.com"}}, c.Domains())
	_, editing := c.EditCursor()
	assert.False(t, editing)
	assert.Equal(t, []string{"update:2:c.com"}, svc.calls)
}

func TestSubmit_UpdateSkipsDuplicateCheck(t *testing.T) {
	svc := newFakeService("a.com", "b.com")
	c := loaded(t, svc)
	_, _ = c.BeginEdit(1)

	_, err := c.Submit(context.Background(), "b.com")

	require.NoError(t, err)
	assert.Equal(t, []string{"update:2:b.com"}, svc.calls)
}

func TestSubmit_UpdateRemoteFailureLeavesStateUntouched(t *testing.T) {
	svc := newFakeService("a.com", "b.com")
	c := loaded(t, svc)
	_, _ = c.BeginEdit(1)
	c.SetDraft("c.com")
	svc.updateErr = errors.New("rejected")

	before := c.Domains()
	_, err := c.Submit(context.Background(), "c.com")

	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindRemote))
	assert.Equal(t, before, c.Domains())
	idx, editing := c.EditCursor()
	assert.True(t, editing)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "c.com", c.Draft())
}

func TestRemove_ShiftsCursor(t *testing.T) {
	svc := newFakeService("x.com", "y.com", "z.com")
	c := loaded(t, svc, WithConfirmer(yes()))
	_, _ = c.BeginEdit(2)

	removed, err := c.Remove(context.Background(), 0)

	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, []string{"y.com", "z.com"}, names(c.Domains()))
	idx, editing := c.EditCursor()
	require.True(t, editing)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "z.com", c.Domains()[idx].Name)
	assert.Equal(t, "z.com", c.Draft())
}

func TestRemove_EditedEntryClearsCursor(t *testing.T) {
	svc := newFakeService("x.com", "y.com", "z.com")
	c := loaded(t, svc, WithConfirmer(yes()))
	_, _ = c.BeginEdit(1)
	c.SetDraft("partial")

	removed, err := c.Remove(context.Background(), 1)

	require.NoError(t, err)
	assert.True(t, removed)
	_, editing := c.EditCursor()
	assert.False(t, editing)
	assert.Empty(t, c.Draft())
	assert.Equal(t, []string{"x.com", "z.com"}, names(c.Domains()))
}

func TestRemove_LowerCursorUnchanged(t *testing.T) {
	svc := newFakeService("x.com", "y.com", "z.com")
	c := loaded(t, svc, WithConfirmer(yes()))
	_, _ = c.BeginEdit(0)

	_, err := c.Remove(context.Background(), 2)

	require.NoError(t, err)
	idx, editing := c.EditCursor()
	require.True(t, editing)
	assert.Equal(t, 0, idx)
}

func TestRemove_DeclinedTouchesNothing(t *testing.T) {
	svc := newFakeService("x.com", "y.com")
	c := loaded(t, svc, WithConfirmer(no()))
	_, _ = c.BeginEdit(1)

	removed, err := c.Remove(context.Background(), 0)

	require.NoError(t, err)
	assert.False(t, removed)
	assert.Empty(t, svc.calls)
	assert.Equal(t, []string{"x.com", "y.com"}, names(c.Domains()))
	idx, _ := c.EditCursor()
	assert.Equal(t, 1, idx)
}

func TestRemove_ConfirmerErrorIsDismissal(t *testing.T) {
	svc := newFakeService("x.com")
	cf := ports.ConfirmFunc(func(context.Context, string) (bool, error) {
		return true, errors.New("dialog closed")
	})
	c := loaded(t, svc, WithConfirmer(cf))

	removed, err := c.Remove(context.Background(), 0)

	require.NoError(t, err)
	assert.False(t, removed)
	assert.Empty(t, svc.calls)
}

func TestRemove_NoConfirmerNeverDeletes(t *testing.T) {
	svc := newFakeService("x.com")
	c := loaded(t, svc)

	removed, err := c.Remove(context.Background(), 0)

	require.NoError(t, err)
	assert.False(t, removed)
	assert.Empty(t, svc.calls)
}

func TestRemove_PromptNamesEntry(t *testing.T) {
	svc := newFakeService("x.com")
	var prompt string
	cf := ports.ConfirmFunc(func(_ context.Context, p string) (bool, error) {
		prompt = p
		return false, nil
	})
	c := loaded(t, svc, WithConfirmer(cf))

	_, _ = c.Remove(context.Background(), 0)

	assert.Contains(t, prompt, "x.com")
}

func TestRemove_RemoteFailureKeepsCursor(t *testing.T) {
	svc := newFakeService("x.com", "y.com", "z.com")
	c := loaded(t, svc, WithConfirmer(yes()))
	_, _ = c.BeginEdit(2)
	svc.deleteErr = errors.New("forbidden")

	removed, err := c.Remove(context.Background(), 0)

	require.Error(t, err)
	assert.False(t, removed)
	assert.True(t, domain.IsKind(err, domain.KindRemote))
	assert.Equal(t, []string{"x.com", "y.com", "z.com"}, names(c.Domains()))
	idx, _ := c.EditCursor()
	assert.Equal(t, 2, idx)
}

func TestRemove_OutOfRange(t *testing.T) {
	c := loaded(t, newFakeService("x.com"), WithConfirmer(yes()))

	_, err := c.Remove(context.Background(), 3)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrIndexOutOfRange))
}

// blockingService parks UpdateDomain until released so overlap can be observed.
type blockingService struct {
	*fakeService
	entered chan struct{}
	release chan struct{}
}

func (b *blockingService) UpdateDomain(ctx context.Context, id string, name string) error {
	close(b.entered)
	<-b.release
	return b.fakeService.UpdateDomain(ctx, id, name)
}

func TestPending_OverlappingCallsAreRejected(t *testing.T) {
	svc := &blockingService{
		fakeService: newFakeService("a.com", "b.com"),
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	c := New(svc, WithConfirmer(yes()))
	require.NoError(t, c.Load(context.Background()))
	_, _ = c.BeginEdit(0)

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background(), "c.com")
		done <- err
	}()
	<-svc.entered

	assert.True(t, c.Pending())

	_, err := c.Remove(context.Background(), 1)
	assert.True(t, domain.IsKind(err, domain.KindBusy))
	assert.True(t, domain.IsKind(c.Load(context.Background()), domain.KindBusy))

	close(svc.release)
	require.NoError(t, <-done)
	assert.False(t, c.Pending())
	assert.Equal(t, []string{"c.com", "b.com"}, names(c.Domains()))
}

func TestSubmit_UpdateKeepsCursorMovedDuringCall(t *testing.T) {
	svc := &blockingService{
		fakeService: newFakeService("a.com", "b.com"),
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	c := New(svc)
	require.NoError(t, c.Load(context.Background()))
	_, _ = c.BeginEdit(0)

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background(), "c.com")
		done <- err
	}()
	<-svc.entered

	draft, err := c.BeginEdit(1)
	require.NoError(t, err)
	assert.Equal(t, "b.com", draft)

	close(svc.release)
	require.NoError(t, <-done)

	idx, editing := c.EditCursor()
	assert.True(t, editing)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "b.com", c.Draft())
	assert.Equal(t, []string{"c.com", "b.com"}, names(c.Domains()))
}
