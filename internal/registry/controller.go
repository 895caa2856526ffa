// Package registry keeps a local mirror of the remote domain registry and the
// single in-progress edit slot.
//
// Every mutation is applied only after the remote service confirmed it. The
// mirror lock is never held across a remote call; at most one remote operation
// runs at a time and overlapping calls fail with domain.ErrBusy.
package registry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/aalvaropc/domscan/internal/domain"
	"github.com/aalvaropc/domscan/internal/ports"
)

const noCursor = -1

type Controller struct {
	svc     ports.DomainService
	confirm ports.Confirmer
	log     *slog.Logger

	mu      sync.Mutex
	domains []domain.DomainEntry
	cursor  int
	draft   string
	pending bool
}

type Option func(*Controller)

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

func WithConfirmer(cf ports.Confirmer) Option {
	return func(c *Controller) { c.confirm = cf }
}

// New builds a controller. Without WithConfirmer every delete is declined.
func New(svc ports.DomainService, opts ...Option) *Controller {
	c := &Controller{
		svc:    svc,
		log:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
		cursor: noCursor,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Domains returns a copy of the mirror in server order.
func (c *Controller) Domains() []domain.DomainEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.DomainEntry, len(c.domains))
	copy(out, c.domains)
	return out
}

func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.domains)
}

// EditCursor returns the index being edited, if any.
func (c *Controller) EditCursor() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cursor == noCursor {
		return 0, false
	}
	return c.cursor, true
}

func (c *Controller) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// SetDraft stores the value typed by the user for the entry being edited or created.
func (c *Controller) SetDraft(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = s
}

// Pending reports whether a remote call is in flight.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Load replaces the mirror with the remote list and leaves edit mode.
// On failure the previous mirror is kept.
func (c *Controller) Load(ctx context.Context) error {
	if err := c.acquire("registry.load"); err != nil {
		return err
	}
	entries, err := c.svc.ListDomains(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = false

	if err != nil {
		c.log.Warn("registry.load.failed", "err", err)
		return &domain.OpError{Op: "registry.load", Kind: domain.KindFetch, Err: err}
	}

	c.domains = append([]domain.DomainEntry(nil), entries...)
	c.cursor = noCursor
	c.draft = ""
	c.log.Info("registry.load.ok", "count", len(c.domains))
	return nil
}

// BeginEdit puts the entry at index into edit mode and returns its name as the
// initial draft. Editing another entry moves the cursor.
func (c *Controller) BeginEdit(index int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.domains) {
		return "", &domain.OpError{
			Op:   "registry.begin_edit",
			Kind: domain.KindValidation,
			Err:  fmt.Errorf("%w: %d (len=%d)", domain.ErrIndexOutOfRange, index, len(c.domains)),
		}
	}
	c.cursor = index
	c.draft = c.domains[index].Name
	return c.draft, nil
}

// CancelEdit leaves edit mode without touching the mirror.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cursor = noCursor
	c.draft = ""
}

// Submit renames the entry under the cursor, or creates a new entry when no
// entry is being edited. It returns the entry as stored after the call.
func (c *Controller) Submit(ctx context.Context, draft string) (domain.DomainEntry, error) {
	name := domain.NormalizeDomainName(draft)
	if err := domain.ValidateDomainName(name); err != nil {
		return domain.DomainEntry{}, &domain.OpError{Op: "registry.submit", Kind: domain.KindValidation, Path: name, Err: err}
	}

	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return domain.DomainEntry{}, busyErr("registry.submit")
	}
	if c.cursor != noCursor {
		target := c.domains[c.cursor]
		c.pending = true
		c.mu.Unlock()
		return c.update(ctx, target, name)
	}
	if domain.FindByName(c.domains, name) >= 0 {
		c.mu.Unlock()
		return domain.DomainEntry{}, &domain.OpError{Op: "registry.submit", Kind: domain.KindDuplicate, Path: name, Err: domain.ErrDuplicateDomain}
	}
	c.pending = true
	c.mu.Unlock()
	return c.create(ctx, name)
}

func (c *Controller) update(ctx context.Context, target domain.DomainEntry, name string) (domain.DomainEntry, error) {
	err := c.svc.UpdateDomain(ctx, target.ID, name)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = false

	if err != nil {
		c.log.Warn("registry.update.failed", "id", target.ID, "domain", name, "err", err)
		return domain.DomainEntry{}, &domain.OpError{Op: "registry.update", Kind: domain.KindRemote, Path: target.ID, Err: err}
	}

	updated := domain.DomainEntry{ID: target.ID, Name: name}
	if i := domain.FindByID(c.domains, target.ID); i >= 0 {
		c.domains[i] = updated
	}
	// BeginEdit may have moved the cursor while the call was in flight.
	if c.cursor >= 0 && c.cursor < len(c.domains) && c.domains[c.cursor].ID == target.ID {
		c.cursor = noCursor
		c.draft = ""
	}
	c.log.Info("registry.update.ok", "id", target.ID, "from", target.Name, "to", name)
	return updated, nil
}

func (c *Controller) create(ctx context.Context, name string) (domain.DomainEntry, error) {
	created, err := c.svc.CreateDomain(ctx, name)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = false

	if err != nil {
		c.log.Warn("registry.create.failed", "domain", name, "err", err)
		return domain.DomainEntry{}, &domain.OpError{Op: "registry.create", Kind: domain.KindRemote, Path: name, Err: err}
	}

	c.domains = append(c.domains, created)
	c.draft = ""
	c.log.Info("registry.create.ok", "id", created.ID, "domain", created.Name)
	return created, nil
}

// Remove deletes the entry at index after the confirmer agreed. A declined or
// dismissed confirmation returns (false, nil) and changes nothing.
func (c *Controller) Remove(ctx context.Context, index int) (bool, error) {
	c.mu.Lock()
	if index < 0 || index >= len(c.domains) {
		n := len(c.domains)
		c.mu.Unlock()
		return false, &domain.OpError{
			Op:   "registry.remove",
			Kind: domain.KindValidation,
			Err:  fmt.Errorf("%w: %d (len=%d)", domain.ErrIndexOutOfRange, index, n),
		}
	}
	if c.pending {
		c.mu.Unlock()
		return false, busyErr("registry.remove")
	}
	target := c.domains[index]
	c.mu.Unlock()

	if !c.confirmed(ctx, target) {
		c.log.Debug("registry.remove.declined", "id", target.ID, "domain", target.Name)
		return false, nil
	}

	if err := c.acquire("registry.remove"); err != nil {
		return false, err
	}
	err := c.svc.DeleteDomain(ctx, target.ID)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = false

	if err != nil {
		c.log.Warn("registry.remove.failed", "id", target.ID, "err", err)
		return false, &domain.OpError{Op: "registry.remove", Kind: domain.KindRemote, Path: target.ID, Err: err}
	}

	// The entry is looked up by id: a reload between confirmation and response
	// may have moved or dropped it.
	if i := domain.FindByID(c.domains, target.ID); i >= 0 {
		c.removeAt(i)
	}
	c.log.Info("registry.remove.ok", "id", target.ID, "domain", target.Name)
	return true, nil
}

// removeAt drops entry i and keeps the cursor on the same logical entry.
// Callers hold c.mu.
func (c *Controller) removeAt(i int) {
	c.domains = append(c.domains[:i], c.domains[i+1:]...)
	switch {
	case c.cursor == i:
		c.cursor = noCursor
		c.draft = ""
	case c.cursor > i:
		c.cursor--
	}
}

func (c *Controller) confirmed(ctx context.Context, target domain.DomainEntry) bool {
	if c.confirm == nil {
		return false
	}
	ok, err := c.confirm.Confirm(ctx, fmt.Sprintf("Delete domain %q?", target.Name))
	if err != nil {
		c.log.Debug("registry.remove.confirm_error", "err", err)
		return false
	}
	return ok
}

func (c *Controller) acquire(op string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending {
		return busyErr(op)
	}
	c.pending = true
	return nil
}

func busyErr(op string) error {
	return &domain.OpError{Op: op, Kind: domain.KindBusy, Err: domain.ErrBusy}
}
