// Package pages implements the per-resource synchronization pattern every CRUD
// page follows: an authoritative local list, create/update through a shared
// validated payload, optimistic removal on delete, and wholesale re-fetch after
// server-confirmed writes.
package pages

import (
	"context"
	"sync"

	farmacia "github.com/goliatone/go-farmacia"
)

// Resource is any server-owned record with a server-assigned identity.
type Resource interface {
	ResourceID() int64
}

// Payload is the EditForm contract: the form either produces a payload whose
// Validate passes, or it declines to submit.
type Payload interface {
	Validate() error
}

// Service is the transport surface a synchronizer reconciles against.
type Service[T Resource, P Payload] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, payload P) error
	Update(ctx context.Context, id int64, payload P) error
	Delete(ctx context.Context, id int64) error
}

// SnapshotStore persists the last good list so a page can show data even when
// its first refresh fails. Optional.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, kind string, items any) error
	LoadSnapshot(ctx context.Context, kind string, into any) (bool, error)
}

// ConfirmFunc asks the user to confirm a destructive action. Deletion proceeds
// only when it returns true. A nil func means confirmation happens elsewhere.
type ConfirmFunc func(id int64) bool

type settings struct {
	logger    farmacia.Logger
	confirm   ConfirmFunc
	snapshots SnapshotStore
}

// Option customizes a synchronizer.
type Option func(*settings)

// WithLogger overrides the default logger.
func WithLogger(logger farmacia.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithConfirm injects the user-confirmation collaborator for deletes.
func WithConfirm(confirm ConfirmFunc) Option {
	return func(s *settings) {
		s.confirm = confirm
	}
}

// WithSnapshots enables stale-but-visible persistence across restarts.
func WithSnapshots(store SnapshotStore) Option {
	return func(s *settings) {
		s.snapshots = store
	}
}

// Synchronizer holds one page's view of one resource kind. Each page owns its
// instance exclusively; nothing is shared across pages except the token, which
// flows through the Service.
//
// Reconciliation is deliberately asymmetric: create/update re-fetch the whole
// list because the server computes fields the client cannot predict (ids,
// totals), while delete patches the list in place because deletion leaves no
// server-computed residue.
type Synchronizer[T Resource, P Payload] struct {
	mu        sync.Mutex
	svc       Service[T, P]
	session   farmacia.Session
	resource  string
	logger    farmacia.Logger
	confirm   ConfirmFunc
	snapshots SnapshotStore

	items       []T
	loading     bool
	err         string
	editing     *T
	formVisible bool
}

// NewSynchronizer builds a synchronizer for one resource kind. When a snapshot
// store is configured the last persisted list is restored immediately, before
// any network round-trip.
func NewSynchronizer[T Resource, P Payload](resource string, svc Service[T, P], session farmacia.Session, opts ...Option) *Synchronizer[T, P] {
	cfg := settings{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	s := &Synchronizer[T, P]{
		svc:       svc,
		session:   session,
		resource:  resource,
		logger:    cfg.logger,
		confirm:   cfg.confirm,
		snapshots: cfg.snapshots,
	}

	if s.snapshots != nil {
		var cached []T
		if ok, err := s.snapshots.LoadSnapshot(context.Background(), resource, &cached); err == nil && ok {
			s.items = cached
		}
	}

	return s
}

// Refresh fetches the full list and replaces the local one wholesale. On
// failure the previous items stay visible and the error banner is set; a stale
// list beats a blank page.
func (s *Synchronizer[T, P]) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	items, err := s.svc.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.err = farmacia.UserMessage(err)
		s.warn("refresh %s failed: %v", s.resource, err)
		return err
	}

	s.items = items
	s.err = ""
	s.saveSnapshotLocked(ctx)
	return nil
}

// RequestCreate opens the edit surface in create mode. No server contact.
func (s *Synchronizer[T, P]) RequestCreate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = nil
	s.formVisible = true
}

// RequestEdit opens the edit surface for an existing item. No server contact.
func (s *Synchronizer[T, P]) RequestEdit(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := item
	s.editing = &copied
	s.formVisible = true
}

// CancelEdit closes the edit surface without submitting.
func (s *Synchronizer[T, P]) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = nil
	s.formVisible = false
}

// Submit validates the payload, then creates or updates depending on edit
// mode. Success closes the form and triggers a full re-fetch; failure keeps
// the form open so the user can amend and retry.
func (s *Synchronizer[T, P]) Submit(ctx context.Context, payload P) error {
	if err := payload.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	editing := s.editing
	s.mu.Unlock()

	var err error
	if editing == nil {
		err = s.svc.Create(ctx, payload)
	} else {
		err = s.svc.Update(ctx, (*editing).ResourceID(), payload)
	}

	if err != nil {
		s.mu.Lock()
		s.err = farmacia.UserMessage(err)
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.editing = nil
	s.formVisible = false
	s.mu.Unlock()

	return s.Refresh(ctx)
}

// RequestDelete removes an item after user confirmation. Success patches the
// local list optimistically; there is no server-computed residue to
// reconcile, so no re-fetch happens.
func (s *Synchronizer[T, P]) RequestDelete(ctx context.Context, id int64) error {
	if s.confirm != nil && !s.confirm(id) {
		return nil
	}

	if err := s.svc.Delete(ctx, id); err != nil {
		s.mu.Lock()
		s.err = farmacia.UserMessage(err)
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0:0]
	for _, item := range s.items {
		if item.ResourceID() != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.err = ""
	s.saveSnapshotLocked(ctx)
	return nil
}

// Items returns a copy of the current list.
func (s *Synchronizer[T, P]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Loading reports whether a refresh round-trip is outstanding.
func (s *Synchronizer[T, P]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the current error banner text, empty when the last operation of
// its kind succeeded.
func (s *Synchronizer[T, P]) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Editing returns the item being edited, false in create mode or when the
// form is closed.
func (s *Synchronizer[T, P]) Editing() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing == nil {
		var zero T
		return zero, false
	}
	return *s.editing, true
}

// FormVisible reports whether the edit surface is open.
func (s *Synchronizer[T, P]) FormVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.formVisible
}

// CanView reports whether the current principal may list this resource.
func (s *Synchronizer[T, P]) CanView() bool {
	p, ok := s.session.CurrentPrincipal()
	return ok && p.Role.CanView(s.resource)
}

// CanMutate reports whether mutating affordances should render. The server
// still enforces the real boundary on every write.
func (s *Synchronizer[T, P]) CanMutate() bool {
	p, ok := s.session.CurrentPrincipal()
	return ok && p.Role.CanMutate(s.resource)
}

// saveSnapshotLocked persists the current list best-effort. Assumes s.mu held.
func (s *Synchronizer[T, P]) saveSnapshotLocked(ctx context.Context) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.SaveSnapshot(ctx, s.resource, s.items); err != nil {
		s.warn("snapshot save for %s failed: %v", s.resource, err)
	}
}

func (s *Synchronizer[T, P]) warn(format string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(format, args...)
	}
}
