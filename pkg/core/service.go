package core

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/google/uuid"
)

// Service handles the business logic for the note store: input
// validation, header enrichment on create, and the subscription surface
// over the watcher. State is never cached here; every view comes from a
// fresh Scan.
type Service struct {
	store  Store
	logger *slog.Logger
	mu     sync.RWMutex
}

// NewService creates a new Service. A nil logger disables logging.
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Scan rebuilds the notes and empty-groups view from storage.
func (s *Service) Scan(ctx context.Context) (Snapshot, error) {
	return s.store.Scan(ctx)
}

// CreateNote validates the name and group, stamps the header (missing
// IDs get a UUID, missing dates the current time, missing titles the
// note name) and persists the note.
func (s *Service) CreateNote(ctx context.Context, name, group, content string) (Note, error) {
	if err := ValidateNoteName(name); err != nil {
		return Note{}, err
	}
	group = NormalizeGroup(group)
	if err := ValidateGroup(group); err != nil {
		return Note{}, err
	}

	stamped, err := stampHeader(name, content)
	if err != nil {
		return Note{}, err
	}

	note, err := s.store.CreateNote(ctx, name, group, stamped)
	if err != nil {
		return Note{}, err
	}
	if s.logger != nil {
		s.logger.Debug("note created", "path", note.Path, "group", note.Group)
	}
	return note, nil
}

// RenameNote renames a note within its group.
func (s *Service) RenameNote(ctx context.Context, path, newName string) (string, error) {
	if err := ValidateNoteName(newName); err != nil {
		return "", err
	}
	return s.store.RenameNote(ctx, path, newName)
}

// DeleteNote removes a note. The emptied parent group remains visible.
func (s *Service) DeleteNote(ctx context.Context, path string) error {
	return s.store.DeleteNote(ctx, path)
}

// CreateGroup creates the full group chain. Idempotent.
func (s *Service) CreateGroup(ctx context.Context, group string) error {
	group = NormalizeGroup(group)
	if err := ValidateGroup(group); err != nil {
		return err
	}
	if group == DefaultGroup {
		// The root always exists.
		return nil
	}
	return s.store.CreateGroup(ctx, group)
}

// DeleteGroup recursively deletes a group and everything under it.
func (s *Service) DeleteGroup(ctx context.Context, group string) error {
	group = NormalizeGroup(group)
	if err := ValidateGroup(group); err != nil {
		return err
	}
	return s.store.DeleteGroup(ctx, group)
}

// MoveNote relocates a note into the target group.
func (s *Service) MoveNote(ctx context.Context, path, targetGroup string) (string, error) {
	targetGroup = NormalizeGroup(targetGroup)
	if err := ValidateGroup(targetGroup); err != nil {
		return "", err
	}
	return s.store.MoveNote(ctx, path, targetGroup)
}

// MoveGroup relocates a whole group subtree under the target group.
func (s *Service) MoveGroup(ctx context.Context, source, target string) (string, error) {
	source = NormalizeGroup(source)
	target = NormalizeGroup(target)
	if err := ValidateGroup(source); err != nil {
		return "", err
	}
	if err := ValidateGroup(target); err != nil {
		return "", err
	}
	return s.store.MoveGroup(ctx, source, target)
}

// Watch exposes the raw debounced event channel if the store supports it.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Batch, error) {
	w, ok := s.store.(Watchable)
	if !ok {
		return nil, errors.New("store does not support watching")
	}
	return w.Watch(ctx, pattern)
}

// Subscribe starts a watch and invokes onChange for every debounced
// batch. The returned stop function halts the watch; once it returns,
// onChange will not be called again. The usual reaction to a batch is a
// fresh Scan, which is idempotent if a batch arrives for already-known
// state.
func (s *Service) Subscribe(ctx context.Context, pattern string, onChange func(Batch)) (func() error, error) {
	w, ok := s.store.(Watchable)
	if !ok {
		return nil, errors.New("store does not support watching")
	}

	events, err := w.Watch(ctx, pattern)
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return nil
			case batch, ok := <-events:
				if !ok {
					return nil
				}
				onChange(batch)
			}
		}
	})

	stop := func() error {
		err := w.StopWatch(context.Background())
		<-done
		return err
	}
	return stop, nil
}

// stampHeader fills in the missing header fields of new note content.
func stampHeader(name, content string) (string, error) {
	doc, err := ParseDocument(strings.NewReader(content))
	if err != nil {
		return "", err
	}
	if doc.Header.ID == "" {
		doc.Header.ID = uuid.NewString()
	}
	if doc.Header.Date == "" {
		doc.Header.Date = time.Now().UTC().Format(time.RFC3339)
	}
	if doc.Header.Title == "" {
		doc.Header.Title = name
	}
	return doc.String()
}
