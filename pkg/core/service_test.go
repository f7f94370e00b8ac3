package core

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore records calls so Service behavior can be asserted without disk.
type fakeStore struct {
	createdName    string
	createdGroup   string
	createdContent string
	deletedGroup   string
	movedSource    string
	movedTarget    string
}

func (f *fakeStore) Initialize(ctx context.Context) error { return nil }

func (f *fakeStore) Scan(ctx context.Context) (Snapshot, error) { return Snapshot{}, nil }

func (f *fakeStore) CreateNote(ctx context.Context, name, group, content string) (Note, error) {
	f.createdName = name
	f.createdGroup = group
	f.createdContent = content
	return Note{Path: name + ".md", Name: name, Group: group, ModTime: time.Now()}, nil
}

func (f *fakeStore) RenameNote(ctx context.Context, path, newName string) (string, error) {
	return newName + ".md", nil
}

func (f *fakeStore) DeleteNote(ctx context.Context, path string) error { return nil }

func (f *fakeStore) CreateGroup(ctx context.Context, group string) error {
	f.createdGroup = group
	return nil
}

func (f *fakeStore) DeleteGroup(ctx context.Context, group string) error {
	f.deletedGroup = group
	return nil
}

func (f *fakeStore) MoveNote(ctx context.Context, path, targetGroup string) (string, error) {
	f.movedSource = path
	f.movedTarget = targetGroup
	return path, nil
}

func (f *fakeStore) MoveGroup(ctx context.Context, source, target string) (string, error) {
	f.movedSource = source
	f.movedTarget = target
	return source, nil
}

func TestService_CreateNote_StampsHeader(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil)

	_, err := svc.CreateNote(context.Background(), "groceries", "", "milk, eggs")
	require.NoError(t, err)

	assert.Equal(t, DefaultGroup, store.createdGroup)

	doc, err := ParseDocument(strings.NewReader(store.createdContent))
	require.NoError(t, err)
	assert.Equal(t, "groceries", doc.Header.Title)
	assert.NotEmpty(t, doc.Header.ID)
	assert.NotEmpty(t, doc.Header.Date)
	assert.Equal(t, "milk, eggs", doc.Body)
}

func TestService_CreateNote_KeepsExistingHeader(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil)

	content := "title: Custom\nid: fixed-id\ndate: 2026-01-01T00:00:00Z\n\nbody"
	_, err := svc.CreateNote(context.Background(), "groceries", "Work", content)
	require.NoError(t, err)

	doc, err := ParseDocument(strings.NewReader(store.createdContent))
	require.NoError(t, err)
	assert.Equal(t, "Custom", doc.Header.Title)
	assert.Equal(t, "fixed-id", doc.Header.ID)
	assert.Equal(t, "2026-01-01T00:00:00Z", doc.Header.Date)
}

func TestService_CreateNote_RejectsBadName(t *testing.T) {
	svc := NewService(&fakeStore{}, nil)

	_, err := svc.CreateNote(context.Background(), "a/b", "Work", "")
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = svc.CreateNote(context.Background(), "ok", "../escape", "")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestService_RejectsAbsoluteGroupPaths(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil)
	ctx := context.Background()

	err := svc.CreateGroup(ctx, "/abs")
	assert.ErrorIs(t, err, ErrInvalidPath)
	assert.Empty(t, store.createdGroup, "the store must never see an absolute group path")

	_, err = svc.CreateNote(ctx, "ok", "/abs", "")
	assert.ErrorIs(t, err, ErrInvalidPath)

	err = svc.DeleteGroup(ctx, "/abs")
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = svc.MoveNote(ctx, "a.md", "/abs")
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = svc.MoveGroup(ctx, "Work", "/abs")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestService_CreateGroup_DefaultIsNoop(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil)

	require.NoError(t, svc.CreateGroup(context.Background(), DefaultGroup))
	assert.Empty(t, store.createdGroup, "the root always exists; the store must not be called")
}

func TestService_MoveNote_NormalizesTarget(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil)

	_, err := svc.MoveNote(context.Background(), "Work/a.md", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultGroup, store.movedTarget)
}

func TestService_Watch_Unsupported(t *testing.T) {
	svc := NewService(&fakeStore{}, nil)

	_, err := svc.Watch(context.Background(), "**/*")
	assert.Error(t, err)

	_, err = svc.Subscribe(context.Background(), "**/*", func(Batch) {})
	assert.Error(t, err)
}
