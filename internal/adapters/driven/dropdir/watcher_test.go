package dropdir

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/briefdesk-cli/internal/core/domain"
)

type stagedCall struct {
	path   string
	target string
}

type fakeUploads struct {
	mu     sync.Mutex
	staged []stagedCall
}

func (f *fakeUploads) Stage(path, target string) (domain.PendingUpload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.staged = append(f.staged, stagedCall{path: path, target: target})
	return domain.PendingUpload{ID: "up-1", Path: path, DisplayName: filepath.Base(path), Target: target}, nil
}

func (f *fakeUploads) Unstage(string) error                 { return nil }
func (f *fakeUploads) List() []domain.PendingUpload         { return nil }
func (f *fakeUploads) Commit(context.Context, string) error { return nil }
func (f *fakeUploads) InFlight() bool                       { return false }

func (f *fakeUploads) calls() []stagedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]stagedCall(nil), f.staged...)
}

func TestWatcher_StagesDroppedFile(t *testing.T) {
	dir := t.TempDir()
	uploads := &fakeUploads{}
	w := New(dir, uploads)
	w.settleDelay = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx, "Economy") }()

	// Give the watcher time to register before dropping the file.
	time.Sleep(100 * time.Millisecond)
	path := filepath.Join(dir, "brief.pdf")
	require.NoError(t, os.WriteFile(path, []byte("pdf-bytes"), 0o644))

	require.Eventually(t, func() bool {
		return len(uploads.calls()) == 1
	}, 3*time.Second, 20*time.Millisecond)

	call := uploads.calls()[0]
	assert.Equal(t, path, call.path)
	assert.Equal(t, "Economy", call.target)
}

func TestWatcher_RunStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, &fakeUploads{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, "Economy") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}

func TestWatcher_RunMissingDir(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing"), &fakeUploads{})

	err := w.Run(context.Background(), "Economy")

	assert.Error(t, err)
}

func TestHandleFsEvent_SkipsDirectoriesAndHiddenFiles(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, &fakeUploads{})

	sub := filepath.Join(dir, "subdir")
	require.NoError(t, os.Mkdir(sub, 0o755))
	_, ok := w.handleFsEvent(fsnotify.Event{Name: sub, Op: fsnotify.Create})
	assert.False(t, ok)

	hidden := filepath.Join(dir, ".partial.pdf")
	require.NoError(t, os.WriteFile(hidden, []byte("x"), 0o644))
	_, ok = w.handleFsEvent(fsnotify.Event{Name: hidden, Op: fsnotify.Create})
	assert.False(t, ok)

	plain := filepath.Join(dir, "brief.pdf")
	require.NoError(t, os.WriteFile(plain, []byte("x"), 0o644))
	path, ok := w.handleFsEvent(fsnotify.Event{Name: plain, Op: fsnotify.Create})
	assert.True(t, ok)
	assert.Equal(t, plain, path)

	_, ok = w.handleFsEvent(fsnotify.Event{Name: plain, Op: fsnotify.Chmod})
	assert.False(t, ok)
}

func TestIsHidden(t *testing.T) {
	assert.True(t, isHidden(".partial.pdf"))
	assert.True(t, isHidden("/drop/.cache/file.pdf"))
	assert.False(t, isHidden("/drop/brief.pdf"))
	assert.False(t, isHidden("dir.name/file.pdf"))
}
