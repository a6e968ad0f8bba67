package services

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/briefdesk-cli/internal/core/domain"
	"github.com/custodia-labs/briefdesk-cli/internal/core/ports/driven"
)

type fakeFileInfo struct {
	name string
	size int64
}

func (f fakeFileInfo) Name() string       { return f.name }
func (f fakeFileInfo) Size() int64        { return f.size }
func (f fakeFileInfo) Mode() fs.FileMode  { return 0o644 }
func (f fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (f fakeFileInfo) IsDir() bool        { return false }
func (f fakeFileInfo) Sys() any           { return nil }

func statWithSize(size int64) func(string) (os.FileInfo, error) {
	return func(path string) (os.FileInfo, error) {
		return fakeFileInfo{name: path, size: size}, nil
	}
}

func TestUploadQueue_StageAndList(t *testing.T) {
	q := NewUploadQueue(&fakeBackend{}, nil, nil, testReporter())
	q.statFile = statWithSize(1024)

	up, err := q.Stage("/tmp/brief.pdf", "Economy")

	require.NoError(t, err)
	assert.NotEmpty(t, up.ID)
	assert.Equal(t, "brief.pdf", up.DisplayName)
	assert.Equal(t, int64(1024), up.SizeBytes)
	assert.Equal(t, "Economy", up.Target)

	entries := q.List()
	require.Len(t, entries, 1)
	assert.Equal(t, up.ID, entries[0].ID)
}

func TestUploadQueue_StageMissingFile(t *testing.T) {
	q := NewUploadQueue(&fakeBackend{}, nil, nil, testReporter())
	q.statFile = func(string) (os.FileInfo, error) {
		return nil, os.ErrNotExist
	}

	_, err := q.Stage("/tmp/ghost.pdf", "Economy")

	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, q.List())
}

func TestUploadQueue_StageAtSizeLimit(t *testing.T) {
	q := NewUploadQueue(&fakeBackend{}, nil, nil, testReporter())
	q.statFile = statWithSize(domain.MaxFileSize)

	_, err := q.Stage("/tmp/exact.pdf", "Economy")

	assert.NoError(t, err)
}

func TestUploadQueue_StageOversizeRejected(t *testing.T) {
	reporter := testReporter()
	q := NewUploadQueue(&fakeBackend{}, nil, nil, reporter)
	q.statFile = statWithSize(domain.MaxFileSize + 1)

	_, err := q.Stage("/tmp/huge.pdf", "Economy")

	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
	assert.Empty(t, q.List())
	assert.Contains(t, reporter.Current(), "exceeds 10 MB")
}

func TestUploadQueue_StagePersists(t *testing.T) {
	staging := newFakeStaging()
	q := NewUploadQueue(&fakeBackend{}, staging, nil, testReporter())
	q.statFile = statWithSize(1024)

	up, err := q.Stage("/tmp/brief.pdf", "Economy")

	require.NoError(t, err)
	persisted, err := staging.List(context.Background())
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, up.ID, persisted[0].ID)
}

func TestUploadQueue_Restore(t *testing.T) {
	staging := newFakeStaging()
	require.NoError(t, staging.Save(context.Background(), domain.PendingUpload{
		ID:          "up-1",
		Path:        "/tmp/brief.pdf",
		DisplayName: "brief.pdf",
		SizeBytes:   1024,
		Target:      "Economy",
	}))
	q := NewUploadQueue(&fakeBackend{}, staging, nil, testReporter())

	require.NoError(t, q.Restore(context.Background()))

	entries := q.List()
	require.Len(t, entries, 1)
	assert.Equal(t, "up-1", entries[0].ID)
}

func TestUploadQueue_RestoreFailure(t *testing.T) {
	staging := newFakeStaging()
	staging.listErr = errors.New("boom")
	q := NewUploadQueue(&fakeBackend{}, staging, nil, testReporter())

	err := q.Restore(context.Background())

	assert.Error(t, err)
}

func TestUploadQueue_Unstage(t *testing.T) {
	staging := newFakeStaging()
	q := NewUploadQueue(&fakeBackend{}, staging, nil, testReporter())
	q.statFile = statWithSize(1024)
	up, err := q.Stage("/tmp/brief.pdf", "Economy")
	require.NoError(t, err)

	require.NoError(t, q.Unstage(up.ID))

	assert.Empty(t, q.List())
	assert.Contains(t, staging.deleted, up.ID)
	assert.ErrorIs(t, q.Unstage(up.ID), domain.ErrNotFound)
}

func TestUploadQueue_CommitUnknown(t *testing.T) {
	q := NewUploadQueue(&fakeBackend{}, nil, nil, testReporter())

	err := q.Commit(context.Background(), "ghost")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUploadQueue_CommitSuccess(t *testing.T) {
	reporter := testReporter()
	staging := newFakeStaging()
	backend := &fakeBackend{
		uploadResult: driven.UploadResult{FileURL: "https://files/brief.pdf", FileName: "brief.pdf"},
	}
	docs := NewContentStore(domain.KindDocument, backend, reporter)
	q := NewUploadQueue(backend, staging, docs, reporter)
	q.statFile = statWithSize(1024)

	up, err := q.Stage("/tmp/brief.pdf", "Economy")
	require.NoError(t, err)

	require.NoError(t, q.Commit(context.Background(), up.ID))

	assert.Empty(t, q.List())
	assert.Contains(t, staging.deleted, up.ID)
	assert.Equal(t, "Document uploaded ✓", reporter.Current())
	require.Len(t, backend.uploads, 1)
	assert.Equal(t, up.ID, backend.uploads[0].ID)

	// The document collection is reloaded for the target category.
	assert.Equal(t, []string{"Economy"}, backend.loadedTopics())
	assert.False(t, q.InFlight())
}

func TestUploadQueue_CommitFailureKeepsEntryStaged(t *testing.T) {
	reporter := testReporter()
	backend := &fakeBackend{uploadErr: errors.New("boom")}
	q := NewUploadQueue(backend, nil, nil, reporter)
	q.statFile = statWithSize(1024)

	up, err := q.Stage("/tmp/brief.pdf", "Economy")
	require.NoError(t, err)

	err = q.Commit(context.Background(), up.ID)

	assert.Error(t, err)
	require.Len(t, q.List(), 1)
	assert.Equal(t, up.ID, q.List()[0].ID)
	assert.Equal(t, "Upload failed", reporter.Current())
	assert.False(t, q.InFlight())
}

func TestUploadQueue_CommitSingleFlight(t *testing.T) {
	gate := make(chan struct{})
	backend := &fakeBackend{uploadGate: gate}
	q := NewUploadQueue(backend, nil, nil, testReporter())
	q.statFile = statWithSize(1024)

	first, err := q.Stage("/tmp/a.pdf", "Economy")
	require.NoError(t, err)
	second, err := q.Stage("/tmp/b.pdf", "Economy")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- q.Commit(context.Background(), first.ID)
	}()

	require.Eventually(t, q.InFlight, time.Second, 5*time.Millisecond)

	err = q.Commit(context.Background(), second.ID)
	assert.ErrorIs(t, err, domain.ErrUploadInFlight)

	close(gate)
	require.NoError(t, <-done)
	assert.False(t, q.InFlight())

	// The rejected entry is untouched and can be committed now.
	require.Len(t, q.List(), 1)
	assert.Equal(t, second.ID, q.List()[0].ID)
}
