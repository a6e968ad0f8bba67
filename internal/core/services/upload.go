package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/briefdesk-cli/internal/core/domain"
	"github.com/custodia-labs/briefdesk-cli/internal/core/ports/driven"
	"github.com/custodia-labs/briefdesk-cli/internal/core/ports/driving"
	"github.com/custodia-labs/briefdesk-cli/internal/logger"
)

// Ensure UploadQueue implements the interface.
var _ driving.UploadService = (*UploadQueue)(nil)

// UploadQueue stages local files before any network call and
// promotes them to persisted items through explicit commits.
//
// Unlike the content stores, a commit is NOT optimistic: the
// committed item's identity (storage URL) only exists after the
// backend confirms, so failure leaves the entry staged instead of
// fabricating a record.
type UploadQueue struct {
	backend  driven.Backend
	staging  driven.StagingStore // optional persistence
	docs     driving.ContentService
	reporter driving.StatusReporter

	mu       sync.Mutex
	entries  []domain.PendingUpload
	inFlight bool

	// statFile is injectable for tests.
	statFile func(path string) (os.FileInfo, error)
}

// NewUploadQueue creates a queue. staging may be nil (no
// persistence); docs is the document content store reloaded after a
// successful commit and may be nil in tests.
func NewUploadQueue(
	backend driven.Backend,
	staging driven.StagingStore,
	docs driving.ContentService,
	reporter driving.StatusReporter,
) *UploadQueue {
	return &UploadQueue{
		backend:  backend,
		staging:  staging,
		docs:     docs,
		reporter: reporter,
		statFile: os.Stat,
	}
}

// Restore loads persisted staged entries from the staging store.
func (q *UploadQueue) Restore(ctx context.Context) error {
	if q.staging == nil {
		return nil
	}
	entries, err := q.staging.List(ctx)
	if err != nil {
		return fmt.Errorf("restore staged uploads: %w", err)
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = entries
	return nil
}

// Stage validates and stages a local file. A file over MaxFileSize
// is rejected with a validation message and never occupies a slot,
// so it cannot fail later at upload time.
func (q *UploadQueue) Stage(path, target string) (domain.PendingUpload, error) {
	info, err := q.statFile(path)
	if err != nil {
		return domain.PendingUpload{}, fmt.Errorf("stage %s: %w", path, err)
	}

	up := domain.PendingUpload{
		ID:          uuid.NewString(),
		Path:        path,
		DisplayName: filepath.Base(path),
		SizeBytes:   info.Size(),
		Target:      target,
	}
	if err := up.Validate(); err != nil {
		if errors.Is(err, domain.ErrFileTooLarge) {
			q.report("%s exceeds 10 MB", up.DisplayName)
		}
		return domain.PendingUpload{}, err
	}

	q.mu.Lock()
	q.entries = append(q.entries, up)
	q.mu.Unlock()

	if q.staging != nil {
		if err := q.staging.Save(context.Background(), up); err != nil {
			logger.Warn("persist staged upload %s: %v", up.ID, err)
		}
	}
	return up, nil
}

// Unstage discards a staged entry without any network interaction.
func (q *UploadQueue) Unstage(id string) error {
	q.mu.Lock()
	found := false
	kept := q.entries[:0]
	for _, e := range q.entries {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	q.entries = kept
	q.mu.Unlock()

	if !found {
		return domain.ErrNotFound
	}
	if q.staging != nil {
		if err := q.staging.Delete(context.Background(), id); err != nil {
			logger.Warn("unpersist staged upload %s: %v", id, err)
		}
	}
	return nil
}

// List returns staged entries in insertion order.
func (q *UploadQueue) List() []domain.PendingUpload {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]domain.PendingUpload(nil), q.entries...)
}

// InFlight reports whether a commit is currently running.
func (q *UploadQueue) InFlight() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.inFlight
}

// Commit uploads a staged entry. Commits are single-flight per
// queue: a second commit while one is outstanding is rejected, so
// two multipart submissions never race against the same backend.
func (q *UploadQueue) Commit(ctx context.Context, id string) error {
	q.mu.Lock()
	if q.inFlight {
		q.mu.Unlock()
		return domain.ErrUploadInFlight
	}
	var entry *domain.PendingUpload
	for i := range q.entries {
		if q.entries[i].ID == id {
			e := q.entries[i]
			entry = &e
			break
		}
	}
	if entry == nil {
		q.mu.Unlock()
		return domain.ErrNotFound
	}
	q.inFlight = true
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		q.inFlight = false
		q.mu.Unlock()
	}()

	if err := entry.Validate(); err != nil {
		return err
	}
	if q.backend == nil {
		q.report("Upload failed: backend unavailable")
		return domain.ErrBackendUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, DispatchTimeout)
	defer cancel()

	result, err := q.backend.UploadFile(ctx, *entry)
	if err != nil {
		// The entry stays staged; the user can retry.
		logger.Debug("upload %s: %v", entry.DisplayName, err)
		q.report("Upload failed")
		return fmt.Errorf("upload %s: %w", entry.DisplayName, err)
	}

	q.mu.Lock()
	kept := q.entries[:0]
	for _, e := range q.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	q.entries = kept
	q.mu.Unlock()

	if q.staging != nil {
		if err := q.staging.Delete(context.Background(), id); err != nil {
			logger.Warn("unpersist staged upload %s: %v", id, err)
		}
	}

	q.report("Document uploaded ✓")
	logger.Info("Uploaded %s as %s", entry.DisplayName, result.FileURL)

	// Reload so the item appears with its server-assigned identity.
	if q.docs != nil {
		q.docs.Load(ctx, entry.Target)
	}
	return nil
}

func (q *UploadQueue) report(format string, args ...any) {
	if q.reporter != nil {
		q.reporter.Reportf(format, args...)
	}
}
