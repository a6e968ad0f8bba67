package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/briefdesk-cli/internal/core/domain"
	"github.com/custodia-labs/briefdesk-cli/internal/core/ports/driven"
)

type fieldUpdate struct {
	kind  domain.Kind
	topic string
	id    string
	field string
	value any
}

type fileDelete struct {
	target   string
	fileName string
	fileURL  string
}

// fakeBackend is a scriptable in-memory Backend. Gates let tests hold
// a call open to exercise ordering between local state and dispatches.
type fakeBackend struct {
	mu sync.Mutex

	topicsPayload any
	topicsErr     error

	listPayloads map[string]any
	listErr      error
	listGate     chan struct{} // when set, ListItems blocks until closed
	gateTopic    string        // only block loads for this topic

	saveAck  any
	saveErr  error
	saveGate chan struct{} // when set, SaveItem blocks until closed

	updateErr error
	deleteErr error

	uploadResult driven.UploadResult
	uploadErr    error
	uploadGate   chan struct{} // when set, UploadFile blocks until closed

	addedTopics   []string
	deletedTopics []string
	loads         []string
	saved         []domain.Item
	savedWithFile int
	updates       []fieldUpdate
	deletedItems  []string
	uploads       []domain.PendingUpload
	deletedFiles  []fileDelete
	embeds        int
}

var _ driven.Backend = (*fakeBackend)(nil)

func (f *fakeBackend) ListTopics(_ context.Context) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.topicsErr != nil {
		return nil, f.topicsErr
	}
	return f.topicsPayload, nil
}

func (f *fakeBackend) AddTopic(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addedTopics = append(f.addedTopics, name)
	return nil
}

func (f *fakeBackend) DeleteTopic(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedTopics = append(f.deletedTopics, name)
	return nil
}

func (f *fakeBackend) ListItems(_ context.Context, _ domain.Kind, topic string) (any, error) {
	f.mu.Lock()
	gate := f.listGate
	gated := gate != nil && (f.gateTopic == "" || f.gateTopic == topic)
	f.loads = append(f.loads, topic)
	err := f.listErr
	payload := f.listPayloads[topic]
	f.mu.Unlock()

	if gated {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (f *fakeBackend) SaveItem(_ context.Context, item domain.Item, file *domain.PendingUpload) (any, error) {
	f.mu.Lock()
	gate := f.saveGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.saved = append(f.saved, item)
	if file != nil {
		f.savedWithFile++
	}
	return f.saveAck, nil
}

func (f *fakeBackend) UpdateItemField(_ context.Context, kind domain.Kind, topic, id, field string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, fieldUpdate{kind: kind, topic: topic, id: id, field: field, value: value})
	return nil
}

func (f *fakeBackend) DeleteItem(_ context.Context, _ domain.Kind, _, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedItems = append(f.deletedItems, id)
	return nil
}

func (f *fakeBackend) UploadFile(_ context.Context, up domain.PendingUpload) (driven.UploadResult, error) {
	f.mu.Lock()
	gate := f.uploadGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return driven.UploadResult{}, f.uploadErr
	}
	f.uploads = append(f.uploads, up)
	return f.uploadResult, nil
}

func (f *fakeBackend) DeleteFile(_ context.Context, target, fileName, fileURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedFiles = append(f.deletedFiles, fileDelete{target: target, fileName: fileName, fileURL: fileURL})
	return nil
}

func (f *fakeBackend) TriggerEmbed(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.embeds++
	return nil
}

func (f *fakeBackend) loadedTopics() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.loads...)
}

func (f *fakeBackend) savedItems() []domain.Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Item(nil), f.saved...)
}

func (f *fakeBackend) fieldUpdates() []fieldUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]fieldUpdate(nil), f.updates...)
}

func (f *fakeBackend) embedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.embeds
}

// fakeStaging is an in-memory StagingStore recording calls.
type fakeStaging struct {
	mu      sync.Mutex
	order   []string
	entries map[string]domain.PendingUpload
	deleted []string
	listErr error
	saveErr error
}

var _ driven.StagingStore = (*fakeStaging)(nil)

func newFakeStaging() *fakeStaging {
	return &fakeStaging{entries: make(map[string]domain.PendingUpload)}
}

func (s *fakeStaging) Save(_ context.Context, up domain.PendingUpload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	if _, ok := s.entries[up.ID]; !ok {
		s.order = append(s.order, up.ID)
	}
	s.entries[up.ID] = up
	return nil
}

func (s *fakeStaging) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *fakeStaging) List(_ context.Context) ([]domain.PendingUpload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []domain.PendingUpload
	for _, id := range s.order {
		if up, ok := s.entries[id]; ok {
			out = append(out, up)
		}
	}
	return out, nil
}
