package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/briefdesk-cli/internal/core/domain"
	"github.com/custodia-labs/briefdesk-cli/internal/core/ports/driving"
)

// stubCatalog is a canned CatalogService for command tests.
type stubCatalog struct {
	topics   []domain.Topic
	added    []string
	removed  []string
	selected *domain.Topic
}

func (s *stubCatalog) Load(context.Context) []domain.Topic { return s.topics }
func (s *stubCatalog) Topics() []domain.Topic              { return s.topics }

func (s *stubCatalog) Add(_ context.Context, name string) (domain.Topic, error) {
	s.added = append(s.added, name)
	topic := domain.Topic{Name: name}
	s.topics = append(s.topics, topic)
	return topic, nil
}

func (s *stubCatalog) Remove(_ context.Context, name string) error {
	s.removed = append(s.removed, name)
	return nil
}

func (s *stubCatalog) Select(name string) error {
	s.selected = &domain.Topic{Name: name}
	return nil
}

func (s *stubCatalog) Selected() *domain.Topic { return s.selected }

// stubContent is a canned ContentService for command tests.
type stubContent struct {
	kind    domain.Kind
	items   []domain.Item
	added   []domain.Item
	files   []domain.PendingUpload
	updates map[string]driving.Patch
	removed []string
}

func newStubContent(kind domain.Kind, items ...domain.Item) *stubContent {
	return &stubContent{kind: kind, items: items, updates: make(map[string]driving.Patch)}
}

func (s *stubContent) Kind() domain.Kind                          { return s.kind }
func (s *stubContent) Load(context.Context, string) []domain.Item { return s.items }
func (s *stubContent) Topic() string                              { return "" }
func (s *stubContent) Items() []domain.Item                       { return s.items }
func (s *stubContent) Get(string) (*domain.Item, error)           { return nil, domain.ErrNotFound }
func (s *stubContent) Filter(string) []domain.Item                { return s.items }
func (s *stubContent) Clear()                                     {}

func (s *stubContent) Remove(_ context.Context, id string) error {
	s.removed = append(s.removed, id)
	return nil
}

func (s *stubContent) Add(_ context.Context, draft domain.Item) (domain.Item, error) {
	if err := draft.Validate(); err != nil {
		return domain.Item{}, err
	}
	draft.ID = fmt.Sprintf("srv-%d", len(s.added)+1)
	s.added = append(s.added, draft)
	return draft, nil
}

func (s *stubContent) AddWithFile(ctx context.Context, draft domain.Item, file domain.PendingUpload) (domain.Item, error) {
	s.files = append(s.files, file)
	return s.Add(ctx, draft)
}

func (s *stubContent) Update(_ context.Context, id string, patch driving.Patch) error {
	s.updates[id] = patch
	return nil
}

// stubUploads is a canned UploadService for command tests.
type stubUploads struct {
	entries   []domain.PendingUpload
	committed []string
	unstaged  []string
	rejected  map[string]error
}

func (s *stubUploads) Stage(path, target string) (domain.PendingUpload, error) {
	if err, ok := s.rejected[path]; ok {
		return domain.PendingUpload{}, err
	}
	entry := domain.PendingUpload{
		ID:          fmt.Sprintf("up-%d", len(s.entries)+1),
		Path:        path,
		DisplayName: filepath.Base(path),
		SizeBytes:   int64(42),
		Target:      target,
	}
	s.entries = append(s.entries, entry)
	return entry, nil
}

func (s *stubUploads) Unstage(id string) error {
	s.unstaged = append(s.unstaged, id)
	return nil
}

func (s *stubUploads) List() []domain.PendingUpload { return s.entries }

func (s *stubUploads) Commit(_ context.Context, id string) error {
	s.committed = append(s.committed, id)
	return nil
}

func (s *stubUploads) InFlight() bool { return false }

// stubReporter records the latest message.
type stubReporter struct {
	msg string
}

func (s *stubReporter) Report(msg string)             { s.msg = msg }
func (s *stubReporter) Reportf(f string, args ...any) { s.msg = fmt.Sprintf(f, args...) }
func (s *stubReporter) Current() string               { return s.msg }

// setupTestServices wires stub services into the package state and
// returns them alongside a cleanup that restores the previous state.
func setupTestServices() (*stubCatalog, map[domain.Kind]*stubContent, *stubUploads, func()) {
	previous := services

	catalog := &stubCatalog{topics: []domain.Topic{{Name: "Economy"}, {Name: "Health", Tag: "NEW"}}}
	stubs := map[domain.Kind]*stubContent{
		domain.KindQA:        newStubContent(domain.KindQA),
		domain.KindCriticism: newStubContent(domain.KindCriticism),
		domain.KindDocument:  newStubContent(domain.KindDocument),
		domain.KindMember:    newStubContent(domain.KindMember),
	}
	stores := make(map[domain.Kind]driving.ContentService, len(stubs))
	for kind, stub := range stubs {
		stores[kind] = stub
	}
	uploads := &stubUploads{}

	SetServices(Services{
		Catalog:  catalog,
		Stores:   stores,
		Uploads:  uploads,
		Reporter: &stubReporter{},
	})

	return catalog, stubs, uploads, func() { services = previous }
}
