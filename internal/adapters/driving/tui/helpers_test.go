package tui

import (
	"context"
	"fmt"

	"github.com/custodia-labs/briefdesk-cli/internal/core/domain"
	"github.com/custodia-labs/briefdesk-cli/internal/core/ports/driving"
)

type stubCatalog struct {
	topics   []domain.Topic
	selected *domain.Topic
}

func (s *stubCatalog) Load(context.Context) []domain.Topic { return s.topics }
func (s *stubCatalog) Topics() []domain.Topic              { return s.topics }

func (s *stubCatalog) Add(_ context.Context, name string) (domain.Topic, error) {
	topic := domain.Topic{Name: name}
	s.topics = append(s.topics, topic)
	return topic, nil
}

func (s *stubCatalog) Remove(_ context.Context, name string) error {
	for i, topic := range s.topics {
		if topic.Name == name {
			s.topics = append(s.topics[:i], s.topics[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *stubCatalog) Select(name string) error {
	s.selected = &domain.Topic{Name: name}
	return nil
}

func (s *stubCatalog) Selected() *domain.Topic { return s.selected }

type stubContent struct {
	kind  domain.Kind
	items []domain.Item
}

func (s *stubContent) Kind() domain.Kind                          { return s.kind }
func (s *stubContent) Load(context.Context, string) []domain.Item { return s.items }
func (s *stubContent) Topic() string                              { return "" }
func (s *stubContent) Items() []domain.Item                       { return s.items }
func (s *stubContent) Get(string) (*domain.Item, error)           { return nil, domain.ErrNotFound }
func (s *stubContent) Filter(string) []domain.Item                { return s.items }
func (s *stubContent) Clear()                                     {}

func (s *stubContent) Add(_ context.Context, draft domain.Item) (domain.Item, error) {
	if err := draft.Validate(); err != nil {
		return domain.Item{}, err
	}
	draft.ID = fmt.Sprintf("srv-%d", len(s.items)+1)
	s.items = append(s.items, draft)
	return draft, nil
}

func (s *stubContent) AddWithFile(ctx context.Context, draft domain.Item, _ domain.PendingUpload) (domain.Item, error) {
	return s.Add(ctx, draft)
}

func (s *stubContent) Update(context.Context, string, driving.Patch) error { return nil }

func (s *stubContent) Remove(_ context.Context, id string) error {
	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type stubUploads struct {
	entries  []domain.PendingUpload
	inFlight bool
}

func (s *stubUploads) Stage(path, target string) (domain.PendingUpload, error) {
	entry := domain.PendingUpload{ID: fmt.Sprintf("up-%d", len(s.entries)+1), Path: path, Target: target}
	s.entries = append(s.entries, entry)
	return entry, nil
}

func (s *stubUploads) Unstage(id string) error {
	for i, entry := range s.entries {
		if entry.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *stubUploads) List() []domain.PendingUpload { return s.entries }

func (s *stubUploads) Commit(_ context.Context, id string) error { return s.Unstage(id) }

func (s *stubUploads) InFlight() bool { return s.inFlight }

type stubReporter struct {
	msg string
}

func (s *stubReporter) Report(msg string)             { s.msg = msg }
func (s *stubReporter) Reportf(f string, args ...any) { s.msg = fmt.Sprintf(f, args...) }
func (s *stubReporter) Current() string               { return s.msg }

// testPorts builds a fully wired Ports with stub services.
func testPorts() *Ports {
	return &Ports{
		Catalog: &stubCatalog{topics: []domain.Topic{{Name: "Economy"}, {Name: "Health", Tag: "NEW"}}},
		Stores: map[domain.Kind]driving.ContentService{
			domain.KindQA:        &stubContent{kind: domain.KindQA},
			domain.KindCriticism: &stubContent{kind: domain.KindCriticism},
			domain.KindDocument:  &stubContent{kind: domain.KindDocument},
			domain.KindMember:    &stubContent{kind: domain.KindMember},
		},
		Uploads:  &stubUploads{},
		Reporter: &stubReporter{},
	}
}
