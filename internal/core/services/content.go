package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/briefdesk-cli/internal/core/domain"
	"github.com/custodia-labs/briefdesk-cli/internal/core/normalise"
	"github.com/custodia-labs/briefdesk-cli/internal/core/ports/driven"
	"github.com/custodia-labs/briefdesk-cli/internal/core/ports/driving"
	"github.com/custodia-labs/briefdesk-cli/internal/logger"
)

// Ensure ContentStore implements the interface.
var _ driving.ContentService = (*ContentStore)(nil)

// DispatchTimeout bounds every remote write dispatched by a store.
const DispatchTimeout = 15 * time.Second

// ContentStore is the per-kind optimistic store. Every page of the
// console used to re-implement this pattern; it lives here once.
//
// Mutations apply to the in-memory collection synchronously, then a
// remote write is dispatched in the background. The dispatch outcome
// only feeds the status reporter; local state is never reverted on
// failure (no reconciliation; the backend has no transactional
// guarantees, so rollback would require a truth re-fetch the console
// never does).
type ContentStore struct {
	kind     domain.Kind
	backend  driven.Backend
	reporter driving.StatusReporter

	mu    sync.Mutex
	topic string
	items []domain.Item

	// revs carries a monotonic per-item revision, incremented on
	// every local mutation. A dispatch completion holding an older
	// revision must not touch state (it may still report status).
	revs map[string]uint64

	// epoch is bumped whenever the collection is replaced; a load
	// completing for an older epoch is discarded.
	epoch uint64

	// dispatches lets tests wait for in-flight remote writes.
	dispatches sync.WaitGroup
}

// NewContentStore creates a store for one content kind.
func NewContentStore(kind domain.Kind, backend driven.Backend, reporter driving.StatusReporter) *ContentStore {
	return &ContentStore{
		kind:     kind,
		backend:  backend,
		reporter: reporter,
		revs:     make(map[string]uint64),
	}
}

// Kind returns the content kind this store manages.
func (s *ContentStore) Kind() domain.Kind { return s.kind }

// Topic returns the topic the collection currently belongs to.
func (s *ContentStore) Topic() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.topic
}

// Load replaces the collection with the normalised remote fetch for
// the topic. Any failure (backend missing, non-2xx, undecodable
// body) degrades to an empty collection plus a status message. A
// load that completes after the topic changed again is discarded.
func (s *ContentStore) Load(ctx context.Context, topic string) []domain.Item {
	s.mu.Lock()
	s.topic = topic
	s.epoch++
	epoch := s.epoch
	s.items = nil
	s.revs = make(map[string]uint64)
	s.mu.Unlock()

	if s.backend == nil {
		s.report("Failed to load %s entries: backend unavailable", s.kind)
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, DispatchTimeout)
	defer cancel()

	raw, err := s.backend.ListItems(ctx, s.kind, topic)
	if err != nil {
		logger.Debug("load %s/%s: %v", s.kind, topic, err)
		if s.currentEpoch() == epoch {
			s.report("Failed to load %s entries for %q", s.kind, topic)
		}
		return nil
	}

	items := normalise.List(raw, s.kind)
	for i := range items {
		if items[i].Topic == "" {
			items[i].Topic = topic
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		// The user moved on; keep whatever the newer load installed.
		return nil
	}
	s.items = items
	for _, item := range items {
		s.revs[item.ID] = 1
	}
	return snapshot(s.items)
}

// Items returns the latest local state of the collection.
func (s *ContentStore) Items() []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.items)
}

// Get returns the latest local state of one item. Reads are always
// against the live collection, never a snapshot taken at selection
// time.
func (s *ContentStore) Get(id string) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			item := s.items[i]
			return &item, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Filter returns items whose identifying field contains the query,
// case-insensitively. An empty query returns everything.
func (s *ContentStore) Filter(query string) []domain.Item {
	items := s.Items()
	if strings.TrimSpace(query) == "" {
		return items
	}
	query = strings.ToLower(query)
	var out []domain.Item
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.KeyField()), query) {
			out = append(out, item)
		}
	}
	return out
}

// Add validates the draft, appends it locally with a placeholder id,
// and dispatches the remote create. Validation failures reject the
// operation before any local or remote mutation.
func (s *ContentStore) Add(ctx context.Context, draft domain.Item) (domain.Item, error) {
	return s.add(ctx, draft, nil)
}

// AddWithFile is Add for drafts answered by a staged file; the
// create is dispatched as a multipart request carrying the file.
func (s *ContentStore) AddWithFile(ctx context.Context, draft domain.Item, file domain.PendingUpload) (domain.Item, error) {
	return s.add(ctx, draft, &file)
}

func (s *ContentStore) add(_ context.Context, draft domain.Item, file *domain.PendingUpload) (domain.Item, error) {
	s.mu.Lock()
	topic := s.topic
	s.mu.Unlock()

	if topic == "" {
		return domain.Item{}, domain.ErrNoTopicSelected
	}
	draft.Kind = s.kind
	draft.Topic = topic
	if err := draft.Validate(); err != nil {
		return domain.Item{}, err
	}
	if draft.ID == "" {
		draft.ID = "local-" + uuid.NewString()
	}
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = time.Now()
	}

	s.mu.Lock()
	s.items = append(s.items, draft)
	s.revs[draft.ID] = 1
	rev := s.revs[draft.ID]
	s.mu.Unlock()

	s.dispatch(func(ctx context.Context) {
		s.dispatchCreate(ctx, draft, file, rev)
	})
	return draft, nil
}

// dispatchCreate sends the remote create and reconciles the
// placeholder id if the backend returns the saved record.
func (s *ContentStore) dispatchCreate(ctx context.Context, draft domain.Item, file *domain.PendingUpload, rev uint64) {
	if s.backend == nil {
		s.report("Failed to save %s: backend unavailable", s.kind)
		return
	}
	ack, err := s.backend.SaveItem(ctx, draft, file)
	if err != nil {
		logger.Debug("save %s %s: %v", s.kind, draft.ID, err)
		s.report("Failed to save %s: webhook unreachable", s.kind)
		return
	}
	s.report("Saved %s ✓", s.kind)

	// Best-effort embedding refresh; advisory only.
	if err := s.backend.TriggerEmbed(ctx); err != nil {
		logger.Debug("embed trigger: %v", err)
	}

	// Prefer the server-assigned identity when the ack carries one,
	// but never clobber an item the user has mutated since dispatch.
	saved := normalise.One(ack, s.kind)
	if saved == nil || saved.ID == "" || saved.ID == draft.ID {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.revs[draft.ID] != rev {
		return
	}
	for i := range s.items {
		if s.items[i].ID == draft.ID {
			s.items[i].ID = saved.ID
			s.revs[saved.ID] = s.revs[draft.ID]
			delete(s.revs, draft.ID)
			return
		}
	}
}

// Update merges the patch into the local item immediately, then
// dispatches one remote field update per patched field. No version
// check against the backend; last local writer wins.
func (s *ContentStore) Update(_ context.Context, id string, patch driving.Patch) error {
	if len(patch) == 0 {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	var target *domain.Item
	for i := range s.items {
		if s.items[i].ID == id {
			target = &s.items[i]
			break
		}
	}
	if target == nil {
		s.mu.Unlock()
		return domain.ErrNotFound
	}
	applyPatch(target, patch)
	s.revs[id]++
	topic := s.topic
	s.mu.Unlock()

	s.dispatch(func(ctx context.Context) {
		if s.backend == nil {
			s.report("Failed to update %s: backend unavailable", s.kind)
			return
		}
		for field, value := range patch {
			if err := s.backend.UpdateItemField(ctx, s.kind, topic, id, field, value); err != nil {
				logger.Debug("update %s %s.%s: %v", s.kind, id, field, err)
				s.report("Failed to update %s: webhook unreachable", s.kind)
				return
			}
		}
		s.report("Updated ✓")
	})
	return nil
}

// Remove deletes the item locally and dispatches the remote delete.
// The item is captured before removal: document deletion needs the
// file identity, which is gone from the collection afterwards.
func (s *ContentStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	var removed *domain.Item
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID == id {
			it := item
			removed = &it
			continue
		}
		kept = append(kept, item)
	}
	s.items = kept
	delete(s.revs, id)
	topic := s.topic
	s.mu.Unlock()

	if removed == nil {
		return domain.ErrNotFound
	}

	s.dispatch(func(ctx context.Context) {
		if s.backend == nil {
			s.report("Failed to delete %s: backend unavailable", s.kind)
			return
		}
		if err := s.dispatchDelete(ctx, topic, *removed); err != nil {
			logger.Debug("delete %s %s: %v", s.kind, id, err)
			s.report("Failed to delete %s: webhook unreachable", s.kind)
			return
		}
		s.report("Deleted ✓")
	})
	return nil
}

// dispatchDelete routes the remote delete. Committed documents are
// identified by file name and URL, not by record id, so they go
// through the file endpoint.
func (s *ContentStore) dispatchDelete(ctx context.Context, topic string, item domain.Item) error {
	if s.kind == domain.KindDocument && item.Document != nil {
		target := item.Document.Category
		if target == "" {
			target = topic
		}
		return s.backend.DeleteFile(ctx, target, item.Document.FileName, item.Document.FileURL)
	}
	return s.backend.DeleteItem(ctx, s.kind, topic, item.ID)
}

// Clear discards the collection, e.g. when the topic is deleted or
// the user navigates away. Nothing survives a topic switch.
func (s *ContentStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topic = ""
	s.epoch++
	s.items = nil
	s.revs = make(map[string]uint64)
}

// Revision returns the current revision of an item. Zero means the
// item is unknown.
func (s *ContentStore) Revision(id string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revs[id]
}

// WaitDispatches blocks until all in-flight remote writes complete.
// Intended for tests and for CLI commands that exit immediately.
func (s *ContentStore) WaitDispatches() {
	s.dispatches.Wait()
}

// dispatch runs a remote write in the background with the standard
// timeout. The caller's context is deliberately not inherited: the
// write outlives the user action that triggered it.
func (s *ContentStore) dispatch(fn func(ctx context.Context)) {
	s.dispatches.Add(1)
	go func() {
		defer s.dispatches.Done()
		ctx, cancel := context.WithTimeout(context.Background(), DispatchTimeout)
		defer cancel()
		fn(ctx)
	}()
}

func (s *ContentStore) currentEpoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

func (s *ContentStore) report(format string, args ...any) {
	if s.reporter != nil {
		s.reporter.Reportf(format, args...)
	}
}

// applyPatch merges wire-named fields into the item's kind payload.
// Unknown fields are ignored, mirroring the backend's tolerance.
func applyPatch(item *domain.Item, patch driving.Patch) {
	for field, value := range patch {
		switch item.Kind {
		case domain.KindQA:
			if item.QA == nil {
				item.QA = &domain.QAFields{}
			}
			applyQAField(item.QA, field, value)
		case domain.KindCriticism:
			if item.Criticism == nil {
				item.Criticism = &domain.CriticismFields{}
			}
			applyCriticismField(item.Criticism, field, value)
		case domain.KindDocument:
			if item.Document == nil {
				item.Document = &domain.DocumentFields{}
			}
			applyDocumentField(item.Document, field, value)
		case domain.KindMember:
			if item.Member == nil {
				item.Member = &domain.MemberFields{}
			}
			applyMemberField(item.Member, field, value)
		}
	}
}

func applyQAField(qa *domain.QAFields, field string, value any) {
	switch field {
	case "question":
		qa.Question = asString(value)
	case "summary", "summary_ans", "shortAnswer":
		qa.Summary = asString(value)
	case "answers":
		qa.TextAnswers = asStrings(value)
	case "answer":
		// Single-answer edit: {"index": i, "value": s}.
		if m, ok := value.(map[string]any); ok {
			idx, okIdx := asInt(m["index"])
			if okIdx && idx >= 0 && idx < len(qa.TextAnswers) {
				qa.TextAnswers[idx] = asString(m["value"])
			}
		}
	case "removeAnswer":
		if idx, ok := asInt(value); ok && idx >= 0 && idx < len(qa.TextAnswers) {
			qa.TextAnswers = append(qa.TextAnswers[:idx], qa.TextAnswers[idx+1:]...)
		}
	case "inputType", "answerMode":
		if asString(value) == string(domain.AnswerDocument) {
			qa.Mode = domain.AnswerDocument
		} else {
			qa.Mode = domain.AnswerText
		}
	}
}

func applyCriticismField(cr *domain.CriticismFields, field string, value any) {
	switch field {
	case "title":
		cr.Title = asString(value)
	case "detail":
		cr.Detail = asString(value)
	case "source":
		cr.Source = asString(value)
	case "severity":
		cr.Severity = asString(value)
	case "tag":
		cr.Tag = asString(value)
	case "status":
		cr.Status = asString(value)
	case "notes", "answers":
		cr.Notes = asStrings(value)
	}
}

func applyDocumentField(doc *domain.DocumentFields, field string, value any) {
	switch field {
	case "fileName", "name":
		doc.FileName = asString(value)
	case "category", "topic":
		doc.Category = asString(value)
	}
}

func applyMemberField(m *domain.MemberFields, field string, value any) {
	switch field {
	case "name":
		m.Name = asString(value)
	case "role":
		m.Role = asString(value)
	case "sector":
		m.Sector = asString(value)
	case "phone":
		m.Phone = asString(value)
	case "email":
		m.Email = asString(value)
	case "level":
		m.Level = asString(value)
	case "status":
		m.Status = asString(value)
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func asStrings(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		var out []string
		for _, el := range vv {
			if s, ok := el.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func snapshot(items []domain.Item) []domain.Item {
	return append([]domain.Item(nil), items...)
}
