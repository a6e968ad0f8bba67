package services

import (
	"context"
	"strings"
	"sync"

	"github.com/custodia-labs/briefdesk-cli/internal/core/domain"
	"github.com/custodia-labs/briefdesk-cli/internal/core/normalise"
	"github.com/custodia-labs/briefdesk-cli/internal/core/ports/driven"
	"github.com/custodia-labs/briefdesk-cli/internal/core/ports/driving"
	"github.com/custodia-labs/briefdesk-cli/internal/logger"
)

// Ensure TopicCatalog implements the interface.
var _ driving.CatalogService = (*TopicCatalog)(nil)

// TopicCatalog manages the topic list with the same optimistic
// discipline as the content stores: local mutation first, then a
// fire-and-forget remote write.
//
// Deleting a topic does NOT cascade to its items on the backend.
// Only local dependent state (selection, loaded
// collections) is cleared, through the removal hook.
type TopicCatalog struct {
	backend  driven.Backend
	reporter driving.StatusReporter

	mu       sync.Mutex
	topics   []domain.Topic
	selected string

	// onRemoved is invoked (outside the lock) after any topic is
	// removed locally, so dependent stores and view state can clear.
	onRemoved func(name string)

	dispatches sync.WaitGroup
}

// NewTopicCatalog creates a catalog backed by the given backend.
func NewTopicCatalog(backend driven.Backend, reporter driving.StatusReporter) *TopicCatalog {
	return &TopicCatalog{backend: backend, reporter: reporter}
}

// SetOnRemoved registers the hook run after a topic removal.
func (c *TopicCatalog) SetOnRemoved(fn func(name string)) {
	c.onRemoved = fn
}

// Load fetches and normalises the topic list. Any failure degrades
// to an empty list plus a status message; the caller always gets a
// usable (possibly empty) catalog.
func (c *TopicCatalog) Load(ctx context.Context) []domain.Topic {
	if c.backend == nil {
		c.report("Failed to load topics: backend unavailable")
		c.setTopics(nil)
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, DispatchTimeout)
	defer cancel()

	raw, err := c.backend.ListTopics(ctx)
	if err != nil {
		logger.Debug("load topics: %v", err)
		c.report("Failed to load topics: webhook unreachable")
		c.setTopics(nil)
		return nil
	}

	topics := normalise.Topics(raw)
	c.setTopics(topics)
	return append([]domain.Topic(nil), topics...)
}

// Topics returns the current local topic list.
func (c *TopicCatalog) Topics() []domain.Topic {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Topic(nil), c.topics...)
}

// Add inserts a topic locally and dispatches the remote create. The
// insert is rejected before any mutation when the name is empty or
// already present.
func (c *TopicCatalog) Add(_ context.Context, name string) (domain.Topic, error) {
	name = strings.TrimSpace(name)
	topic := domain.Topic{Name: name}
	if err := topic.Validate(); err != nil {
		return domain.Topic{}, err
	}

	c.mu.Lock()
	for _, t := range c.topics {
		if t.Name == name {
			c.mu.Unlock()
			return domain.Topic{}, domain.ErrAlreadyExists
		}
	}
	c.topics = append(c.topics, topic)
	c.mu.Unlock()

	c.dispatch(func(ctx context.Context) {
		if c.backend == nil {
			c.report("Failed to add topic: backend unavailable")
			return
		}
		if err := c.backend.AddTopic(ctx, name); err != nil {
			logger.Debug("add topic %q: %v", name, err)
			c.report("Failed to add topic: webhook unreachable")
			return
		}
		c.report("Topic added")
	})
	return topic, nil
}

// Remove deletes a topic locally and dispatches the remote delete.
// Removing the selected topic also clears the selection; the removal
// hook runs for every removal, since stores may hold the topic's
// items without the catalog ever having selected it.
func (c *TopicCatalog) Remove(_ context.Context, name string) error {
	c.mu.Lock()
	found := false
	kept := c.topics[:0]
	for _, t := range c.topics {
		if t.Name == name {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	c.topics = kept
	if c.selected == name {
		c.selected = ""
	}
	c.mu.Unlock()

	if !found {
		return domain.ErrNotFound
	}
	if c.onRemoved != nil {
		c.onRemoved(name)
	}

	c.dispatch(func(ctx context.Context) {
		if c.backend == nil {
			c.report("Failed to delete %q: backend unavailable", name)
			return
		}
		if err := c.backend.DeleteTopic(ctx, name); err != nil {
			logger.Debug("delete topic %q: %v", name, err)
			c.report("Failed to delete %q", name)
			return
		}
		c.report("%q deleted", name)
	})
	return nil
}

// Select marks a topic active. The topic must exist locally.
func (c *TopicCatalog) Select(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.topics {
		if t.Name == name {
			c.selected = name
			return nil
		}
	}
	return domain.ErrNotFound
}

// Selected returns the active topic, or nil.
func (c *TopicCatalog) Selected() *domain.Topic {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.topics {
		if t.Name == c.selected {
			topic := t
			return &topic
		}
	}
	return nil
}

// WaitDispatches blocks until all in-flight remote writes complete.
func (c *TopicCatalog) WaitDispatches() {
	c.dispatches.Wait()
}

func (c *TopicCatalog) setTopics(topics []domain.Topic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topics = topics
}

func (c *TopicCatalog) dispatch(fn func(ctx context.Context)) {
	c.dispatches.Add(1)
	go func() {
		defer c.dispatches.Done()
		ctx, cancel := context.WithTimeout(context.Background(), DispatchTimeout)
		defer cancel()
		fn(ctx)
	}()
}

func (c *TopicCatalog) report(format string, args ...any) {
	if c.reporter != nil {
		c.reporter.Reportf(format, args...)
	}
}
