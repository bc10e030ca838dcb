package collections

import (
	"errors"
	"fmt"
	"studytrack/internal/models"
	"studytrack/internal/providers"
	"studytrack/internal/storage"
	"sync"
)

var (
	ErrDuplicateID = errors.New("duplicate id")
	ErrNotFound    = errors.New("record not found")
)

// Collection is an ordered set of records persisted as one JSON array under
// a single store key. Ids are unique at all times.
type Collection[T models.Record] struct {
	mu          sync.RWMutex
	key         string
	store       storage.KeyValueStore
	logger      providers.Logger
	items       []T
	index       map[string]int
	version     uint64
	subscribers []func()
}

// New loads the collection stored under key. Records repeating an id that
// was already seen are dropped with a warning.
func New[T models.Record](key string, store storage.KeyValueStore, logger providers.Logger) *Collection[T] {
	c := &Collection[T]{
		key:    key,
		store:  store,
		logger: logger,
	}
	loaded := storage.Load[[]T](store, key, nil, logger)
	c.items = make([]T, 0, len(loaded))
	c.index = make(map[string]int, len(loaded))
	for _, item := range loaded {
		if isNil(item) {
			continue
		}
		if _, dup := c.index[item.GetID()]; dup || item.GetID() == "" {
			logger.Warnf(providers.TypeApp, "Dropping record with empty or repeated id %q in %q", item.GetID(), key)
			continue
		}
		c.index[item.GetID()] = len(c.items)
		c.items = append(c.items, item)
	}
	return c
}

func (c *Collection[T]) Key() string {
	return c.key
}

// All returns the records in insertion order. The slice is a copy; the
// records are shared and must be treated as read-only.
func (c *Collection[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return c.items[i], true
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Version increases on every successful mutation.
func (c *Collection[T]) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Subscribe registers fn to run after every mutation.
func (c *Collection[T]) Subscribe(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

// Add appends item, assigning a fresh id when it has none.
func (c *Collection[T]) Add(item T) error {
	c.mu.Lock()
	if item.GetID() == "" {
		item.SetID(models.NewID())
	}
	if _, dup := c.index[item.GetID()]; dup {
		c.mu.Unlock()
		return fmt.Errorf("%s %q: %w", c.key, item.GetID(), ErrDuplicateID)
	}
	c.index[item.GetID()] = len(c.items)
	c.items = append(c.items, item)
	return c.commit()
}

// Update replaces the record with the same id.
func (c *Collection[T]) Update(item T) error {
	c.mu.Lock()
	i, ok := c.index[item.GetID()]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%s %q: %w", c.key, item.GetID(), ErrNotFound)
	}
	c.items[i] = item
	return c.commit()
}

func (c *Collection[T]) Remove(id string) error {
	c.mu.Lock()
	i, ok := c.index[id]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%s %q: %w", c.key, id, ErrNotFound)
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	c.reindex()
	return c.commit()
}

type validatable interface {
	Validate() error
}

// Check reports whether Replace would accept items: ids must not repeat and
// records that know how to validate themselves must pass.
func (c *Collection[T]) Check(items []T) error {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if isNil(item) {
			continue
		}
		if v, ok := any(item).(validatable); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("%s %q: %w", c.key, item.GetID(), err)
			}
		}
		id := item.GetID()
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%s %q: %w", c.key, id, ErrDuplicateID)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Replace swaps the whole collection. It fails without changes when items
// repeat an id.
func (c *Collection[T]) Replace(items []T) error {
	next := make([]T, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if isNil(item) {
			continue
		}
		if item.GetID() == "" {
			item.SetID(models.NewID())
		}
		if _, dup := seen[item.GetID()]; dup {
			return fmt.Errorf("%s %q: %w", c.key, item.GetID(), ErrDuplicateID)
		}
		seen[item.GetID()] = struct{}{}
		next = append(next, item)
	}

	c.mu.Lock()
	c.items = next
	c.reindex()
	return c.commit()
}

// Migrate applies fn to every record and persists once if any changed.
func (c *Collection[T]) Migrate(fn func(T) bool) int {
	c.mu.Lock()
	changed := 0
	for _, item := range c.items {
		if fn(item) {
			changed++
		}
	}
	if changed == 0 {
		c.mu.Unlock()
		return 0
	}
	if err := c.commit(); err != nil {
		c.logger.Errorf(providers.TypeApp, "Failed to persist migration of %q: %s", c.key, err)
	}
	return changed
}

func isNil[T models.Record](v T) bool {
	var zero T
	return any(v) == any(zero)
}

func (c *Collection[T]) reindex() {
	c.index = make(map[string]int, len(c.items))
	for i, item := range c.items {
		c.index[item.GetID()] = i
	}
}

// commit persists the collection, bumps the version and notifies
// subscribers. It must be called with c.mu held and releases it.
func (c *Collection[T]) commit() error {
	err := storage.Save(c.store, c.key, c.items)
	c.version++
	subs := make([]func(), len(c.subscribers))
	copy(subs, c.subscribers)
	c.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
	if err != nil {
		return fmt.Errorf("persist %s: %w", c.key, err)
	}
	return nil
}
