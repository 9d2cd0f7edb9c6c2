// Package history keeps the recall list: a bounded, deduplicated,
// persisted list of prior imports, most recent first.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/GabrielNunesIT/go-libs/logger"

	"github.com/GabrielNunesIT/swagger-preview/internal/domain"
	"github.com/GabrielNunesIT/swagger-preview/internal/kv"
)

const (
	// Key is the persistence key holding the serialized list.
	Key = "swagger_side_history"
	// MaxEntries bounds the list; the oldest entries are dropped first.
	MaxEntries = 20
)

// ErrClosed is returned by operations issued after Close.
var ErrClosed = errors.New("history store closed")

type job func()

// Store serializes every read-modify-write of the persisted list through
// a single goroutine so concurrent mutations never interleave.
type Store struct {
	kv  kv.Store
	log logger.ILogger
	now func() time.Time

	jobs      chan job
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New starts a store over the given key-value boundary.
func New(store kv.Store, log logger.ILogger, opts ...Option) *Store {
	s := &Store{
		kv:      store,
		log:     log,
		now:     time.Now,
		jobs:    make(chan job),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	go s.run()

	return s
}

func (s *Store) run() {
	defer close(s.stopped)

	for {
		select {
		case j := <-s.jobs:
			j()
		case <-s.done:
			return
		}
	}
}

// Close stops the store. Pending callers receive ErrClosed.
func (s *Store) Close() {
	s.closeOnce.Do(func() { close(s.done) })
	<-s.stopped
}

type result struct {
	entries []domain.HistoryEntry
	err     error
}

func (s *Store) do(ctx context.Context, fn func() ([]domain.HistoryEntry, error)) ([]domain.HistoryEntry, error) {
	ch := make(chan result, 1)
	j := func() {
		entries, err := fn()
		ch <- result{entries: entries, err: err}
	}

	select {
	case s.jobs <- j:
	case <-s.done:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case r := <-ch:
		return r.entries, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Add records entry at the front of the list with a fresh timestamp,
// replacing any entry with the same raw value, and returns the new list.
func (s *Store) Add(ctx context.Context, entry domain.HistoryEntry) ([]domain.HistoryEntry, error) {
	if !entry.SourceKind.Valid() {
		return nil, fmt.Errorf("invalid source kind %q", entry.SourceKind)
	}
	if entry.RawValue == "" {
		return nil, domain.ErrEmptySource
	}

	return s.do(ctx, func() ([]domain.HistoryEntry, error) {
		items, err := s.load(ctx)
		if err != nil {
			if !errors.Is(err, errCorrupt) {
				return nil, err
			}
			s.log.Errorf("history: discarding unreadable list: %v", err)
			items = nil
		}

		kept := make([]domain.HistoryEntry, 0, len(items)+1)
		var newest int64
		for _, item := range items {
			if item.RawValue == entry.RawValue {
				continue
			}
			kept = append(kept, item)
			newest = max(newest, item.CreatedAt)
		}

		// CreatedAt identifies entries, so it must not collide with a survivor.
		entry.CreatedAt = max(s.now().UnixMilli(), newest+1)

		kept = append([]domain.HistoryEntry{entry}, kept...)
		if len(kept) > MaxEntries {
			kept = kept[:MaxEntries]
		}

		if err := s.save(ctx, kept); err != nil {
			return nil, err
		}
		return kept, nil
	})
}

// Remove drops the entry created at createdAt and returns the new list.
// The remaining entries keep their relative order.
func (s *Store) Remove(ctx context.Context, createdAt int64) ([]domain.HistoryEntry, error) {
	return s.do(ctx, func() ([]domain.HistoryEntry, error) {
		items, err := s.loadSoft(ctx)
		if err != nil {
			return nil, err
		}

		kept := make([]domain.HistoryEntry, 0, len(items))
		for _, item := range items {
			if item.CreatedAt != createdAt {
				kept = append(kept, item)
			}
		}

		if err := s.save(ctx, kept); err != nil {
			return nil, err
		}
		return kept, nil
	})
}

// Clear persists an empty list.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.do(ctx, func() ([]domain.HistoryEntry, error) {
		return nil, s.save(ctx, []domain.HistoryEntry{})
	})
	return err
}

// List returns the persisted list, empty when nothing was stored.
func (s *Store) List(ctx context.Context) ([]domain.HistoryEntry, error) {
	return s.do(ctx, func() ([]domain.HistoryEntry, error) {
		return s.loadSoft(ctx)
	})
}

// Get returns the entry created at createdAt.
func (s *Store) Get(ctx context.Context, createdAt int64) (domain.HistoryEntry, bool, error) {
	items, err := s.List(ctx)
	if err != nil {
		return domain.HistoryEntry{}, false, err
	}

	for _, item := range items {
		if item.CreatedAt == createdAt {
			return item, true, nil
		}
	}
	return domain.HistoryEntry{}, false, nil
}

var errCorrupt = errors.New("corrupt history data")

func (s *Store) load(ctx context.Context) ([]domain.HistoryEntry, error) {
	data, ok, err := s.kv.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	if !ok {
		return []domain.HistoryEntry{}, nil
	}

	var items []domain.HistoryEntry
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", errCorrupt, err)
	}
	if items == nil {
		items = []domain.HistoryEntry{}
	}
	return items, nil
}

// loadSoft treats an unreadable list as empty.
func (s *Store) loadSoft(ctx context.Context) ([]domain.HistoryEntry, error) {
	items, err := s.load(ctx)
	if errors.Is(err, errCorrupt) {
		s.log.Errorf("history: ignoring unreadable list: %v", err)
		return []domain.HistoryEntry{}, nil
	}
	return items, err
}

func (s *Store) save(ctx context.Context, items []domain.HistoryEntry) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	if err := s.kv.Set(ctx, Key, data); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}
