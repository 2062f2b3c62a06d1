// Package todo holds the in-memory todo list and its snapshot persistence.
package todo

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/floatodo/internal/model"
)

// Persister reads and writes a full snapshot of the list.
type Persister interface {
	Load() ([]model.Item, error)
	Save(items []model.Item) error
}

// Store is the authoritative, ordered todo list for one process.
// It is not safe for concurrent use; the UI loop is its only caller.
type Store struct {
	items       []model.Item
	persist     Persister
	logger      *log.Logger
	placeholder string
	saveErr     error
	// dirty is set when the list differs from the last snapshot written
	// or successfully loaded.
	dirty bool
}

// Option configures a Store.
type Option func(*Store)

// WithPlaceholder makes Append reject text equal to the input placeholder.
func WithPlaceholder(p string) Option {
	return func(s *Store) { s.placeholder = strings.TrimSpace(p) }
}

// New returns an empty store. Call Load to restore a snapshot.
func New(p Persister, logger *log.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Store{
		items:   []model.Item{},
		persist: p,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Len returns the number of items.
func (s *Store) Len() int { return len(s.items) }

// Items returns a copy of the list in order.
func (s *Store) Items() []model.Item {
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Item returns the item at i, if any.
func (s *Store) Item(i int) (model.Item, bool) {
	if !s.valid(i) {
		return model.Item{}, false
	}
	return s.items[i], true
}

// Stats counts completed and pending items.
func (s *Store) Stats() (done, pending int) {
	for _, it := range s.items {
		if it.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

// Append adds text as a pending item at the end and persists.
// Empty or placeholder text is ignored.
func (s *Store) Append(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" || (s.placeholder != "" && text == s.placeholder) {
		return false
	}
	s.items = append(s.items, model.Item{Text: text})
	s.dirty = true
	s.persistBestEffort()
	return true
}

// Toggle flips completion of item i. Out-of-range indices are a no-op.
func (s *Store) Toggle(i int) bool {
	if !s.valid(i) {
		s.logger.Debug("toggle ignored", "index", i, "len", len(s.items))
		return false
	}
	s.items[i].Completed = !s.items[i].Completed
	s.dirty = true
	s.persistBestEffort()
	return true
}

// Delete removes item i. Out-of-range indices are a no-op.
func (s *Store) Delete(i int) bool {
	if !s.valid(i) {
		s.logger.Debug("delete ignored", "index", i, "len", len(s.items))
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.dirty = true
	s.persistBestEffort()
	return true
}

// Save writes the whole list.
func (s *Store) Save() error {
	if s.persist == nil {
		return nil
	}
	if err := s.persist.Save(s.Items()); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// Dirty reports whether the list has changes that are not on disk yet.
// A failed Load does not make the store dirty, so an unreadable snapshot
// is never replaced unless the user edits the list.
func (s *Store) Dirty() bool { return s.dirty }

// Load replaces the list with the stored snapshot. On failure the list is
// left as it was and the error is logged and returned.
func (s *Store) Load() error {
	if s.persist == nil {
		return nil
	}
	items, err := s.persist.Load()
	if err != nil {
		s.logger.Error("load todos", "err", err)
		return err
	}
	if items == nil {
		items = []model.Item{}
	}
	s.items = items
	s.dirty = false
	s.logger.Debug("loaded todos", "count", len(items))
	return nil
}

func (s *Store) valid(i int) bool { return i >= 0 && i < len(s.items) }

// persistBestEffort saves after a mutation. A failed write is only logged;
// the next mutation writes the full snapshot again.
func (s *Store) persistBestEffort() {
	s.saveErr = s.Save()
	if s.saveErr != nil {
		s.logger.Error("save todos", "err", s.saveErr)
	}
}

// SaveErr reports the outcome of the write made by the last mutation.
func (s *Store) SaveErr() error { return s.saveErr }
