// Package ledger tracks which physical repository each (requester, task)
// pair deployed to, and decides whether a request creates a new repository
// or updates the existing one.
package ledger

import (
	"time"

	"go.uber.org/zap"
)

// nowFunc is swapped out by tests to pin timestamps.
var nowFunc = time.Now

// Ledger owns the deployment mapping: an in-memory cache loaded once at
// startup and flushed to the durable store after every successful publish.
type Ledger struct {
	log   *zap.Logger
	store Base
	cache *concurrentMap[string, Entry]
}

func New(store Base) (*Ledger, error) {
	l := &Ledger{
		log:   zap.L().With(zap.String("facility", "ledger")),
		store: store,
		cache: newConcurrentMap[string, Entry](),
	}

	entries, err := store.Load()
	if err != nil {
		return nil, err
	}
	l.cache.Replace(entries)
	l.log.Info("Loaded deployment ledger", zap.Int("records", len(entries)))

	return l, nil
}

// Resolve computes the deployment key for the request and the action to
// take. It does not mutate the ledger.
func (l *Ledger) Resolve(email, taskID string, round int) (string, Action) {
	key := Key(email, taskID)

	var existing *Entry
	if entry, ok := l.cache.MaybeGet(key); ok {
		existing = &entry
	}

	action := Resolve(existing, round)
	if action.NoPrecedent {
		l.log.Warn("No round-1 deployment found for round-2 request, creating new repository",
			zap.String("deployment_key", key))
	}
	return key, action
}

// RecordCreate overwrites the entry for key with a fresh repository
// identity. Repeated round-1 deployments for one key keep exactly one
// entry, pointing at the newest repository.
func (l *Ledger) RecordCreate(key, repoName string) {
	l.cache.Set(key, Entry{
		RepoName:  repoName,
		CreatedAt: nowFunc().UTC().Format(time.RFC3339),
	})
	l.flush()
}

// RecordUpdate refreshes the entry for key after an in-place update,
// keeping the original creation timestamp.
func (l *Ledger) RecordUpdate(key, repoName string) {
	entry, _ := l.cache.MaybeGet(key)
	entry.RepoName = repoName
	entry.UpdatedAt = nowFunc().UTC().Format(time.RFC3339)
	l.cache.Set(key, entry)
	l.flush()
}

func (l *Ledger) Get(key string) (Entry, bool) {
	return l.cache.MaybeGet(key)
}

func (l *Ledger) Len() int {
	return l.cache.Len()
}

// flush persists the whole document. Failures are logged but do not fail
// the deployment; durability is best-effort.
func (l *Ledger) flush() {
	if err := l.store.Save(l.cache.Map()); err != nil {
		l.log.Error("Could not save deployment ledger", zap.Error(err))
	}
}
