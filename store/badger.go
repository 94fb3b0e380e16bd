package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const telemetryBuffer = 256

// BadgerStore keeps the tree in a Badger database. Document paths map
// one to one onto Badger keys, so a subtree read is a prefix scan and
// comes back in key order. Mutations and their subscriber fan-out run
// under one mutex: every subscriber sees snapshots in the order the
// writes landed.
type BadgerStore struct {
	db     *badger.DB
	logger *slog.Logger

	mu     sync.Mutex
	subs   map[int]subscription
	nextID int

	events chan OpEvent
}

type subscription struct {
	path string
	fn   SnapshotFunc
}

// NewBadgerStore opens (or creates) the database at dir.
func NewBadgerStore(dir string, logger *slog.Logger) (*BadgerStore, error) {
	return NewBadgerStoreWithOptions(badger.DefaultOptions(dir).WithLogger(nil), logger)
}

// NewBadgerStoreWithOptions opens the database with caller-tuned
// options, for tooling and tests that cap the value log.
func NewBadgerStoreWithOptions(opts badger.Options, logger *slog.Logger) (*BadgerStore, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger at %s: %w", opts.Dir, err)
	}
	return &BadgerStore{
		db:     db,
		logger: logger,
		subs:   make(map[int]subscription),
		events: make(chan OpEvent, telemetryBuffer),
	}, nil
}

// Events exposes the telemetry stream. Sends never block writers;
// undrained events are dropped.
func (s *BadgerStore) Events() <-chan OpEvent {
	return s.events
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying database for read-only tooling like the
// debug server and the viewer.
func (s *BadgerStore) DB() *badger.DB {
	return s.db
}

func (s *BadgerStore) Read(path string) (Snapshot, error) {
	if err := checkPath(path); err != nil {
		return Snapshot{}, err
	}
	snap := Snapshot{Path: path}
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		snap.Entries, err = collect(txn, path)
		return err
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return snap, nil
}

func (s *BadgerStore) Write(path string, value any) error {
	if err := checkPath(path); err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(path), raw)
	})
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	s.afterMutation(OpWrite, path)
	return nil
}

func (s *BadgerStore) Append(path string, value any) (string, error) {
	if err := checkPath(path); err != nil {
		return "", err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", path, err)
	}
	child := path + "/" + pushID()

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(child), raw)
	})
	if err != nil {
		return "", fmt.Errorf("appending under %s: %w", path, err)
	}
	s.afterMutation(OpAppend, child)
	return child, nil
}

func (s *BadgerStore) Delete(path string) error {
	if err := checkPath(path); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Update(func(txn *badger.Txn) error {
		doomed, err := keysUnder(txn, path)
		if err != nil {
			return err
		}
		for _, k := range doomed {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting %s: %w", path, err)
	}
	s.afterMutation(OpDelete, path)
	return nil
}

func (s *BadgerStore) Subscribe(path string, fn SnapshotFunc) (func(), error) {
	if err := checkPath(path); err != nil {
		return nil, err
	}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = subscription{path: path, fn: fn}
	snap, err := s.snapshotLocked(path)
	if err != nil {
		delete(s.subs, id)
		s.mu.Unlock()
		return nil, err
	}
	// Initial delivery happens under the same mutex as the mutation
	// fan-out; a concurrent writer cannot slip a newer snapshot in
	// before this one, so the callback stream never goes backwards.
	fn(snap)
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
	return cancel, nil
}

// afterMutation runs with s.mu held. Subscriber callbacks execute on
// the mutating goroutine; a slow callback slows writers, which is the
// ordering guarantee subscribers rely on.
func (s *BadgerStore) afterMutation(kind OpKind, path string) {
	for _, sub := range s.subs {
		if !covers(sub.path, path) {
			continue
		}
		snap, err := s.snapshotLocked(sub.path)
		if err != nil {
			s.logger.Error("snapshot after mutation failed",
				slog.String("path", sub.path), slog.Any("error", err))
			continue
		}
		sub.fn(snap)
	}

	select {
	case s.events <- OpEvent{Kind: kind, Path: path, At: time.Now()}:
	default:
		s.logger.Debug("telemetry event dropped", slog.String("path", path))
	}
}

func (s *BadgerStore) snapshotLocked(path string) (Snapshot, error) {
	snap := Snapshot{Path: path}
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		snap.Entries, err = collect(txn, path)
		return err
	})
	return snap, err
}

// covers reports whether the subtree at watched contains mutated.
// A watcher of a subtree also fires when an ancestor is deleted,
// since that wipes the watched range.
func covers(watched, mutated string) bool {
	if watched == mutated {
		return true
	}
	if strings.HasPrefix(mutated, watched+"/") {
		return true
	}
	return strings.HasPrefix(watched, mutated+"/")
}

func collect(txn *badger.Txn, path string) ([]Entry, error) {
	var entries []Entry

	item, err := txn.Get([]byte(path))
	switch err {
	case nil:
		val, err := item.ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Path: path, Value: val})
	case badger.ErrKeyNotFound:
	default:
		return nil, err
	}

	prefix := []byte(path + "/")
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		val, err := item.ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Path: string(item.KeyCopy(nil)), Value: val})
	}
	return entries, nil
}

func keysUnder(txn *badger.Txn, path string) ([][]byte, error) {
	var keys [][]byte

	if _, err := txn.Get([]byte(path)); err == nil {
		keys = append(keys, []byte(path))
	} else if err != badger.ErrKeyNotFound {
		return nil, err
	}

	prefix := []byte(path + "/")
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	return keys, nil
}

// pushID yields ids that sort lexicographically by creation time, so a
// prefix scan returns children in append order.
func pushID() string {
	return fmt.Sprintf("%019d-%s", time.Now().UnixNano(), uuid.NewString())
}

func checkPath(path string) error {
	if path == "" || strings.HasPrefix(path, "/") || strings.HasSuffix(path, "/") {
		return fmt.Errorf("invalid path %q", path)
	}
	return nil
}
