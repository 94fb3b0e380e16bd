// Package store provides a hierarchical key/value tree with
// subscriptions, persisted in Badger. Paths are slash-separated
// ("chats/a-b/lastMessage"); values are JSON documents. Every mutation
// notifies the subscribers whose watched subtree contains the mutated
// path, each with a fresh snapshot of that subtree.
package store

import "time"

// Entry is one stored document inside a snapshot, in key order.
type Entry struct {
	// Path is the full path of the document.
	Path string
	// Value is the raw JSON document.
	Value []byte
}

// Snapshot is the state of a subtree at one point in time.
type Snapshot struct {
	Path    string
	Entries []Entry
}

// Exists reports whether the subtree holds any document.
func (s Snapshot) Exists() bool {
	return len(s.Entries) > 0
}

// Leaf returns the document stored exactly at the snapshot path,
// or nil when the path only has children.
func (s Snapshot) Leaf() []byte {
	for _, e := range s.Entries {
		if e.Path == s.Path {
			return e.Value
		}
	}
	return nil
}

// Children returns the entries strictly below the snapshot path,
// preserving key order.
func (s Snapshot) Children() []Entry {
	out := make([]Entry, 0, len(s.Entries))
	for _, e := range s.Entries {
		if e.Path != s.Path {
			out = append(out, e)
		}
	}
	return out
}

// SnapshotFunc receives subtree snapshots. Called once on subscribe
// and after every mutation under the watched path, on the mutating
// goroutine.
type SnapshotFunc func(Snapshot)

// OpKind tags a telemetry event.
type OpKind string

const (
	OpWrite  OpKind = "write"
	OpAppend OpKind = "append"
	OpDelete OpKind = "delete"
)

// OpEvent describes one completed mutation. Events are best effort:
// when nobody drains the channel they are dropped.
type OpEvent struct {
	Kind OpKind
	Path string
	At   time.Time
}

// IStore is the tree the feature packages build on.
type IStore interface {
	// Read returns the subtree rooted at path. A missing path yields an
	// empty snapshot, not an error.
	Read(path string) (Snapshot, error)
	// Write sets the document at path, replacing any previous value.
	Write(path string, value any) error
	// Append stores value under a fresh chronologically ordered child of
	// path and returns the child path.
	Append(path string, value any) (string, error)
	// Delete removes the document at path and every descendant.
	Delete(path string) error
	// Subscribe registers fn for the subtree at path. fn runs once
	// immediately with the current state. The returned function cancels
	// the subscription.
	Subscribe(path string, fn SnapshotFunc) (func(), error)
}
