package storage

import (
	"context"
	"encoding/json"
	"errors"
)

// Collection names. Every collection is an insertion-ordered list of JSON
// records persisted as a whole: each mutation is a full read-modify-write
// of one collection, and no operation spans two collections.
const (
	Subjects = "subjects"
	Tasks    = "tasks"
	Sessions = "sessions"
	Exams    = "exams"
)

// Collections lists every named collection a backend manages.
var Collections = []string{Subjects, Tasks, Sessions, Exams}

// ErrNotFound is reported by mutations that matched no record.
var ErrNotFound = errors.New("record not found")

// Store is the keyed-collection persistence facade. Implementations must
// return an empty slice (never nil semantics to callers) for collections
// that were never written, and must treat malformed stored data as an
// empty collection rather than an error.
//
// A Store serializes its own read-modify-write cycles within the process;
// concurrent writers from other processes are not protected against.
type Store interface {
	// List returns all records of a collection in insertion order.
	List(ctx context.Context, collection string) ([]json.RawMessage, error)

	// Add appends a record. The caller supplies a pre-assigned unique id;
	// no uniqueness check is performed here.
	Add(ctx context.Context, collection string, record json.RawMessage) error

	// Update replaces the first record whose idField matches the record's.
	// It reports whether any record matched.
	Update(ctx context.Context, collection, idField string, record json.RawMessage) (bool, error)

	// Delete removes every record whose idField equals id and returns the
	// number removed.
	Delete(ctx context.Context, collection, idField, id string) (int, error)

	// Replace overwrites the whole collection.
	Replace(ctx context.Context, collection string, records []json.RawMessage) error

	// ClearAll irreversibly wipes every collection.
	ClearAll(ctx context.Context) error
}
