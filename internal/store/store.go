// Package store is the persistence boundary of the journal: a text-keyed,
// opaque-blob record layer with whole-value reads and writes. Callers
// serialize and deserialize structured data themselves; readers must
// tolerate absent keys and malformed blobs via ParseOrDefault.
package store

import (
	"context"
	"encoding/json"
)

// The six logical keys. The names (and the JSON blob shapes stored under
// them) match the browser build's localStorage records, so an exported
// localStorage dump can be imported as-is.
const (
	KeyActiveUser = "celadon_user"       // active-session user record
	KeyUsers      = "celadon_db_users"   // registered-users collection
	KeyEntries    = "celadon_entries"    // journal entries collection
	KeyGoals      = "celadon_goals"      // goals collection
	KeyStudio     = "celadon_studio"     // sticker studio collection
	KeyNote       = "celadon_creativity" // free-text note (raw text, not JSON)
)

// Store is a key-value record layer. Values are opaque text blobs. There is
// no transactionality and no migration versioning.
type Store interface {
	// Get returns the raw value for key, with ok=false when the key is absent.
	Get(ctx context.Context, key string) (raw string, ok bool, err error)
	// Set overwrites the full value for key.
	Set(ctx context.Context, key, raw string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// ParseOrDefault unmarshals raw into a T, substituting def when raw is
// empty or malformed. No parse failure escapes this boundary.
func ParseOrDefault[T any](raw string, def T) T {
	if raw == "" {
		return def
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return def
	}
	return v
}
