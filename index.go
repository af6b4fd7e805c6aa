package docsearch

import "strings"

// KeyAlphabet is the set of characters index keys may contain. The prefix
// tree is restricted to this alphabet; a key outside it is a build-time
// defect in the producing pipeline, not a runtime condition to recover from.
const KeyAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789 "

// ValidKey reports whether every character of key is in KeyAlphabet.
func ValidKey(key string) bool {
	for i := 0; i < len(key); i++ {
		if !strings.ContainsRune(KeyAlphabet, rune(key[i])) {
			return false
		}
	}
	return true
}

// IndexStore maps chunk keys to ordered content-id sequences. Lookups are
// exact match only; no prefix search is exposed beyond the keys explicitly
// inserted.
//
// Implementations are mutated only by the single-threaded build. A loaded
// store is immutable and safe for concurrent readers without locking.
type IndexStore interface {
	// Contains reports whether the exact key has been inserted.
	Contains(key string) bool

	// Get returns the ordered content-id sequence for the exact key.
	// Duplicates are preserved; order is insertion order across the
	// build. Get returns nil for unknown keys.
	Get(key string) []string

	// Insert appends contentID to the key's sequence, creating the
	// sequence if absent. It returns EINVALID if the key contains a
	// character outside KeyAlphabet.
	Insert(key, contentID string) error
}
