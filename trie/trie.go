// Package trie provides the prefix-tree index store mapping chunk keys to
// ordered content-id sequences, with file persistence.
package trie

import (
	"encoding/gob"
	"fmt"
	"os"
	"sort"

	"github.com/fwojciec/docsearch"
)

// Compile-time interface verification.
var _ docsearch.IndexStore = (*Trie)(nil)

// Trie is a prefix tree over docsearch.KeyAlphabet. It is mutated only
// during the single-threaded build; once loaded by a serving process it is
// read-only and safe for concurrent readers.
type Trie struct {
	root *node
	keys int
}

type node struct {
	children map[byte]*node
	ids      []string
}

// New returns an empty trie.
func New() *Trie {
	return &Trie{root: &node{}}
}

// Contains reports whether the exact key has been inserted.
func (t *Trie) Contains(key string) bool {
	n := t.lookup(key)
	return n != nil && n.ids != nil
}

// Get returns the ordered content-id sequence for the exact key.
// Duplicates are preserved in insertion order. Unknown keys return nil.
func (t *Trie) Get(key string) []string {
	n := t.lookup(key)
	if n == nil {
		return nil
	}
	return n.ids
}

func (t *Trie) lookup(key string) *node {
	n := t.root
	for i := 0; i < len(key); i++ {
		child, ok := n.children[key[i]]
		if !ok {
			return nil
		}
		n = child
	}
	return n
}

// Insert appends contentID to the key's sequence, creating it if absent.
// Insertion order across the whole build is preserved; there is no sorting
// and no deduplication.
func (t *Trie) Insert(key, contentID string) error {
	if !docsearch.ValidKey(key) {
		return docsearch.Errorf(docsearch.EINVALID, "index key %q contains characters outside the key alphabet", key)
	}

	n := t.root
	for i := 0; i < len(key); i++ {
		if n.children == nil {
			n.children = make(map[byte]*node)
		}
		child, ok := n.children[key[i]]
		if !ok {
			child = &node{}
			n.children[key[i]] = child
		}
		n = child
	}
	if n.ids == nil {
		t.keys++
	}
	n.ids = append(n.ids, contentID)
	return nil
}

// Len returns the number of distinct keys in the trie.
func (t *Trie) Len() int {
	return t.keys
}

// Keys returns all keys in lexicographic order.
func (t *Trie) Keys() []string {
	keys := make([]string, 0, t.keys)
	walk(t.root, nil, func(key string, _ []string) {
		keys = append(keys, key)
	})
	return keys
}

func walk(n *node, prefix []byte, fn func(key string, ids []string)) {
	if n.ids != nil {
		fn(string(prefix), n.ids)
	}
	if len(n.children) == 0 {
		return
	}
	bytes := make([]byte, 0, len(n.children))
	for b := range n.children {
		bytes = append(bytes, b)
	}
	sort.Slice(bytes, func(i, j int) bool { return bytes[i] < bytes[j] })
	for _, b := range bytes {
		walk(n.children[b], append(prefix, b), fn)
	}
}

// entry is the persisted form of one key and its posting list.
type entry struct {
	Key string
	IDs []string
}

// Save serializes the trie to path. The caller is responsible for atomic
// replacement of a previously persisted index (see the fs package).
func (t *Trie) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create index file: %w", err)
	}

	entries := make([]entry, 0, t.keys)
	walk(t.root, nil, func(key string, ids []string) {
		entries = append(entries, entry{Key: key, IDs: ids})
	})

	if err := gob.NewEncoder(f).Encode(entries); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode index: %w", err)
	}
	return f.Close()
}

// Load deserializes a trie from path. The loaded trie reproduces the exact
// key-to-sequence mapping that was saved.
func Load(path string) (*Trie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index file: %w", err)
	}
	defer f.Close()

	var entries []entry
	if err := gob.NewDecoder(f).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode index: %w", err)
	}

	t := New()
	for _, e := range entries {
		for _, id := range e.IDs {
			if err := t.Insert(e.Key, id); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}
