package mock

import "github.com/fwojciec/docsearch"

// Compile-time interface verification.
var (
	_ docsearch.IndexStore  = (*IndexStore)(nil)
	_ docsearch.RecordStore = (*RecordStore)(nil)
)

// IndexStore is a mock implementation of docsearch.IndexStore.
type IndexStore struct {
	ContainsFn func(key string) bool
	GetFn      func(key string) []string
	InsertFn   func(key, contentID string) error
}

func (s *IndexStore) Contains(key string) bool {
	return s.ContainsFn(key)
}

func (s *IndexStore) Get(key string) []string {
	return s.GetFn(key)
}

func (s *IndexStore) Insert(key, contentID string) error {
	return s.InsertFn(key, contentID)
}

// RecordStore is a mock implementation of docsearch.RecordStore.
type RecordStore struct {
	RecordFn func(id string) (*docsearch.ContentRecord, bool)
}

func (s *RecordStore) Record(id string) (*docsearch.ContentRecord, bool) {
	return s.RecordFn(id)
}
