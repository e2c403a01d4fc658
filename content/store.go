package content

import (
	"sort"
	"sync"

	"github.com/miosa/osa-gallery/gallery"
)

// Store holds loaded blocks by source id. It implements
// gallery.ContentSource. Preload writes concurrently; lookups happen on the
// UI loop.
type Store struct {
	mu     sync.RWMutex
	blocks map[string]*Block
}

var _ gallery.ContentSource = (*Store)(nil)

// NewStore seeds a store with the manifest's sources.
func NewStore(m *Manifest) *Store {
	s := &Store{blocks: make(map[string]*Block, len(m.Sources))}
	for id, src := range m.Sources {
		s.blocks[id] = &Block{
			ID:    id,
			Title: src.Title,
			Body:  src.Body,
			URL:   src.URL,
			Image: src.Image,
		}
	}
	return s
}

// Lookup returns a copy of the block ref names. ref may carry a leading "#".
func (s *Store) Lookup(ref string) (gallery.Content, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blocks[SourceID(ref)]
	if !ok {
		return nil, false
	}
	return b.Clone(), true
}

// Block returns the stored block itself, or nil.
func (s *Store) Block(id string) *Block {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.blocks[id]
}

// Put stores b under its id, replacing any previous block.
func (s *Store) Put(b *Block) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks[b.ID] = b
}

// update applies fn to the block id under the write lock.
func (s *Store) update(id string, fn func(*Block)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.blocks[id]; ok {
		fn(b)
	}
}

// IDs returns the stored ids in sorted order.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.blocks))
	for id := range s.blocks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of blocks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blocks)
}
