// Package indexer provides an in-memory substring index over short text
// fields, backed by trigram postings stored as Roaring bitmaps.
package indexer

import (
	"strings"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

// Indexer maps trigrams to the documents whose fields contain them.
//
// Document IDs are assigned sequentially by Add, so iterating a candidate
// bitmap in ascending order visits documents in insertion order. Callers
// rely on this for stable ranking.
type Indexer struct {
	mu sync.RWMutex

	// fields[docID] holds the lowercased searchable fields of a document.
	fields [][]string
	grams  map[string]*roaring.Bitmap
}

// New creates an empty Indexer.
func New() *Indexer {
	return &Indexer{
		fields: make([][]string, 0, 256),
		grams:  make(map[string]*roaring.Bitmap),
	}
}

// Add indexes a document made of the given fields and returns its docID.
// Fields are lowercased but not trimmed; grams never span two fields.
func (idx *Indexer) Add(fields ...string) uint32 {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	docID := uint32(len(idx.fields))
	lowered := make([]string, len(fields))
	for i, f := range fields {
		lowered[i] = strings.ToLower(f)
		for _, g := range Trigrams(lowered[i]) {
			idx.addToBitmap(g, docID)
		}
	}
	idx.fields = append(idx.fields, lowered)
	return docID
}

// DocCount returns the number of indexed documents.
func (idx *Indexer) DocCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.fields)
}

// Candidates returns the documents that may contain q (already normalized).
// For queries of at least three runes this is the intersection of the
// postings of every trigram of q; shorter queries return every document.
// The result is a fresh bitmap owned by the caller.
func (idx *Indexer) Candidates(q string) *roaring.Bitmap {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.candidatesLocked(q)
}

func (idx *Indexer) candidatesLocked(q string) *roaring.Bitmap {
	grams := Trigrams(q)
	if len(grams) == 0 {
		all := roaring.New()
		if n := len(idx.fields); n > 0 {
			all.AddRange(0, uint64(n))
		}
		return all
	}

	var result *roaring.Bitmap
	for _, g := range grams {
		bm, ok := idx.grams[g]
		if !ok {
			return roaring.New()
		}
		if result == nil {
			result = bm.Clone()
		} else {
			result.And(bm)
		}
		if result.IsEmpty() {
			return result
		}
	}
	return result
}

// Contains reports whether any field of docID contains q as a substring.
func (idx *Indexer) Contains(docID uint32, q string) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.containsLocked(docID, q)
}

func (idx *Indexer) containsLocked(docID uint32, q string) bool {
	if int(docID) >= len(idx.fields) {
		return false
	}
	for _, f := range idx.fields[docID] {
		if strings.Contains(f, q) {
			return true
		}
	}
	return false
}

// Search returns, in ascending docID order, the documents with a field
// containing q. q must already be normalized; an empty q matches nothing.
// Stops after limit matches when limit > 0.
func (idx *Indexer) Search(q string, limit int) []uint32 {
	if q == "" {
		return nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var matches []uint32
	it := idx.candidatesLocked(q).Iterator()
	for it.HasNext() {
		docID := it.Next()
		// Trigram postings only prove each gram occurs somewhere; verify.
		if !idx.containsLocked(docID, q) {
			continue
		}
		matches = append(matches, docID)
		if limit > 0 && len(matches) >= limit {
			break
		}
	}
	return matches
}

// addToBitmap adds a docID to the posting list of a trigram.
func (idx *Indexer) addToBitmap(gram string, docID uint32) {
	bm, exists := idx.grams[gram]
	if !exists {
		bm = roaring.New()
		idx.grams[gram] = bm
	}
	bm.Add(docID)
}
