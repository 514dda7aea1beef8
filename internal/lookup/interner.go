package lookup

import "sync"

// Interner maps selector hashes back to their source strings, for error
// messages and for reconstructing a human-readable selector from a
// SlotDescriptor.SelectorHash during debugging. Compilation is the only
// writer (every selector a program can ever send is known once its
// methods are compiled), so reads vastly outnumber writes; the locking
// discipline mirrors the teacher's internal/index.Index RWMutex-guarded
// map rather than anything lock-free.
type Interner struct {
	mu     sync.RWMutex
	byHash map[uint64]string
}

// NewInterner builds an empty Interner.
func NewInterner() *Interner {
	return &Interner{byHash: make(map[uint64]string)}
}

// Intern records selector's hash-to-string mapping and returns the hash.
// Interning the same selector twice is harmless; hashing is deterministic
// so the second call just overwrites the entry with an identical string.
func (i *Interner) Intern(selector string) uint64 {
	hash := Hash(selector)
	i.mu.Lock()
	i.byHash[hash] = selector
	i.mu.Unlock()
	return hash
}

// Lookup returns the selector string previously interned for hash, if any.
func (i *Interner) Lookup(hash uint64) (string, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	selector, ok := i.byHash[hash]
	return selector, ok
}

// Len reports how many distinct selectors are currently interned.
func (i *Interner) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.byHash)
}
