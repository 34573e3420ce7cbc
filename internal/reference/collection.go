package reference

// Entry is a reference stored in a collection together with its derived key.
type Entry struct {
	Key string `json:"key"`
	Reference
}

// Collection is an ordered, key-deduplicated set of references.
//
// Insertion order is semantically significant: numeric citation styles
// number references by position, so existing entries are never reordered.
// All mutation goes through Merge and Remove.
type Collection struct {
	entries []Entry
	index   map[string]int // key -> position in entries
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{index: make(map[string]int)}
}

// Merge adds references to the collection, deriving a key for each.
// A reference whose key already exists is discarded (first-write-wins);
// new references are appended in the order given. Returns the keys of the
// entries now representing each input, in input order.
func (c *Collection) Merge(refs ...Reference) []string {
	keys := make([]string, 0, len(refs))
	for _, r := range refs {
		key := DeriveKey(r)
		if _, ok := c.index[key]; !ok {
			c.index[key] = len(c.entries)
			c.entries = append(c.entries, Entry{Key: key, Reference: r})
		}
		keys = append(keys, key)
	}
	return keys
}

// Resolve looks up a reference by key.
func (c *Collection) Resolve(key string) (Reference, bool) {
	i, ok := c.index[key]
	if !ok {
		return Reference{}, false
	}
	return c.entries[i].Reference, true
}

// Position returns the 1-based insertion position of a key. This is the
// number a numeric style assigns when no numbering map is supplied.
func (c *Collection) Position(key string) (int, bool) {
	i, ok := c.index[key]
	if !ok {
		return 0, false
	}
	return i + 1, true
}

// Has reports whether a key exists in the collection.
func (c *Collection) Has(key string) bool {
	_, ok := c.index[key]
	return ok
}

// Entries returns the stored entries in insertion order. The returned
// slice must not be modified.
func (c *Collection) Entries() []Entry {
	return c.entries
}

// Len returns the number of stored references.
func (c *Collection) Len() int {
	return len(c.entries)
}

// Remove deletes a reference by key. Markers still naming the key resolve
// to nothing afterwards; that is the documented behavior for explicit
// user removal, not an error.
func (c *Collection) Remove(key string) bool {
	i, ok := c.index[key]
	if !ok {
		return false
	}
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	delete(c.index, key)
	for j := i; j < len(c.entries); j++ {
		c.index[c.entries[j].Key] = j
	}
	return true
}
