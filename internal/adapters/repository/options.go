package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithSet seeds a set at construction. Blank names are ignored.
func WithSet(kind Kind, name string, items []Item) Option {
	return func(s *MemoryStore) {
		if name == "" {
			return
		}
		cp := make([]Item, len(items))
		copy(cp, items)
		s.sets[key{kind, name}] = cp
	}
}
