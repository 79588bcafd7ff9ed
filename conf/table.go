package conf

import "sort"

// table holds the key set and the current values of a single
// option type. Keys are kept sorted so load order and output
// are deterministic.
type table[T any] struct {
	keys   []string
	values map[string]T
}

func newTable[T any]() *table[T] {
	return &table[T]{
		values: make(map[string]T),
	}
}

// register adds key to the key set, if not yet present, and
// stores def as its value.
func (t *table[T]) register(key string, def T) {
	idx := sort.SearchStrings(t.keys, key)
	if idx == len(t.keys) || t.keys[idx] != key {
		t.keys = append(t.keys, "")
		copy(t.keys[idx+1:], t.keys[idx:])
		t.keys[idx] = key
	}
	t.values[key] = def
}

func (t *table[T]) has(key string) bool {
	idx := sort.SearchStrings(t.keys, key)
	return idx < len(t.keys) && t.keys[idx] == key
}

func (t *table[T]) get(key string) (T, bool) {
	v, ok := t.values[key]
	return v, ok
}

func (t *table[T]) set(key string, value T) {
	t.values[key] = value
}

// clone returns a copy of t. If dup is non-nil it is used to
// copy each value.
func (t *table[T]) clone(dup func(T) T) *table[T] {
	c := &table[T]{
		keys:   append([]string(nil), t.keys...),
		values: make(map[string]T, len(t.values)),
	}
	for k, v := range t.values {
		if dup != nil {
			v = dup(v)
		}
		c.values[k] = v
	}
	return c
}

func copyFloats(v []float64) []float64 {
	if v == nil {
		return nil
	}
	return append([]float64(nil), v...)
}
