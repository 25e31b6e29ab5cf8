package bencode

// List is an ordered sequence of bencode values. Order is significant and is
// preserved exactly by both Encode and Decode.
type List []any

// Dict is a mapping from byte-string keys to bencode values which preserves
// insertion order. Keys are held as given; a key which is not a string or a
// byte slice is still stored, and is reported by Encode rather than coerced.
type Dict struct {
	entries []dictEntry
	index   map[string]int
}

type dictEntry struct {
	key   any
	value any
}

// NewDict allocates the memory for a Dict.
func NewDict() *Dict {
	return &Dict{index: make(map[string]int)}
}

// Put binds key to value. A previous binding for the same byte-string key is
// overwritten in place, keeping its original position.
func (d *Dict) Put(key, value any) {
	if k, ok := stringKey(key); ok {
		if i, present := d.index[k]; present {
			d.entries[i].value = value
			return
		}
		d.index[k] = len(d.entries)
	}
	d.entries = append(d.entries, dictEntry{key, value})
}

// Get returns the value bound to key and whether the key is present.
func (d *Dict) Get(key string) (any, bool) {
	i, ok := d.index[key]
	if !ok {
		return nil, false
	}
	return d.entries[i].value, true
}

// Len returns the number of entries.
func (d *Dict) Len() int {
	return len(d.entries)
}

// Keys returns the byte-string keys in insertion order.
func (d *Dict) Keys() []string {
	keys := make([]string, 0, len(d.entries))
	for _, e := range d.entries {
		if k, ok := stringKey(e.key); ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// Each calls f for every entry in insertion order, stopping at the first
// error. Keys decoded from the wire are always []byte.
func (d *Dict) Each(f func(key, value any) error) error {
	for _, e := range d.entries {
		if err := f(e.key, e.value); err != nil {
			return err
		}
	}
	return nil
}

func stringKey(key any) (string, bool) {
	switch k := key.(type) {
	case string:
		return k, true
	case []byte:
		return string(k), true
	default:
		return "", false
	}
}
