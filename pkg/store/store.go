package store

import (
	"github.com/ssargent/mconfig/pkg/codec"
)

// Store is an in-memory key-value collection with a fixed-size serialized
// form. It is a plain value: it owns no file handles and never touches the
// filesystem; callers decide when and where a serialized buffer is written.
//
// A Store is not safe for concurrent use, and mutating it while an Iterator
// is active is a caller error.
//
// The zero value is an empty store with no secret, ready for use.
type Store struct {
	version byte
	entries codec.Entries
	secret  string
}

// Insert adds key with its optional value, replacing any previous entry for
// the same key. It fails with codec.ErrEmptyKey for an empty key (a zero
// key length is the buffer format's end-of-data terminator, so an empty key
// can never be encoded), with codec.ErrKeyTooBig or codec.ErrValueTooBig
// when key or value exceed 255 UTF-8 bytes, and with codec.ErrTooBig when
// the projected serialized size would reach the fixed buffer size.
//
// The size projection is conservative: replacing an existing key is counted
// as if a second entry were added, so an insert near the capacity limit can
// be rejected even though the replacement would actually fit.
//
// It returns the previous value and whether the key already existed.
func (s *Store) Insert(key string, value codec.Value) (codec.Value, bool, error) {
	if key == "" {
		return codec.Value{}, false, codec.ErrEmptyKey
	}
	if len(key) > codec.MaxKeyLen {
		return codec.Value{}, false, codec.ErrKeyTooBig
	}
	if value.Valid && len(value.Text) > codec.MaxValueLen {
		return codec.Value{}, false, codec.ErrValueTooBig
	}

	projected := codec.HeaderSize + encodedLen(key, value)
	for k, v := range s.entries {
		projected += encodedLen(k, v)
	}
	if projected >= codec.MConfigSize {
		return codec.Value{}, false, codec.ErrTooBig
	}

	if s.entries == nil {
		s.entries = make(codec.Entries)
	}
	prev, existed := s.entries[key]
	s.entries[key] = value
	return prev, existed, nil
}

// Get retrieves the value for key. The second return distinguishes an
// absent key from a key stored without a value (a zero codec.Value).
func (s *Store) Get(key string) (codec.Value, bool) {
	value, ok := s.entries[key]
	return value, ok
}

// TryGet retrieves the value for key, failing with codec.ErrMissingKey when
// the key is absent.
func (s *Store) TryGet(key string) (codec.Value, error) {
	value, ok := s.entries[key]
	if !ok {
		return codec.Value{}, codec.ErrMissingKey
	}
	return value, nil
}

// ContainsKey reports whether key is present.
func (s *Store) ContainsKey(key string) bool {
	_, ok := s.entries[key]
	return ok
}

// Remove deletes key if present, returning the removed value and whether
// the key existed.
func (s *Store) Remove(key string) (codec.Value, bool) {
	value, ok := s.entries[key]
	if ok {
		delete(s.entries, key)
	}
	return value, ok
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// SetSecret replaces the secret used by future Bytes calls. An empty string
// disables obfuscation. Previously produced buffers are unaffected.
func (s *Store) SetSecret(secret string) {
	s.secret = secret
}

// Bytes serializes the store into a fresh fixed-size buffer, obfuscated
// with the current secret if one is set.
func (s *Store) Bytes() []byte {
	return codec.Serialize(s.entries, s.version, s.secret)
}

// Iter returns an iterator over the entries. The key set is captured when
// Iter is called and values are read from the live store as the iterator
// advances; the store must not be mutated until iteration finishes.
// Iteration order is unspecified.
func (s *Store) Iter() *Iterator {
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	return &Iterator{store: s, keys: keys, pos: -1}
}

// Iterator yields one entry per Next call.
type Iterator struct {
	store *Store
	keys  []string
	pos   int
}

// Next advances to the next entry, reporting whether one is available.
func (it *Iterator) Next() bool {
	it.pos++
	return it.pos < len(it.keys)
}

// Key returns the key at the current position.
func (it *Iterator) Key() string {
	return it.keys[it.pos]
}

// Value returns the value at the current position.
func (it *Iterator) Value() codec.Value {
	return it.store.entries[it.keys[it.pos]]
}

// encodedLen is the serialized footprint of one entry: the key length byte,
// the key bytes, the value length byte and any value bytes.
func encodedLen(key string, value codec.Value) int {
	n := 1 + len(key) + 1
	if value.Valid {
		n += len(value.Text)
	}
	return n
}
