package store

import (
	"github.com/ssargent/mconfig/pkg/codec"
)

// Builder accumulates the optional inputs for a Store: a secret and raw
// buffer bytes to load. Both are independent; an empty builder produces an
// empty store.
type Builder struct {
	secret string
	raw    []byte
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Secret sets the secret used to deobfuscate loaded bytes and to obfuscate
// buffers the built store serializes later.
func (b *Builder) Secret(secret string) *Builder {
	b.secret = secret
	return b
}

// Load supplies raw buffer bytes, which may or may not be obfuscated.
func (b *Builder) Load(raw []byte) *Builder {
	b.raw = raw
	return b
}

// Build constructs the Store. When bytes were loaded they are validated and
// parsed first, and any codec error is returned unchanged. A wrong secret
// is likely, but not guaranteed, to surface as a parse error; it can also
// produce a cleanly decoded store with garbled entries.
func (b *Builder) Build() (*Store, error) {
	entries := make(codec.Entries)
	if b.raw != nil {
		parsed, err := codec.Parse(b.raw, b.secret)
		if err != nil {
			return nil, err
		}
		entries = parsed
	}

	return &Store{
		version: codec.LatestVersion,
		entries: entries,
		secret:  b.secret,
	}, nil
}

// FromEntries builds a Store holding a copy of entries, with the latest
// version and no secret. Keys and values are validated the way Insert
// validates them, and the combined serialized size must fit the fixed
// buffer.
func FromEntries(entries codec.Entries) (*Store, error) {
	projected := codec.HeaderSize
	for key, value := range entries {
		if key == "" {
			return nil, codec.ErrEmptyKey
		}
		if len(key) > codec.MaxKeyLen {
			return nil, codec.ErrKeyTooBig
		}
		if value.Valid && len(value.Text) > codec.MaxValueLen {
			return nil, codec.ErrValueTooBig
		}
		projected += encodedLen(key, value)
		if projected >= codec.MConfigSize {
			return nil, codec.ErrTooBig
		}
	}

	copied := make(codec.Entries, len(entries))
	for key, value := range entries {
		copied[key] = value
	}

	return &Store{
		version: codec.LatestVersion,
		entries: copied,
	}, nil
}
