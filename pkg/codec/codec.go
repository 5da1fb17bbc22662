package codec

import (
	"bytes"
	"crypto/rand"
	"unicode/utf8"
)

// magicHeader identifies an mconfig buffer ("MCONF").
var magicHeader = [5]byte{0x4d, 0x43, 0x4f, 0x4e, 0x46}

// Buffer layout constants. These are fixed by the version 0 format and must
// never change.
const (
	// MConfigSize is the exact size in bytes of every serialized buffer.
	MConfigSize = 8192

	// HeaderSize covers the magic bytes plus the version byte.
	HeaderSize = len(magicHeader) + 1

	// VersionIndex is the offset of the version byte within a buffer.
	VersionIndex = len(magicHeader)

	// MaxKeyLen and MaxValueLen bound the UTF-8 byte length of keys and
	// values; both are encoded with a single length byte.
	MaxKeyLen   = 255
	MaxValueLen = 255

	// LatestVersion is the only version this codec reads or writes.
	LatestVersion byte = 0
)

// Serialize encodes entries into a fresh MConfigSize buffer: magic bytes,
// version byte, length-prefixed entries in arbitrary order, a zero
// terminator, and random padding up to the fixed size. If secret is
// non-empty, the whole region after the header is XORed against it.
//
// The store layer bounds entry sizes and the total serialized footprint
// before accepting entries, so an entry set that cannot fit is a caller bug:
// Serialize panics rather than returning an error.
func Serialize(entries Entries, version byte, secret string) []byte {
	buf := make([]byte, 0, MConfigSize)
	buf = append(buf, magicHeader[:]...)
	buf = append(buf, version)

	for key, value := range entries {
		// A zero key length is the end-of-data terminator, so an empty key
		// can never be encoded; the store rejects it at insert time.
		if len(key) == 0 {
			panic("mconfig: empty key cannot be encoded")
		}
		if len(key) > MaxKeyLen {
			panic("mconfig: key exceeds MaxKeyLen")
		}
		buf = append(buf, byte(len(key)))
		buf = append(buf, key...)

		if value.Valid {
			if len(value.Text) > MaxValueLen {
				panic("mconfig: value exceeds MaxValueLen")
			}
			buf = append(buf, byte(len(value.Text)))
			buf = append(buf, value.Text...)
		} else {
			buf = append(buf, 0)
		}
	}
	buf = append(buf, 0) // end of data
	if len(buf) > MConfigSize {
		panic("mconfig: serialized entries exceed the fixed buffer size")
	}

	// Pad the remainder with random bytes. The padding carries no meaning
	// and is never read back.
	padding := buf[len(buf):MConfigSize]
	if _, err := rand.Read(padding); err != nil {
		panic("mconfig: reading random padding: " + err.Error())
	}
	buf = buf[:MConfigSize]

	xorRegion(buf[HeaderSize:], secret)
	return buf
}

// Parse validates buf and decodes it back into its entries, reversing the
// obfuscation with secret first. Buffers shorter than MConfigSize are
// accepted as long as the header is intact and the entry region terminates
// cleanly.
//
// A wrong secret passes the structural header checks unharmed (the header is
// never obfuscated) but garbles the entry region, which usually, not always,
// surfaces as one of the decode errors.
func Parse(buf []byte, secret string) (Entries, error) {
	if len(buf) < HeaderSize {
		return nil, ErrTooShort
	}
	if len(buf) > MConfigSize {
		return nil, ErrTooBig
	}
	if !bytes.Equal(buf[:len(magicHeader)], magicHeader[:]) {
		return nil, ErrBadHeader
	}
	if buf[VersionIndex] != LatestVersion {
		return nil, ErrUnknownVersion
	}

	region := make([]byte, len(buf)-HeaderSize)
	copy(region, buf[HeaderSize:])
	xorRegion(region, secret)

	return parseRegion(region)
}

// parseRegion walks the deobfuscated entry region: length-prefixed keys and
// values until a zero key length. Bytes past the terminator are padding and
// are never interpreted. A duplicate key keeps the last decoded value.
func parseRegion(region []byte) (Entries, error) {
	entries := make(Entries)

	pos := 0
	for pos < len(region) {
		keyLen := int(region[pos])
		pos++
		if keyLen == 0 {
			break
		}

		if pos+keyLen > len(region) {
			return nil, ErrTruncatedKey
		}
		keyBytes := region[pos : pos+keyLen]
		pos += keyLen
		if !utf8.Valid(keyBytes) {
			return nil, ErrInvalidUTF8
		}

		// A declared key must be followed by a value length marker.
		if pos >= len(region) {
			return nil, ErrMissingKey
		}
		valLen := int(region[pos])
		pos++
		if valLen == 0 {
			entries[string(keyBytes)] = Value{}
			continue
		}

		if pos+valLen > len(region) {
			return nil, ErrTruncatedValue
		}
		valBytes := region[pos : pos+valLen]
		pos += valLen
		if !utf8.Valid(valBytes) {
			return nil, ErrInvalidUTF8
		}
		entries[string(keyBytes)] = StringValue(string(valBytes))
	}

	return entries, nil
}

// xorRegion XORs region in place against the secret's bytes, cycling the
// secret to cover the whole region. XOR is self-inverse, so the same call
// obfuscates and deobfuscates. An empty secret leaves the region untouched.
func xorRegion(region []byte, secret string) {
	if secret == "" {
		return
	}
	for i := range region {
		region[i] ^= secret[i%len(secret)]
	}
}
