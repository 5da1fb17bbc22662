// Package codec implements the mconfig buffer format.
//
// An mconfig buffer is a single fixed-size block of 8,192 bytes holding a
// small key-value collection, optionally obfuscated with a caller-supplied
// secret.
//
// # Buffer Format
//
// Every buffer produced by Serialize has the following structure:
//
//	[Magic(5)][Version(1)][Entries...][Terminator(1)][Padding]
//
// Fields:
//   - Magic: the bytes 4D 43 4F 4E 46 ("MCONF")
//   - Version: a single reserved byte, always 0 in this version
//   - Entries: length-prefixed key-value pairs (see below)
//   - Terminator: a single zero byte marking the end of meaningful data
//   - Padding: random bytes filling the buffer to exactly 8,192 bytes
//
// Each entry is encoded as:
//
//	[KeyLen(1)][Key(KeyLen)][ValueLen(1)][Value(ValueLen)]
//
// Keys and values are UTF-8 text of at most 255 bytes. A ValueLen of zero
// means the key has no value and no value bytes follow. A KeyLen of zero is
// the terminator; everything after it is padding and is never interpreted.
// Because the terminator doubles as a key length, an empty key cannot be
// encoded at all; the store layer rejects empty keys at insert time.
//
// # Obfuscation
//
// When a secret is supplied, every byte after the 6-byte header is XORed
// against the secret's UTF-8 bytes, cycling the secret to cover the whole
// region. XOR is self-inverse, so the same transform both obfuscates and
// deobfuscates. This is obfuscation, not encryption: a repeating-key XOR
// provides no real confidentiality and the header is always plaintext.
//
// Parsing with the wrong secret yields effectively random entry bytes. That
// usually surfaces as one of the decode errors, but is not guaranteed to;
// callers must not treat any particular error as proof of a wrong secret.
//
// # Error Handling
//
// Parse reports failures through the exported sentinel values (ErrTooShort,
// ErrBadHeader, ErrTruncatedKey, ...). Serialize never fails for input the
// store layer has accepted; an entry set that overflows the buffer is a
// caller bug and panics.
package codec
