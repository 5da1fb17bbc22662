package codec

// Error represents an mconfig codec or store error
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Structural buffer errors
var (
	ErrTooShort       = &Error{"buffer is shorter than the fixed header"}
	ErrTooBig         = &Error{"data exceeds the fixed buffer size"}
	ErrBadHeader      = &Error{"magic byte mismatch"}
	ErrUnknownVersion = &Error{"unsupported version byte"}
)

// Entry decode errors. Parsing with a wrong secret usually, but not always,
// surfaces as one of these; no error identifies a wrong secret specifically.
var (
	ErrTruncatedKey   = &Error{"declared key length exceeds remaining bytes"}
	ErrTruncatedValue = &Error{"declared value length exceeds remaining bytes"}
	ErrMissingKey     = &Error{"missing key"}
	ErrInvalidUTF8    = &Error{"key or value is not valid UTF-8"}
)

// Insert-time errors
var (
	ErrKeyTooBig   = &Error{"key is longer than 255 bytes"}
	ErrValueTooBig = &Error{"value is longer than 255 bytes"}
	ErrEmptyKey    = &Error{"key is empty"}
)
