package codec

// Value is the optional text mapped to a key. A key may be stored with no
// value at all; Valid distinguishes that from a present value.
//
// The wire format cannot make the same distinction for empty strings: an
// absent value and a present empty string both encode as a zero value
// length, and Parse always decodes a zero value length as an absent value.
// This is a known limitation of the version 0 format.
type Value struct {
	Text  string
	Valid bool
}

// StringValue returns a present Value holding text.
func StringValue(text string) Value {
	return Value{Text: text, Valid: true}
}

// Or returns the value's text, or def when no value is present.
func (v Value) Or(def string) string {
	if !v.Valid {
		return def
	}
	return v.Text
}

// Entries maps keys to their optional values. Iteration order carries no
// meaning in the buffer format.
type Entries map[string]Value
