// Package problem defines the JSON shape of every error response produced by
// the API. The body follows the spirit of RFC 7807 (Problem Details for HTTP
// APIs) with a single top-level member:
//
//	{ "errors": "Not Found" }
//	{ "errors": { "name": ["must not be blank"] } }
//
// The value of "errors" is either a short message or a map from an error key
// (a field name, or KeyBase for non-field problems) to an ordered list of
// messages. 422 responses always use the map form.
package problem

import orderedmap "github.com/wk8/go-ordered-map/v2"

const (
	// ContentType is sent with every problem body.
	ContentType = "application/problem+json"

	// KeyErrors is the single top-level member of a problem body.
	KeyErrors = "errors"
	// KeyBase keys messages that do not belong to a specific field.
	KeyBase = "base"

	MessageUnauthorized  = "Unauthorized"
	MessageForbidden     = "Forbidden"
	MessageUnprocessable = "unprocessable entity"
)

// Body is the response envelope. Errors holds either a string or a
// *FieldErrors; use Message or Fields to build one.
type Body struct {
	Errors any `json:"errors"`
}

// Message returns a body carrying a single message.
func Message(msg string) Body { return Body{Errors: msg} }

// Fields returns a body carrying keyed messages.
func Fields(fe *FieldErrors) Body { return Body{Errors: fe} }

// IsMap reports whether the body uses the keyed form.
func (b Body) IsMap() bool {
	_, ok := b.Errors.(*FieldErrors)
	return ok
}

// FieldErrors is an insertion-ordered map of error key to messages. The zero
// value is ready to use. JSON output keeps keys in insertion order and each
// message list in the order it was added.
type FieldErrors struct {
	m *orderedmap.OrderedMap[string, []string]
}

// NewFieldErrors returns an empty FieldErrors.
func NewFieldErrors() *FieldErrors {
	return &FieldErrors{m: orderedmap.New[string, []string]()}
}

// Single returns a FieldErrors with exactly one key and one message.
func Single(key, msg string) *FieldErrors {
	return NewFieldErrors().Add(key, msg)
}

// Base returns the generic fallback used when no field detail is available.
func Base() *FieldErrors { return Single(KeyBase, MessageUnprocessable) }

// Add appends msg to the list for key, registering key on first use.
func (f *FieldErrors) Add(key, msg string) *FieldErrors {
	if f.m == nil {
		f.m = orderedmap.New[string, []string]()
	}
	prev, _ := f.m.Get(key)
	f.m.Set(key, append(prev, msg))
	return f
}

// Len returns the number of keys.
func (f *FieldErrors) Len() int {
	if f == nil || f.m == nil {
		return 0
	}
	return f.m.Len()
}

// Keys returns the keys in insertion order.
func (f *FieldErrors) Keys() []string {
	if f.Len() == 0 {
		return nil
	}
	out := make([]string, 0, f.m.Len())
	for p := f.m.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Key)
	}
	return out
}

// Get returns a copy of the messages recorded for key.
func (f *FieldErrors) Get(key string) []string {
	if f.Len() == 0 {
		return nil
	}
	v, ok := f.m.Get(key)
	if !ok {
		return nil
	}
	return append([]string{}, v...)
}

// Map returns a plain map copy, mainly for logging and tests.
func (f *FieldErrors) Map() map[string][]string {
	out := make(map[string][]string, f.Len())
	for _, k := range f.Keys() {
		out[k] = f.Get(k)
	}
	return out
}

// MarshalJSON writes the keys in insertion order. Nil and empty values
// encode as {}.
func (f *FieldErrors) MarshalJSON() ([]byte, error) {
	if f.Len() == 0 {
		return []byte("{}"), nil
	}
	return f.m.MarshalJSON()
}

// UnmarshalJSON reads an object of string arrays, keeping document order.
func (f *FieldErrors) UnmarshalJSON(data []byte) error {
	m := orderedmap.New[string, []string]()
	if err := m.UnmarshalJSON(data); err != nil {
		return err
	}
	f.m = m
	return nil
}
