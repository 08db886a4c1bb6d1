package href

import (
	"fmt"
	"net/url"
	"strings"
)

// Query is an ordered collection of query parameters.
//
// Keys are unique. Setting an existing key overwrites its value in place, new
// keys are appended. A value is stored exactly as given, so the nil is kept
// as the nil until it is read by the `Get` or serialized.
//
// The zero value is an empty collection ready to use.
type Query struct {
	keys   []string
	values map[string]interface{}

	// raw is the text the q was deserialized from. It's only kept while the
	// q is unmodified and the text maps one-to-one onto the entries.
	raw      string
	rawExact bool
}

// NewQuery returns a new instance of the `Query` deserialized from the raw.
//
// The raw may or may not start with a "?".
func NewQuery(raw string) *Query {
	q := &Query{}
	q.deserialize(raw)
	return q
}

// Get returns the value associated with the key, coerced to a string. A
// stored nil is returned as "". If there is no such key, the first of the
// optional defaultValue is returned as is, or "" if it is not provided.
func (q *Query) Get(key interface{}, defaultValue ...string) string {
	v, ok := q.values[stringify(key)]
	if !ok {
		if len(defaultValue) > 0 {
			return defaultValue[0]
		}

		return ""
	}

	return stringify(v)
}

// Value returns the raw value associated with the key and reports whether
// the key is present.
func (q *Query) Value(key interface{}) (interface{}, bool) {
	v, ok := q.values[stringify(key)]
	return v, ok
}

// Has reports whether the key is present in the q.
func (q *Query) Has(key interface{}) bool {
	_, ok := q.values[stringify(key)]
	return ok
}

// Set sets the entry associated with the key to the value.
//
// The key is coerced to its string form first. It returns an
// `*InvalidKeyError` without modifying the q if the coerced key is empty,
// which is the case for the nil and "". The value is stored without
// coercion.
func (q *Query) Set(key, value interface{}) error {
	k := stringify(key)
	if k == "" {
		return &InvalidKeyError{Key: key}
	}

	q.set(k, value)
	q.raw, q.rawExact = "", false

	return nil
}

// set sets the k to the v and reports whether the k was already present.
func (q *Query) set(k string, v interface{}) bool {
	if q.values == nil {
		q.values = map[string]interface{}{}
	}

	_, ok := q.values[k]
	if !ok {
		q.keys = append(q.keys, k)
	}

	q.values[k] = v

	return ok
}

// Del deletes the entry associated with the key. The order of the remaining
// entries is kept.
func (q *Query) Del(key interface{}) {
	k := stringify(key)
	if _, ok := q.values[k]; !ok {
		return
	}

	delete(q.values, k)
	for i, qk := range q.keys {
		if qk == k {
			q.keys = append(q.keys[:i], q.keys[i+1:]...)
			break
		}
	}

	q.raw, q.rawExact = "", false
}

// Keys returns the keys of the q in order.
func (q *Query) Keys() []string {
	return append([]string(nil), q.keys...)
}

// Len returns the number of entries in the q.
func (q *Query) Len() int {
	return len(q.keys)
}

// Map returns the entries of the q as a map. The values are the stored ones,
// nil included.
func (q *Query) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(q.keys))
	for _, k := range q.keys {
		m[k] = q.values[k]
	}

	return m
}

// Reset removes all entries from the q.
func (q *Query) Reset() {
	q.keys = nil
	q.values = nil
	q.raw, q.rawExact = "", false
}

// Encode returns the serialized form of the q without a leading "?". It
// returns "" if the q is empty.
func (q *Query) Encode() string {
	if len(q.keys) == 0 {
		return ""
	} else if q.rawExact {
		return q.raw
	}

	var b strings.Builder
	for i, k := range q.keys {
		if i > 0 {
			b.WriteByte('&')
		}

		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(stringify(q.values[k])))
	}

	return b.String()
}

// String returns the serialized form of the q with a leading "?", or "" if
// the q is empty.
func (q *Query) String() string {
	if e := q.Encode(); e != "" {
		return "?" + e
	}

	return ""
}

// Clone returns a copy of the q that shares nothing with it.
func (q *Query) Clone() *Query {
	c := &Query{
		keys:     q.Keys(),
		raw:      q.raw,
		rawExact: q.rawExact,
	}

	if q.values != nil {
		c.values = make(map[string]interface{}, len(q.values))
		for k, v := range q.values {
			c.values[k] = v
		}
	}

	return c
}

// deserialize replaces the entries of the q with the ones parsed from the
// raw. It reports how many pairs of the raw were dropped.
func (q *Query) deserialize(raw string) int {
	q.Reset()

	raw = strings.TrimPrefix(raw, "?")
	if raw == "" {
		return 0
	}

	exact, dropped := true, 0
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			exact = false
			dropped++
			continue
		}

		k, v := pair, ""
		if i := strings.IndexByte(pair, '='); i >= 0 {
			k, v = pair[:i], pair[i+1:]
		} else {
			exact = false
		}

		if k = unescapeQueryComponent(k); k == "" {
			exact = false
			dropped++
			continue
		}

		if q.set(k, unescapeQueryComponent(v)) {
			exact = false
		}
	}

	if exact && len(q.keys) > 0 {
		q.raw, q.rawExact = raw, true
	}

	return dropped
}

// unescapeQueryComponent unescapes the s. The s is returned as is when it is
// not a valid escaped query component.
func unescapeQueryComponent(s string) string {
	if us, err := url.QueryUnescape(s); err == nil {
		return us
	}

	return s
}

// InvalidKeyError is returned when a query key is empty after it is coerced
// to its string form.
type InvalidKeyError struct {
	Key interface{}
}

// Error implements the `error`.
func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("href: invalid query key %#v", e.Key)
}
