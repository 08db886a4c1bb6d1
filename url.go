package href

import "strings"

// URL is a mutable URL value.
//
// Every component has a getter and a setter. A setter takes any value,
// coerces it to its string form (the nil clears the component) and returns
// the URL itself for chaining.
//
// A URL is meant to be owned by a single user. It is not safe for
// concurrent mutation, use the `URL.Clone` to hand out independent copies.
type URL struct {
	// QueryString is the query collection of the current URL. The `Search`
	// is always its serialized form.
	QueryString *Query

	h *Href

	protocol       string
	hostname       string
	port           string
	pathname       string
	hash           string
	schemeRelative bool
}

// newURL returns a new instance of the `URL` that belongs to the h.
func newURL(h *Href) *URL {
	return &URL{
		QueryString: &Query{},
		h:           h,
	}
}

// Protocol returns the protocol of the u. It's either "" or ends with ":".
func (u *URL) Protocol() string {
	return u.protocol
}

// SetProtocol sets the protocol of the u to the protocol. A ":" is appended
// if it is missing.
func (u *URL) SetProtocol(protocol interface{}) *URL {
	u.protocol = normalizeProtocol(stringify(protocol))
	if u.protocol != "" {
		u.schemeRelative = false
	}

	return u
}

// Hostname returns the hostname of the u.
func (u *URL) Hostname() string {
	return u.hostname
}

// SetHostname sets the hostname of the u to the hostname. The port is kept.
func (u *URL) SetHostname(hostname interface{}) *URL {
	u.hostname = stringify(hostname)
	return u
}

// Port returns the port of the u.
func (u *URL) Port() string {
	return u.port
}

// SetPort sets the port of the u to the port. The hostname is kept.
func (u *URL) SetPort(port interface{}) *URL {
	u.port = stringify(port)
	return u
}

// Host returns the hostname of the u, followed by ":" and the port when the
// port is not empty.
func (u *URL) Host() string {
	if u.port == "" {
		return u.hostname
	}

	return u.hostname + ":" + u.port
}

// SetHost sets both the hostname and the port of the u by splitting the host
// on its last ":". A host without a port, or with a trailing ":", clears the
// port. The nil clears both.
func (u *URL) SetHost(host interface{}) *URL {
	u.hostname, u.port = splitHostPort(stringify(host))
	return u
}

// Pathname returns the pathname of the u.
func (u *URL) Pathname() string {
	return u.pathname
}

// SetPathname sets the pathname of the u to the pathname, verbatim.
func (u *URL) SetPathname(pathname interface{}) *URL {
	u.pathname = stringify(pathname)
	return u
}

// Search returns the serialized `QueryString` of the u with a leading "?",
// or "" if it is empty.
func (u *URL) Search() string {
	return u.query().String()
}

// SetSearch replaces the `QueryString` of the u with the one deserialized
// from the search, with or without a leading "?". The nil clears it. A
// number becomes a single key, its string form, with an empty value. Any
// other non-string value is coerced first.
func (u *URL) SetSearch(search interface{}) *URL {
	if isNumber(search) {
		q := u.query()
		q.Reset()
		q.set(stringify(search), "")
		return u
	}

	if dropped := u.query().deserialize(stringify(search)); dropped > 0 {
		u.href().DEBUG("href: dropped empty query pairs", map[string]interface{}{
			"search":  stringify(search),
			"dropped": dropped,
		})
	}

	return u
}

// Hash returns the hash of the u. It's either "" or starts with "#".
func (u *URL) Hash() string {
	return u.hash
}

// SetHash sets the hash of the u to the hash. A "#" is prepended if it is
// missing.
func (u *URL) SetHash(hash interface{}) *URL {
	u.hash = normalizeHash(stringify(hash))
	return u
}

// Get returns the query value of the u for the key. See `Query.Get`.
func (u *URL) Get(key interface{}, defaultValue ...string) string {
	return u.query().Get(key, defaultValue...)
}

// GetItem returns the query value of the u for the key, or "" if there is no
// such key.
func (u *URL) GetItem(key interface{}) string {
	return u.query().Get(key)
}

// Set sets the query value of the u for the key. See `Query.Set`.
func (u *URL) Set(key, value interface{}) error {
	return u.query().Set(key, value)
}

// String returns the serialized form of the u.
//
// The protocol and the host are only written when the host is not empty.
// When the u has no protocol of its own, the `Href.DefaultProtocol` is used
// in front of the host (unless the u was parsed from a scheme-relative
// string such as "//example.com").
func (u *URL) String() string {
	var b strings.Builder

	if host := u.Host(); host != "" {
		protocol := u.protocol
		if protocol == "" && !u.schemeRelative {
			protocol = u.href().defaultProtocol()
		}

		b.WriteString(protocol)
		b.WriteString("//")
		b.WriteString(host)
	}

	b.WriteString(u.pathname)
	b.WriteString(u.Search())
	b.WriteString(u.hash)

	return b.String()
}

// Clone returns a copy of the u that shares nothing with it except the
// `Href` it belongs to.
func (u *URL) Clone() *URL {
	c := *u
	c.QueryString = u.query().Clone()
	return &c
}

// query returns the `QueryString` of the u, creating it if it is nil.
func (u *URL) query() *Query {
	if u.QueryString == nil {
		u.QueryString = &Query{}
	}

	return u.QueryString
}

// href returns the `Href` that the u belongs to.
func (u *URL) href() *Href {
	if u.h == nil {
		return Default
	}

	return u.h
}

// reset resets all components of the u.
func (u *URL) reset() {
	u.protocol = ""
	u.hostname = ""
	u.port = ""
	u.pathname = ""
	u.hash = ""
	u.schemeRelative = false
	u.query().Reset()
}
