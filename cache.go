package href

import (
	"encoding/binary"
	"sync"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/cespare/xxhash"
	"github.com/vmihailenco/msgpack"
)

// cache is a parse cache that keeps the components of recently parsed
// strings in the runtime memory.
//
// It never hands out a cached `URL` itself, every hit builds a new one, so
// the results stay independently mutable.
type cache struct {
	h *Href

	loadOnce *sync.Once
	store    *fastcache.Cache
}

// cacheEntry is the msgpack form of the components of a parsed string.
type cacheEntry struct {
	Input          string   `msgpack:"i"`
	Protocol       string   `msgpack:"p"`
	Hostname       string   `msgpack:"hn"`
	Port           string   `msgpack:"pt"`
	Pathname       string   `msgpack:"pn"`
	Hash           string   `msgpack:"h"`
	SchemeRelative bool     `msgpack:"sr"`
	QueryKeys      []string `msgpack:"qk"`
	QueryValues    []string `msgpack:"qv"`
	QueryRaw       string   `msgpack:"qr"`
	QueryRawExact  bool     `msgpack:"qre"`
}

// newCache returns a new instance of the `cache` with the h.
func newCache(h *Href) *cache {
	return &cache{
		h:        h,
		loadOnce: &sync.Once{},
	}
}

// load loads the stuff of the c up.
func (c *cache) load() {
	c.h.mutex.RLock()
	maxBytes := c.h.CacheMaxMemoryBytes
	c.h.mutex.RUnlock()

	if maxBytes <= 0 {
		maxBytes = 32 << 20
	}

	c.store = fastcache.New(maxBytes)
}

// parse parses the s into a new `URL`, reusing the cached components of the
// s when there are any.
func (c *cache) parse(s string) *URL {
	c.loadOnce.Do(c.load)

	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, xxhash.Sum64String(s))

	if b := c.store.Get(nil, key); len(b) > 0 {
		ce := cacheEntry{}
		if err := msgpack.Unmarshal(b, &ce); err != nil {
			c.h.ERROR("href: failed to decode cache entry", map[string]interface{}{
				"error": err.Error(),
			})
		} else if ce.Input == s {
			return ce.url(c.h)
		}
	}

	u := c.h.parse(s)

	b, err := msgpack.Marshal(newCacheEntry(s, u))
	if err != nil {
		c.h.ERROR("href: failed to encode cache entry", map[string]interface{}{
			"error": err.Error(),
		})

		return u
	}

	c.store.Set(key, b)

	return u
}

// reset drops all entries of the c.
func (c *cache) reset() {
	c.loadOnce.Do(c.load)
	c.store.Reset()
}

// newCacheEntry returns a new instance of the `cacheEntry` for the u that
// was just parsed from the s.
func newCacheEntry(s string, u *URL) *cacheEntry {
	q := u.query()

	ce := &cacheEntry{
		Input:          s,
		Protocol:       u.protocol,
		Hostname:       u.hostname,
		Port:           u.port,
		Pathname:       u.pathname,
		Hash:           u.hash,
		SchemeRelative: u.schemeRelative,
		QueryKeys:      q.Keys(),
		QueryValues:    make([]string, 0, q.Len()),
		QueryRaw:       q.raw,
		QueryRawExact:  q.rawExact,
	}

	for _, k := range q.keys {
		ce.QueryValues = append(ce.QueryValues, stringify(q.values[k]))
	}

	return ce
}

// url returns a new instance of the `URL` that belongs to the h and is built
// from the ce.
func (ce *cacheEntry) url(h *Href) *URL {
	u := newURL(h)
	u.protocol = ce.Protocol
	u.hostname = ce.Hostname
	u.port = ce.Port
	u.pathname = ce.Pathname
	u.hash = ce.Hash
	u.schemeRelative = ce.SchemeRelative

	for i, k := range ce.QueryKeys {
		if i < len(ce.QueryValues) {
			u.QueryString.set(k, ce.QueryValues[i])
		}
	}

	u.QueryString.raw = ce.QueryRaw
	u.QueryString.rawExact = ce.QueryRawExact

	return u
}
