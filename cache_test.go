package href

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/cespare/xxhash"
	"github.com/stretchr/testify/assert"
	"github.com/vmihailenco/msgpack"
)

func cacheKey(s string) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, xxhash.Sum64String(s))
	return key
}

func TestNewCache(t *testing.T) {
	h := New()
	c := h.cache

	assert.NotNil(t, c)
	assert.NotNil(t, c.h)
	assert.NotNil(t, c.loadOnce)
	assert.Nil(t, c.store)
}

func TestCacheParse(t *testing.T) {
	h := New()
	h.CacheEnabled = true

	s := "https://example.com:8443/a?x=1&y=#top"

	u1 := h.Parse(s)
	assert.NotNil(t, h.cache.store)
	assert.NotEmpty(t, h.cache.store.Get(nil, cacheKey(s)))

	u2 := h.Parse(s)
	assert.False(t, u1 == u2)
	assert.False(t, u1.QueryString == u2.QueryString)

	assert.Equal(t, s, u2.String())
	assert.Equal(t, "https:", u2.Protocol())
	assert.Equal(t, "example.com", u2.Hostname())
	assert.Equal(t, "8443", u2.Port())
	assert.Equal(t, "/a", u2.Pathname())
	assert.Equal(t, []string{"x", "y"}, u2.QueryString.Keys())
	assert.Equal(t, "#top", u2.Hash())

	u2.SetPathname("/b")
	assert.NoError(t, u2.Set("z", 1))

	assert.Equal(t, s, u1.String())
	assert.Equal(t, s, h.Parse(s).String())
}

func TestCacheParseSchemeRelative(t *testing.T) {
	h := New()
	h.CacheEnabled = true

	s := "//cdn.example.com/lib.js?v=2"

	h.Parse(s)
	assert.Equal(t, s, h.Parse(s).String())
}

func TestCacheParseCollision(t *testing.T) {
	h := New()
	h.CacheEnabled = true
	h.cache.loadOnce.Do(h.cache.load)

	s := "/real"

	b, err := msgpack.Marshal(&cacheEntry{
		Input:    "/other",
		Pathname: "/other",
	})
	assert.NoError(t, err)

	h.cache.store.Set(cacheKey(s), b)

	assert.Equal(t, "/real", h.Parse(s).Pathname())
}

func TestCacheParseMalformedEntry(t *testing.T) {
	h := New()
	h.CacheEnabled = true
	h.cache.loadOnce.Do(h.cache.load)

	buf := bytes.Buffer{}
	h.LoggerOutput = &buf

	s := "/path"
	h.cache.store.Set(cacheKey(s), []byte{0xc1})

	assert.Equal(t, "/path", h.Parse(s).String())
	assert.Contains(t, buf.String(), "failed to decode cache entry")
}

func TestCacheReset(t *testing.T) {
	h := New()
	h.CacheEnabled = true

	s := "/path"
	h.Parse(s)
	assert.NotEmpty(t, h.cache.store.Get(nil, cacheKey(s)))

	h.cache.reset()
	assert.Empty(t, h.cache.store.Get(nil, cacheKey(s)))
}

func TestCacheLoadNonPositiveMaxMemoryBytes(t *testing.T) {
	for _, n := range []int{0, -1} {
		h := New()
		h.CacheEnabled = true
		h.CacheMaxMemoryBytes = n

		assert.NotPanics(t, func() {
			assert.Equal(t, "/a", h.Parse("/a").String())
		})
		assert.NotNil(t, h.cache.store)
		assert.NotEmpty(t, h.cache.store.Get(nil, cacheKey("/a")))
	}
}
