package href

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitAuthority(t *testing.T) {
	p, a, r, ok := splitAuthority("http://example.com:80/a/b")
	assert.True(t, ok)
	assert.Equal(t, "http:", p)
	assert.Equal(t, "example.com:80", a)
	assert.Equal(t, "/a/b", r)

	p, a, r, ok = splitAuthority("//example.com")
	assert.True(t, ok)
	assert.Empty(t, p)
	assert.Equal(t, "example.com", a)
	assert.Empty(t, r)

	for _, s := range []string{
		"",
		"foo",
		"/a/b",
		"http:/example.com",
		"http://",
		"file:///etc/hosts",
		"1http://example.com",
		"mailto:a@example.com",
	} {
		_, _, _, ok = splitAuthority(s)
		assert.False(t, ok, s)
	}
}

func TestSchemeEnd(t *testing.T) {
	assert.Equal(t, 4, schemeEnd("http://"))
	assert.Equal(t, 7, schemeEnd("svn+ssh://"))
	assert.Equal(t, 6, schemeEnd("a.b-c1:"))
	assert.Equal(t, -1, schemeEnd(":foo"))
	assert.Equal(t, -1, schemeEnd("1a:"))
	assert.Equal(t, -1, schemeEnd("a b:"))
	assert.Equal(t, -1, schemeEnd("noscheme"))
}

func TestSplitHostPort(t *testing.T) {
	for _, c := range []struct {
		authority, hostname, port string
	}{
		{"", "", ""},
		{"example.com", "example.com", ""},
		{"example.com:8080", "example.com", "8080"},
		{"example.com:", "example.com", ""},
		{"a:b:c", "a:b", "c"},
		{"user:pass@example.com", "user:pass@example.com", ""},
		{"user:pass@example.com:21", "user:pass@example.com", "21"},
		{"[::1]", "[::1]", ""},
		{"[::1]:443", "[::1]", "443"},
		{"0", "0", ""},
	} {
		hostname, port := splitHostPort(c.authority)
		assert.Equal(t, c.hostname, hostname, c.authority)
		assert.Equal(t, c.port, port, c.authority)
	}
}

func TestNormalizeProtocolAndHash(t *testing.T) {
	assert.Equal(t, "", normalizeProtocol(""))
	assert.Equal(t, "http:", normalizeProtocol("http"))
	assert.Equal(t, "http:", normalizeProtocol("http:"))

	assert.Equal(t, "", normalizeHash(""))
	assert.Equal(t, "", normalizeHash("#"))
	assert.Equal(t, "#a", normalizeHash("a"))
	assert.Equal(t, "#a", normalizeHash("#a"))
}

func TestParseLogsDegradations(t *testing.T) {
	h := New()
	h.LoggerLowestLevel = LoggerLevelDebug

	buf := bytes.Buffer{}
	h.LoggerOutput = &buf

	h.Parse("http://example.com:/a?&b=1")

	assert.Contains(t, buf.String(), "dropped empty port")
	assert.Contains(t, buf.String(), "dropped empty query pairs")

	buf.Reset()
	h.Parse("http://example.com/a?b=1")
	assert.Empty(t, buf.String())
}
