package main

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aofei/href"
	"github.com/stretchr/testify/assert"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	cmd := rootCmd()

	out := bytes.Buffer{}
	cmd.SetOut(&out)
	cmd.SetErr(ioutil.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func TestParseCmd(t *testing.T) {
	out, err := run(t, "", "parse", "--compact", "http://example.com:8080/a?b=c&d#top")
	assert.NoError(t, err)

	c := components{}
	assert.NoError(t, json.Unmarshal([]byte(out), &c))
	assert.Equal(t, "http://example.com:8080/a?b=c&d=#top", c.Href)
	assert.Equal(t, "http:", c.Protocol)
	assert.Equal(t, "example.com:8080", c.Host)
	assert.Equal(t, "example.com", c.Hostname)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "/a", c.Pathname)
	assert.Equal(t, "?b=c&d=", c.Search)
	assert.Equal(t, "#top", c.Hash)
	assert.Equal(t, []string{"b", "d"}, c.Keys)
	assert.Equal(t, map[string]interface{}{"b": "c", "d": ""}, c.Query)

	out, err = run(t, "", "parse", "foo")
	assert.NoError(t, err)
	assert.Contains(t, out, "\n  \"pathname\": \"foo\"")

	_, err = run(t, "", "parse")
	assert.Error(t, err)
}

func TestGetCmd(t *testing.T) {
	for _, c := range []struct {
		component, want string
	}{
		{"protocol", "https:"},
		{"host", "www.example.co.uk:8443"},
		{"hostname", "www.example.co.uk"},
		{"port", "8443"},
		{"pathname", "/a"},
		{"search", "?q=go"},
		{"hash", "#top"},
		{"?q", "go"},
		{"?missing", ""},
		{"domain", "example.co.uk"},
		{"ascii-host", "www.example.co.uk"},
	} {
		out, err := run(t, "", "get", "https://www.example.co.uk:8443/a?q=go#top", c.component)
		assert.NoError(t, err, c.component)
		assert.Equal(t, c.want+"\n", out, c.component)
	}

	_, err := run(t, "", "get", "/a", "nope")
	assert.Error(t, err)
}

func TestSetCmd(t *testing.T) {
	out, err := run(
		t,
		"",
		"set",
		"http://example.com/a?b=c#d",
		"--protocol", "https",
		"--port", "8443",
		"--pathname", "/z",
		"--hash", "",
		"-p", "page=2",
		"-p", "flag",
		"-d", "b",
	)
	assert.NoError(t, err)
	assert.Equal(t, "https://example.com:8443/z?page=2&flag=\n", out)

	out, err = run(t, "", "set", "http://example.com:8080/a", "--host", "example.org")
	assert.NoError(t, err)
	assert.Equal(t, "http://example.org/a\n", out)

	out, err = run(t, "", "set", "http://example.com/a?x=1", "--search", "y=2", "--hostname", "h")
	assert.NoError(t, err)
	assert.Equal(t, "http://h/a?y=2\n", out)

	out, err = run(t, "", "set", "http://example.com/a?b=c")
	assert.NoError(t, err)
	assert.Equal(t, "http://example.com/a?b=c\n", out)

	_, err = run(t, "", "set", "/a", "-p", "=v")
	assert.Error(t, err)
}

func TestRewriteCmd(t *testing.T) {
	out, err := run(
		t,
		"http://a.example.com/x\n/relative?q=1\n\n",
		"rewrite",
		"--host", "cdn.example.com",
		"-p", "v=2",
	)
	assert.NoError(t, err)
	assert.Equal(
		t,
		"http://cdn.example.com/x?v=2\n"+
			"http://cdn.example.com/relative?q=1&v=2\n"+
			"http://cdn.example.com?v=2\n",
		out,
	)

	_, err = run(t, "", "rewrite", "--watch")
	assert.Error(t, err)

	_, err = run(t, "/a\n", "rewrite", "-p", "=x")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid query key")

	long := "/" + strings.Repeat("a", 128<<10)
	out, err = run(t, long+"\n", "rewrite", "--hash", "top")
	assert.NoError(t, err)
	assert.Equal(t, long+"#top\n", out)
}

func TestRootCmdConfig(t *testing.T) {
	dir, err := ioutil.TempDir("", "href.TestRootCmdConfig")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	filename := filepath.Join(dir, "href.toml")
	assert.NoError(t, ioutil.WriteFile(
		filename,
		[]byte(`default_protocol = "https"`+"\n"+`logger_lowest_level = "off"`),
		0644,
	))

	defer func() {
		href.Default.DefaultProtocol = "http:"
		href.Default.LoggerLowestLevel = href.LoggerLevelInfo
		href.Default.ConfigFile = ""
	}()

	out, err := run(t, "", "--config", filename, "set", "/a", "--host", "example.com")
	assert.NoError(t, err)
	assert.Equal(t, "https://example.com/a\n", out)

	_, err = run(t, "", "--config", filepath.Join(dir, "missing.toml"), "version")
	assert.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "", "version", "--short")
	assert.NoError(t, err)
	assert.Equal(t, "dev\n", out)

	out, err = run(t, "", "version")
	assert.NoError(t, err)
	assert.Contains(t, out, "Version:    dev")
	assert.Contains(t, out, "Go version:")
}
