/*
Package href implements a mutable URL value.

A URL value parses any URL-like string (absolute or relative, with or without
scheme, host, port, path, query and fragment) into named components, exposes
get/set accessors on each of them, keeps an ordered collection of query
parameters, and serializes the whole structure back into a single string. A
value that was never modified serializes back to exactly the string it was
parsed from.

The simplest way to use it:

	u := href.Parse("http://example.com:80/path?foo=bar#top")
	u.SetHost("example.org").SetHash(nil)
	u.Set("page", 2)
	fmt.Println(u) // http://example.org/path?foo=bar&page=2
*/
package href

import (
	"io"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Href is the top-level struct of this package.
//
// It is highly recommended not to modify the value of any field of the `Href`
// after calling the `Href.Parse`, which will cause unpredictable problems.
//
// The new instances of the `Href` should only be created by calling the
// `New`. If you only need one instance of the `Href`, then you should use the
// `Default`, which will help you to use it easily.
type Href struct {
	// AppName is the name of the current application.
	//
	// Default value: "href"
	//
	// It's called "app_name" in the config file.
	AppName string `mapstructure:"app_name"`

	// DebugMode indicates whether the current instance is in debug mode.
	//
	// When the `DebugMode` is true, the logger writes indented JSON and the
	// `LoggerLowestLevel` is treated as `LoggerLevelDebug`.
	//
	// Default value: false
	//
	// It's called "debug_mode" in the config file.
	DebugMode bool `mapstructure:"debug_mode"`

	// LoggerLowestLevel is the lowest level of the logger.
	//
	// It only works when the `DebugMode` is false.
	//
	// Default value: `LoggerLevelInfo`
	//
	// It's called "logger_lowest_level" in the config file.
	LoggerLowestLevel LoggerLevel `mapstructure:"logger_lowest_level"`

	// LoggerOutput is the output destination of the logger.
	//
	// Default value: `os.Stdout`
	LoggerOutput io.Writer `mapstructure:"-"`

	// DefaultProtocol is the protocol written in front of a non-empty host
	// when the URL value itself has no protocol.
	//
	// A trailing ":" is added if it is missing.
	//
	// Default value: "http:"
	//
	// It's called "default_protocol" in the config file.
	DefaultProtocol string `mapstructure:"default_protocol"`

	// CacheEnabled indicates whether the parse cache is enabled.
	//
	// Default value: false
	//
	// It's called "cache_enabled" in the config file.
	CacheEnabled bool `mapstructure:"cache_enabled"`

	// CacheMaxMemoryBytes is the maximum number of bytes of the runtime
	// memory the parse cache is going to use. Values less than or equal to
	// zero fall back to the default value.
	//
	// Default value: 33554432
	//
	// It's called "cache_max_memory_bytes" in the config file.
	CacheMaxMemoryBytes int `mapstructure:"cache_max_memory_bytes"`

	// ConfigFile is the path to the config file that was last loaded by
	// the `LoadConfig`.
	//
	// Default value: ""
	ConfigFile string `mapstructure:"-"`

	logger  *logger
	cache   *cache
	urlPool *urlPool

	mutex   *sync.RWMutex
	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      *sync.WaitGroup
}

// osExit is the `os.Exit`, swapped in tests.
var osExit = os.Exit

// Default is the default instance of the `Href`.
//
// If you only need one instance of the `Href`, then you should use the
// `Default`. Unless you think you can efficiently resolve the issue of
// passing around the instances of the `Href`.
var Default = New()

// New returns a new instance of the `Href` with default field values.
//
// The `New` is the only function that creates new instances of the `Href`
// and keeps everything working.
func New() *Href {
	h := &Href{
		AppName:             "href",
		LoggerLowestLevel:   LoggerLevelInfo,
		LoggerOutput:        os.Stdout,
		DefaultProtocol:     "http:",
		CacheMaxMemoryBytes: 32 << 20,
		mutex:               &sync.RWMutex{},
		wg:                  &sync.WaitGroup{},
	}

	h.logger = newLogger(h)
	h.cache = newCache(h)
	h.urlPool = newURLPool(h)

	return h
}

// Parse parses the s into a new URL value that belongs to the h.
//
// The s may be empty, relative or absolute. Malformed or partial input never
// fails, it degrades to a best-effort split with empty components.
func (h *Href) Parse(s string) *URL {
	h.mutex.RLock()
	cacheEnabled := h.CacheEnabled
	h.mutex.RUnlock()

	if cacheEnabled {
		return h.cache.parse(s)
	}

	return h.parse(s)
}

// parse parses the s without going through the cache.
func (h *Href) parse(s string) *URL {
	u := newURL(h)
	parseInto(u, s)
	return u
}

// defaultProtocol returns the normalized `DefaultProtocol` of the h.
func (h *Href) defaultProtocol() string {
	h.mutex.RLock()
	dp := h.DefaultProtocol
	h.mutex.RUnlock()

	return normalizeProtocol(dp)
}

// Close stops the config watcher of the h, if any, and waits for it to exit.
func (h *Href) Close() error {
	h.mutex.Lock()
	w, done := h.watcher, h.done
	h.watcher, h.done = nil, nil
	h.mutex.Unlock()

	if w == nil {
		return nil
	}

	close(done)
	err := w.Close()
	h.wg.Wait()

	return err
}

// Parse parses the s into a new URL value by using the `Default`.
func Parse(s string) *URL {
	return Default.Parse(s)
}

// DEBUG logs the message at the `LoggerLevelDebug` with the optional extras
// by using the `Default`.
func DEBUG(message string, extras ...map[string]interface{}) {
	Default.DEBUG(message, extras...)
}

// INFO logs the message at the `LoggerLevelInfo` with the optional extras by
// using the `Default`.
func INFO(message string, extras ...map[string]interface{}) {
	Default.INFO(message, extras...)
}

// WARN logs the message at the `LoggerLevelWarn` with the optional extras by
// using the `Default`.
func WARN(message string, extras ...map[string]interface{}) {
	Default.WARN(message, extras...)
}

// ERROR logs the message at the `LoggerLevelError` with the optional extras
// by using the `Default`.
func ERROR(message string, extras ...map[string]interface{}) {
	Default.ERROR(message, extras...)
}

// FATAL logs the message at the `LoggerLevelFatal` with the optional extras
// by using the `Default`, and then calls the `os.Exit(1)`.
func FATAL(message string, extras ...map[string]interface{}) {
	Default.FATAL(message, extras...)
}

// PANIC logs the message at the `LoggerLevelPanic` with the optional extras
// by using the `Default`, and then panics with the message.
func PANIC(message string, extras ...map[string]interface{}) {
	Default.PANIC(message, extras...)
}

// DEBUG logs the message at the `LoggerLevelDebug` with the optional extras.
func (h *Href) DEBUG(message string, extras ...map[string]interface{}) {
	h.logger.log(LoggerLevelDebug, message, extras...)
}

// INFO logs the message at the `LoggerLevelInfo` with the optional extras.
func (h *Href) INFO(message string, extras ...map[string]interface{}) {
	h.logger.log(LoggerLevelInfo, message, extras...)
}

// WARN logs the message at the `LoggerLevelWarn` with the optional extras.
func (h *Href) WARN(message string, extras ...map[string]interface{}) {
	h.logger.log(LoggerLevelWarn, message, extras...)
}

// ERROR logs the message at the `LoggerLevelError` with the optional extras.
func (h *Href) ERROR(message string, extras ...map[string]interface{}) {
	h.logger.log(LoggerLevelError, message, extras...)
}

// FATAL logs the message at the `LoggerLevelFatal` with the optional extras,
// and then calls the `os.Exit(1)`.
func (h *Href) FATAL(message string, extras ...map[string]interface{}) {
	h.logger.log(LoggerLevelFatal, message, extras...)
	osExit(1)
}

// PANIC logs the message at the `LoggerLevelPanic` with the optional extras,
// and then panics with the message.
func (h *Href) PANIC(message string, extras ...map[string]interface{}) {
	h.logger.log(LoggerLevelPanic, message, extras...)
	panic(message)
}
