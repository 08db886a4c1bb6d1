package href

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v2"
)

// config is the part of the `Href` that can be loaded from a config file.
type config struct {
	AppName             string      `mapstructure:"app_name"`
	DebugMode           bool        `mapstructure:"debug_mode"`
	LoggerLowestLevel   LoggerLevel `mapstructure:"logger_lowest_level"`
	DefaultProtocol     string      `mapstructure:"default_protocol"`
	CacheEnabled        bool        `mapstructure:"cache_enabled"`
	CacheMaxMemoryBytes int         `mapstructure:"cache_max_memory_bytes"`
}

// LoadConfig loads the config file found in the filename into the h.
//
// The format is picked by the extension of the filename: ".toml", ".yaml",
// ".yml", ".json" or ".ini" (keys of the default section only). Keys that are
// absent from the file leave the matching fields of the h untouched.
func (h *Href) LoadConfig(filename string) error {
	b, err := ioutil.ReadFile(filename)
	if err != nil {
		return err
	}

	m, err := unmarshalConfig(filepath.Ext(filename), b)
	if err != nil {
		return fmt.Errorf("href: failed to parse config file %s: %v", filename, err)
	}

	h.mutex.Lock()

	c := config{
		AppName:             h.AppName,
		DebugMode:           h.DebugMode,
		LoggerLowestLevel:   h.LoggerLowestLevel,
		DefaultProtocol:     h.DefaultProtocol,
		CacheEnabled:        h.CacheEnabled,
		CacheMaxMemoryBytes: h.CacheMaxMemoryBytes,
	}

	if err := decodeConfig(m, &c); err != nil {
		h.mutex.Unlock()
		return fmt.Errorf("href: failed to decode config file %s: %v", filename, err)
	} else if c.CacheMaxMemoryBytes <= 0 {
		h.mutex.Unlock()
		return fmt.Errorf(
			"href: invalid cache_max_memory_bytes %d in config file %s",
			c.CacheMaxMemoryBytes,
			filename,
		)
	}

	wasCacheEnabled := h.CacheEnabled

	h.AppName = c.AppName
	h.DebugMode = c.DebugMode
	h.LoggerLowestLevel = c.LoggerLowestLevel
	h.DefaultProtocol = c.DefaultProtocol
	h.CacheEnabled = c.CacheEnabled
	h.CacheMaxMemoryBytes = c.CacheMaxMemoryBytes
	h.ConfigFile = filename

	h.mutex.Unlock()

	if wasCacheEnabled && !c.CacheEnabled {
		h.cache.reset()
	}

	h.INFO("href: config file loaded", map[string]interface{}{
		"config_file": filename,
	})

	return nil
}

// WatchConfig loads the config file found in the filename into the h, then
// keeps reloading it whenever it changes until the `Href.Close` is called.
func (h *Href) WatchConfig(filename string) error {
	if err := h.LoadConfig(filename); err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// The directory is watched since many editors replace files on save.
	if err := w.Add(filepath.Dir(filename)); err != nil {
		w.Close()
		return err
	}

	h.mutex.Lock()
	if h.watcher != nil {
		h.mutex.Unlock()
		w.Close()
		return errors.New("href: a config file is already being watched")
	}

	done := make(chan struct{})
	h.watcher, h.done = w, done
	h.wg.Add(1)
	h.mutex.Unlock()

	go h.watchConfig(w, done, filename)

	return nil
}

// watchConfig reloads the config file found in the filename on every write
// or create event of the w until the done is closed.
func (h *Href) watchConfig(w *fsnotify.Watcher, done chan struct{}, filename string) {
	defer h.wg.Done()

	name := filepath.Clean(filename)
	for {
		select {
		case <-done:
			return
		case e, ok := <-w.Events:
			if !ok {
				return
			} else if filepath.Clean(e.Name) != name {
				continue
			} else if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			h.DEBUG("href: config file event occurs", map[string]interface{}{
				"file":  e.Name,
				"event": e.Op.String(),
			})

			if err := h.LoadConfig(filename); err != nil {
				h.ERROR("href: failed to reload config file", map[string]interface{}{
					"config_file": filename,
					"error":       err.Error(),
				})
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}

			h.ERROR("href: config watcher error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

// unmarshalConfig unmarshals the b into a map by using the format indicated
// by the ext.
func unmarshalConfig(ext string, b []byte) (map[string]interface{}, error) {
	m := map[string]interface{}{}

	var err error
	switch strings.ToLower(ext) {
	case ".toml":
		err = toml.Unmarshal(b, &m)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &m)
	case ".json":
		err = json.Unmarshal(b, &m)
	case ".ini":
		var f *ini.File
		if f, err = ini.Load(b); err == nil {
			for k, v := range f.Section("").KeysHash() {
				m[k] = v
			}
		}
	default:
		err = fmt.Errorf("unsupported extension %q", ext)
	}

	if err != nil {
		return nil, err
	}

	return m, nil
}

// decodeConfig decodes the m into the c. Values are weakly typed, so "true"
// and "1024" from an INI file work as well as their native forms.
func decodeConfig(m map[string]interface{}, c *config) error {
	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       loggerLevelHook,
		WeaklyTypedInput: true,
		Result:           c,
	})
	if err != nil {
		return err
	}

	return d.Decode(m)
}

// loggerLevelHook is a `mapstructure.DecodeHookFuncType` that turns level
// names such as "debug" into `LoggerLevel`s.
func loggerLevelHook(f, t reflect.Type, data interface{}) (interface{}, error) {
	if f.Kind() != reflect.String || t != reflect.TypeOf(LoggerLevel(0)) {
		return data, nil
	}

	s := strings.ToLower(strings.TrimSpace(data.(string)))
	if ll, ok := parseLoggerLevel(s); ok {
		return ll, nil
	}

	return nil, fmt.Errorf("unknown logger level %q", s)
}
