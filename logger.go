package href

import (
	"encoding/json"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// logger is an active logging object that generates lines of output.
type logger struct {
	h     *Href
	mutex *sync.Mutex
}

// newLogger returns a new instance of the `logger` with the h.
func newLogger(h *Href) *logger {
	return &logger{
		h:     h,
		mutex: &sync.Mutex{},
	}
}

// log logs the message at the level with the optional extras.
func (l *logger) log(
	level LoggerLevel,
	message string,
	extras ...map[string]interface{},
) {
	l.h.mutex.RLock()
	appName := l.h.AppName
	debugMode := l.h.DebugMode
	lowestLevel := l.h.LoggerLowestLevel
	output := l.h.LoggerOutput
	l.h.mutex.RUnlock()

	if !debugMode && level < lowestLevel {
		return
	} else if output == nil {
		return
	}

	fields := map[string]interface{}{}
	for _, extra := range extras {
		for k, v := range extra {
			fields[k] = v
		}
	}

	fields["app_name"] = appName
	fields["time"] = time.Now().UnixNano()
	fields["level"] = level.String()
	fields["message"] = message

	if _, file, line, ok := runtime.Caller(2); ok {
		fields["file"] = filepath.Base(file)
		fields["line"] = line
	}

	var (
		b   []byte
		err error
	)

	if debugMode {
		b, err = json.MarshalIndent(fields, "", "\t")
	} else {
		b, err = json.Marshal(fields)
	}

	if err != nil {
		return
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	output.Write(append(b, '\n'))
}

// LoggerLevel is the level of the logger.
type LoggerLevel uint8

// The logger levels.
const (
	LoggerLevelDebug LoggerLevel = iota
	LoggerLevelInfo
	LoggerLevelWarn
	LoggerLevelError
	LoggerLevelFatal
	LoggerLevelPanic
	LoggerLevelOff
)

// String returns the string value of the ll.
func (ll LoggerLevel) String() string {
	switch ll {
	case LoggerLevelDebug:
		return "debug"
	case LoggerLevelInfo:
		return "info"
	case LoggerLevelWarn:
		return "warn"
	case LoggerLevelError:
		return "error"
	case LoggerLevelFatal:
		return "fatal"
	case LoggerLevelPanic:
		return "panic"
	}

	return "off"
}

// parseLoggerLevel returns the `LoggerLevel` named s. It reports false if
// there is no such level.
func parseLoggerLevel(s string) (LoggerLevel, bool) {
	for ll := LoggerLevelDebug; ll <= LoggerLevelOff; ll++ {
		if ll.String() == s {
			return ll, true
		}
	}

	return LoggerLevelOff, false
}
