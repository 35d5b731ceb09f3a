package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

var (
	mu     sync.RWMutex
	global log.Logger = log.NewNopLogger()
)

// GlobalLogger returns the process logger. It discards everything until
// SetGlobalLogger is called.
func GlobalLogger() log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

func SetGlobalLogger(l log.Logger) {
	if l == nil {
		l = log.NewNopLogger()
	}
	mu.Lock()
	global = l
	mu.Unlock()
}

// New returns a logfmt logger writing to w, filtered at lvl
// ("debug", "info", "warn", "error" or "none").
func New(w io.Writer, lvl string) (log.Logger, error) {
	opt, err := parseLevel(lvl)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}
	l := log.NewLogfmtLogger(log.NewSyncWriter(w))
	l = log.With(l, "ts", log.DefaultTimestampUTC, "caller", log.Caller(5))
	return level.NewFilter(l, opt), nil
}

func parseLevel(lvl string) (level.Option, error) {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return level.AllowDebug(), nil
	case "", "info":
		return level.AllowInfo(), nil
	case "warn", "warning":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	case "none", "off":
		return level.AllowNone(), nil
	}
	return nil, fmt.Errorf("logging: unknown level %q", lvl)
}
