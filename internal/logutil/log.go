// Package logutil configures the process-wide logrus logger used by the
// rest of this module.
package logutil

import (
	"os"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

var once sync.Once

// Init configures the default logrus logger exactly once per process.
// The level is read from LIFX_LOG_LEVEL (any level name logrus accepts:
// panic, fatal, error, warn, info, debug, trace) and defaults to Info
// when unset or unrecognized. Subsequent calls are no-ops, so packages
// that import this module can call Init defensively without coordinating
// with the host application.
func Init() {
	once.Do(func() {
		level, err := log.ParseLevel(strings.ToLower(os.Getenv("LIFX_LOG_LEVEL")))
		if err != nil {
			level = log.InfoLevel
		}
		log.SetLevel(level)
		log.SetFormatter(&log.TextFormatter{
			FullTimestamp: true,
		})
	})
}

// Discover returns the logger entry used by the client package's
// discovery code, pre-tagged with a component field so multi-client log output
// stays attributable.
func Discover() *log.Entry {
	return log.WithField("component", "discovery")
}

// Transport returns the logger entry used by the client package's
// transport code.
func Transport() *log.Entry {
	return log.WithField("component", "transport")
}
