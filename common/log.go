package common

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// NewLogger returns a logrus logger configured the way the teacher's
// packages expect: text formatter, timestamps, level from BSPWM1_LOG_LEVEL.
func NewLogger() *log.Logger {
	l := log.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	level := log.InfoLevel
	if v := os.Getenv("BSPWM1_LOG_LEVEL"); v != "" {
		if parsed, err := log.ParseLevel(v); err == nil {
			level = parsed
		}
	}
	l.SetLevel(level)

	return l
}

// Build carries version metadata the way the teacher's common.Build does,
// surfaced in the daemon's startup log line and the _NET_WM_NAME-equivalent
// identification the socket protocol never needs but logs benefit from.
var Build = struct {
	Name    string
	Version string
	Summary string
}{
	Name:    "bspwm1",
	Version: "dev",
	Summary: "bspwm1 dev",
}
