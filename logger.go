package wad

import "github.com/go-stdlog/stdlog"

var logger stdlog.Logger = stdlog.Discard

// SetLogger sets the logger used by the package. Passing nil silences it.
func SetLogger(l stdlog.Logger) {
	if l == nil {
		logger = stdlog.Discard
		return
	}
	logger = l.Named("wad")
}
