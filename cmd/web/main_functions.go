package main

import (
	"os"

	prof "github.com/go-while/go-cpu-mem-profiler"
	"github.com/go-while/go-cuillere/internal/config"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// Prof is set when the pprof web endpoint is enabled
var Prof *prof.Profiler

// setupLogging applies level and format from the configuration to logrus
func setupLogging(webConfig *config.WebConfig) {
	level, err := logrus.ParseLevel(webConfig.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if webConfig.Debug && level < logrus.DebugLevel {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(newFormatter(webConfig.LogFormat, term.IsTerminal(int(os.Stdout.Fd()))))
}

// newFormatter picks the logrus formatter: "auto" means text on a terminal
// and JSON everywhere else
func newFormatter(format string, isTerminal bool) logrus.Formatter {
	switch format {
	case config.LogFormatText:
		return &logrus.TextFormatter{FullTimestamp: true}
	case config.LogFormatJSON:
		return &logrus.JSONFormatter{}
	}
	if isTerminal {
		return &logrus.TextFormatter{FullTimestamp: true}
	}
	return &logrus.JSONFormatter{}
}

// startProfiler serves pprof on addr in the background
func startProfiler(addr string) {
	Prof = prof.NewProf()
	logrus.Infof("[WEB]: Starting pprof server on %s", addr)
	logrus.Infof("[WEB]:   Memory profile: http://localhost%s/debug/pprof/heap", addr)
	logrus.Infof("[WEB]:   CPU profile: http://localhost%s/debug/pprof/profile", addr)
	go Prof.PprofWeb(addr)
}
