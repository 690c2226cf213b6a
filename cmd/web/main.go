// Web server for go-cuillere
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-while/go-cuillere/internal/config"
	"github.com/go-while/go-cuillere/internal/statics"
	"github.com/go-while/go-cuillere/internal/web"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

var (
	// command-line flags
	configPath string
	listenAddr string
	webssl     bool
	certFile   string
	keyFile    string
	logLevel   string
	logFormat  string
	pprofAddr  string
	debug      bool
)

var appVersion = "-unset-"

func main() {
	config.AppVersion = appVersion

	flag.StringVar(&configPath, "config", "", "YAML config file (optional)")
	flag.StringVar(&listenAddr, "listen", "", "Web server listen address (default: "+config.DefaultListenAddr+")")
	flag.BoolVar(&webssl, "webssl", false, "Enable SSL")
	flag.StringVar(&certFile, "websslcert", "", "SSL certificate file (/path/to/fullchain.pem)")
	flag.StringVar(&keyFile, "websslkey", "", "SSL key file (/path/to/privkey.pem)")
	flag.StringVar(&logLevel, "loglevel", "", "Log level: trace, debug, info, warn, error (default: info)")
	flag.StringVar(&logFormat, "logformat", "", "Log format: auto, text, json (default: auto)")
	flag.StringVar(&pprofAddr, "pprof", "", "Enable pprof HTTP server on specified address (e.g., ':6060')")
	flag.BoolVar(&debug, "debug", false, "Enable gin debug mode and debug logging")
	flag.Parse()

	mainConfig, err := config.Load(configPath)
	if err != nil {
		logrus.Fatalf("[WEB]: Failed to load configuration: %v", err)
	}
	webConfig := &mainConfig.Web
	applyFlags(webConfig)
	if err := mainConfig.Validate(); err != nil {
		logrus.Fatalf("[WEB]: Invalid configuration: %v", err)
	}

	setupLogging(webConfig)
	logrus.Infof("[WEB]: Starting go-cuillere web server (version: %s)", appVersion)
	logrus.Debugf("[WEB]: Using WEB configuration: %#v", webConfig)
	logrus.WithField("files", statics.Names()).Info("[WEB]: Static files registered")

	if webConfig.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if webConfig.PprofAddr != "" {
		startProfiler(webConfig.PprofAddr)
	}

	server := web.NewServer(webConfig)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start web server in goroutine to make it non-blocking
	webServerErrChan := make(chan error, 1)
	go func() {
		webServerErrChan <- server.Start()
	}()

	select {
	case sig := <-sigChan:
		logrus.Infof("[WEB]: Received %s, initiating graceful shutdown...", sig)
	case err := <-webServerErrChan:
		if err != nil {
			logrus.Fatalf("[WEB]: Failed to start web server: %v", err)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logrus.Errorf("[WEB]: Graceful shutdown failed: %v", err)
		os.Exit(1)
	}
	logrus.Info("[WEB]: Graceful shutdown completed")
}

// applyFlags overrides the loaded configuration with command-line flags if provided
func applyFlags(webConfig *config.WebConfig) {
	if listenAddr != "" {
		webConfig.ListenAddr = listenAddr
		logrus.Debugf("[WEB]: Overriding listen address with command-line flag: %s", listenAddr)
	}
	if webssl {
		webConfig.SSL = true
		logrus.Debug("[WEB]: SSL enabled via command-line flag")
	}
	if certFile != "" {
		webConfig.CertFile = certFile
	}
	if keyFile != "" {
		webConfig.KeyFile = keyFile
	}
	if logLevel != "" {
		webConfig.LogLevel = logLevel
	}
	if logFormat != "" {
		webConfig.LogFormat = logFormat
	}
	if pprofAddr != "" {
		webConfig.PprofAddr = pprofAddr
	}
	if debug {
		webConfig.Debug = true
	}
}
