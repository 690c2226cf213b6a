package main

import (
	"testing"

	"github.com/go-while/go-cuillere/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewFormatter(t *testing.T) {
	testCases := []struct {
		format     string
		isTerminal bool
		wantJSON   bool
	}{
		{config.LogFormatAuto, true, false},
		{config.LogFormatAuto, false, true},
		{config.LogFormatText, false, false},
		{config.LogFormatJSON, true, true},
	}

	for _, tc := range testCases {
		f := newFormatter(tc.format, tc.isTerminal)
		_, isJSON := f.(*logrus.JSONFormatter)
		assert.Equal(t, tc.wantJSON, isJSON, "format %s terminal %t", tc.format, tc.isTerminal)
	}
}

func TestSetupLogging(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)

	cfg := config.NewDefaultConfig()
	cfg.Web.LogLevel = "warn"
	setupLogging(&cfg.Web)
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())

	cfg.Web.Debug = true
	setupLogging(&cfg.Web)
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	cfg.Web.LogLevel = "trace"
	setupLogging(&cfg.Web)
	assert.Equal(t, logrus.TraceLevel, logrus.GetLevel())
}

func TestApplyFlags(t *testing.T) {
	listenAddr, webssl, certFile, keyFile = ":9000", true, "c.pem", "k.pem"
	defer func() { listenAddr, webssl, certFile, keyFile = "", false, "", "" }()

	cfg := config.NewDefaultConfig()
	applyFlags(&cfg.Web)

	assert.Equal(t, ":9000", cfg.Web.ListenAddr)
	assert.True(t, cfg.Web.SSL)
	assert.Equal(t, "c.pem", cfg.Web.CertFile)
	assert.Equal(t, "k.pem", cfg.Web.KeyFile)
	assert.Equal(t, "info", cfg.Web.LogLevel, "unset flags keep the loaded value")
	assert.NoError(t, cfg.Validate())
}
