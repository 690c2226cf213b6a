// Package web provides the HTTP server and web interface for go-cuillere
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/go-while/go-cuillere/internal/config"
	"github.com/go-while/go-cuillere/internal/metrics"
	"github.com/sirupsen/logrus"
)

// WebServer represents the web server
type WebServer struct {
	Router     *gin.Engine
	Config     *config.WebConfig
	StartTime  time.Time // Track server start time for uptime calculations
	httpServer *http.Server
}

// NewServer creates a new web server instance.
// The gin mode is left to the caller.
func NewServer(webconfig *config.WebConfig) *WebServer {
	router := gin.New()

	// Only loopback proxies are trusted for X-Forwarded-For
	router.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	server := &WebServer{
		Router: router,
		Config: webconfig,
		httpServer: &http.Server{
			Addr:              webconfig.ListenAddr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	metrics.MustRegister()
	server.setupMiddleware()
	server.setupRoutes()
	return server
}

// setupMiddleware installs the global middleware chain, outermost first.
// ErrorPages must wrap Recovery so that a panic turned into a 500 still
// gets its body rewritten.
func (s *WebServer) setupMiddleware() {
	s.Router.Use(RequestLogger())

	if s.Config.Gzip {
		// promhttp negotiates its own compression
		s.Router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	}

	secureConfig := secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}
	// Only add SSL-specific headers if SSL is enabled on the application itself
	if s.Config.SSL {
		secureConfig.SSLRedirect = true
		secureConfig.STSSeconds = 31536000
		secureConfig.STSIncludeSubdomains = true
	}
	s.Router.Use(secure.New(secureConfig))

	s.Router.Use(ErrorPages())
	s.Router.Use(gin.CustomRecovery(recoverToInternalError))
}

// setupRoutes configures all HTTP routes
func (s *WebServer) setupRoutes() {
	s.Router.GET("/static/:filename", s.staticFile)

	s.Router.GET("/robots.txt", func(c *gin.Context) {
		c.String(http.StatusOK, "User-agent: *\nDisallow:\n")
	})
	s.Router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	s.Router.GET("/metrics", gin.WrapH(metrics.Handler()))

	s.Router.GET("/", s.homePage)
	s.Router.GET("/debate", s.debatePage)
	s.Router.GET("/api", s.corsMiddleware(), s.apiDebate)
}

// corsMiddleware lets browsers on other origins call the JSON API
func (s *WebServer) corsMiddleware() gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:  []string{http.MethodGet},
		AllowHeaders:  []string{"Origin", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	origins := s.Config.CORSOrigins
	allowAll := len(origins) == 0
	for _, origin := range origins {
		if origin == "*" {
			allowAll = true
		}
	}
	if allowAll {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	return cors.New(corsConfig)
}

// Start starts the web server with SSL support if configured.
// It blocks until the server stops and returns nil after a clean Shutdown.
func (s *WebServer) Start() error {
	s.StartTime = time.Now() // Set the start time for uptime calculations

	var err error
	if s.Config.SSL {
		if s.Config.CertFile == "" || s.Config.KeyFile == "" {
			return errors.New("SSL enabled but cert_file or key_file not specified in config")
		}
		logrus.Infof("[WEB]: Starting HTTPS server on %s", s.Config.ListenAddr)
		err = s.httpServer.ListenAndServeTLS(s.Config.CertFile, s.Config.KeyFile)
	} else {
		logrus.Infof("[WEB]: Starting HTTP server on %s", s.Config.ListenAddr)
		err = s.httpServer.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *WebServer) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// RequestLogger logs every request through logrus once the response is final
// and records it in the request metrics.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		status := c.Writer.Status()
		metrics.ObserveRequest(c.FullPath(), status, latency)

		entry := logrus.WithFields(logrus.Fields{
			"status":    status,
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"latency":   latency.String(),
			"client_ip": c.ClientIP(),
			"size":      c.Writer.Size(),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}

		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("[WEB]: request")
		case status >= http.StatusBadRequest:
			entry.Warn("[WEB]: request")
		default:
			entry.Info("[WEB]: request")
		}
	}
}

// recoverToInternalError turns a handler panic into a 500 that ErrorPages rewrites
func recoverToInternalError(c *gin.Context, recovered any) {
	logrus.WithFields(logrus.Fields{
		"panic": recovered,
		"path":  c.Request.URL.Path,
	}).Error("[WEB]: Handler panicked")
	c.AbortWithStatus(http.StatusInternalServerError)
}
