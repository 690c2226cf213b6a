package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newErrorPagesEngine(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(ErrorPages())
	engine.GET("/", handler)
	return engine
}

func serve(engine *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestErrorPagesPassThrough(t *testing.T) {
	engine := newErrorPagesEngine(func(c *gin.Context) {
		c.Header("X-Custom", "kept")
		c.Data(http.StatusTeapot, "text/plain", []byte("je suis une théière"))
	})

	w := serve(engine, "/")

	require.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "text/plain", w.Header().Get("Content-Type"))
	assert.Equal(t, "kept", w.Header().Get("X-Custom"))
	assert.Equal(t, "je suis une théière", w.Body.String())
}

func TestErrorPagesEmptyBody(t *testing.T) {
	engine := newErrorPagesEngine(func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := serve(engine, "/")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestErrorPagesRewriteKeepsHeaders(t *testing.T) {
	engine := newErrorPagesEngine(func(c *gin.Context) {
		c.Header("X-Custom", "kept")
		c.Header("Content-Type", "application/json")
		c.AbortWithStatus(http.StatusNotFound)
	})

	w := serve(engine, "/")

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "kept", w.Header().Get("X-Custom"))
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "Page introuvable")
}

func TestErrorPagesNoRoute(t *testing.T) {
	engine := newErrorPagesEngine(func(c *gin.Context) {})

	w := serve(engine, "/missing")

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page introuvable")
	assert.NotContains(t, w.Body.String(), "404 page not found")
}

func TestBufferedWriterHoldsBackStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	bw := &bufferedWriter{ResponseWriter: c.Writer}
	assert.False(t, bw.Written())
	assert.Equal(t, -1, bw.Size())

	bw.WriteHeader(http.StatusCreated)
	n, err := bw.WriteString("créé")
	require.NoError(t, err)
	assert.Equal(t, len("créé"), n)

	bw.WriteHeader(http.StatusAccepted) // ignored once written
	assert.Equal(t, http.StatusCreated, bw.Status())
	assert.True(t, bw.Written())
	assert.Empty(t, rec.Body.String(), "nothing reaches the client before flush")

	bw.flush()
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "créé", rec.Body.String())
}
