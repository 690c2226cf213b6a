package web

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-while/go-cuillere/internal/metrics"
	"github.com/go-while/go-cuillere/internal/templates"
	"github.com/sirupsen/logrus"
)

// errorPage is the title and message shown for one status code
type errorPage struct {
	Title   string
	Message string
}

// errorPages maps the intercepted status codes to their page
var errorPages = map[int]errorPage{
	http.StatusNotFound: {
		Title:   "Page introuvable",
		Message: "On a cherché partout (oui, même sous le canapé), et on n'arrive pas à trouver cette page. Déso.",
	},
	http.StatusInternalServerError: {
		Title:   "Erreur interne du serveur",
		Message: "On a tout cassé, mais vous inquiétez pas, on va tout réparer.",
	},
}

// ErrorPages buffers the response of every handler behind it and, when the
// final status is one of errorPages, replaces the body with the rendered
// error page. Status code and headers other than Content-Type are kept.
func ErrorPages() gin.HandlerFunc {
	return func(c *gin.Context) {
		original := c.Writer
		bw := &bufferedWriter{ResponseWriter: original}
		c.Writer = bw

		c.Next()

		c.Writer = original
		status := bw.Status()

		page, ok := errorPages[status]
		if !ok {
			bw.flush()
			return
		}

		if bw.body.Len() > 0 {
			logrus.WithFields(logrus.Fields{
				"status": status,
				"path":   c.Request.URL.Path,
				"body":   bw.body.String(),
			}).Debug("[WEB]: Replacing response body with error page")
		}
		metrics.ObserveRewrite(status)

		header := original.Header()
		header.Set("Content-Type", htmlContentType)
		header.Set("Content-Language", templates.Lang.String())
		header.Del("Content-Length")
		original.WriteHeader(status)
		original.Write(templates.OrFallback(templates.Error(page.Title, page.Message)))
	}
}

// bufferedWriter holds status and body back from the client until
// ErrorPages has seen the final status code. Headers go straight to the
// wrapped writer's header map.
type bufferedWriter struct {
	gin.ResponseWriter
	body      bytes.Buffer
	status    int
	committed bool
}

func (w *bufferedWriter) WriteHeader(code int) {
	if code > 0 && !w.committed {
		w.status = code
	}
}

func (w *bufferedWriter) WriteHeaderNow() {
	w.committed = true
}

func (w *bufferedWriter) Write(data []byte) (int, error) {
	w.committed = true
	return w.body.Write(data)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	w.committed = true
	return w.body.WriteString(s)
}

// Status falls back to the wrapped writer, which already carries 404 when
// gin found no route.
func (w *bufferedWriter) Status() int {
	if w.status != 0 {
		return w.status
	}
	return w.ResponseWriter.Status()
}

func (w *bufferedWriter) Size() int {
	if !w.committed {
		return -1
	}
	return w.body.Len()
}

func (w *bufferedWriter) Written() bool {
	return w.committed
}

// Flush is a no-op: nothing may reach the client before ErrorPages decides.
func (w *bufferedWriter) Flush() {}

// flush hands the held back response to the wrapped writer unchanged
func (w *bufferedWriter) flush() {
	w.ResponseWriter.WriteHeader(w.Status())
	if w.body.Len() > 0 {
		w.ResponseWriter.Write(w.body.Bytes())
		return
	}
	if w.committed {
		w.ResponseWriter.WriteHeaderNow()
	}
}
