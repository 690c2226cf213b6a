package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-while/go-cuillere/internal/statics"
)

// farExpires is how long browsers may cache a static file
const farExpires = 180 * 24 * time.Hour

// staticFile serves one file of the static registry
func (s *WebServer) staticFile(c *gin.Context) {
	name := c.Param("filename")
	data, ok := statics.Get(name)
	if !ok {
		// ErrorPages swaps this body for the 404 page
		c.String(http.StatusNotFound, "No such static file.")
		return
	}

	c.Header("Expires", time.Now().Add(farExpires).UTC().Format(http.TimeFormat))
	c.Data(http.StatusOK, data.Mime, data.Content)
}
