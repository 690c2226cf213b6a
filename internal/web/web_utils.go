// Package web provides the HTTP server and web interface for go-cuillere
package web

import (
	"github.com/gin-gonic/gin"
	"github.com/go-while/go-cuillere/internal/templates"
)

const htmlContentType = "text/html; charset=utf-8"

// Answer is the reply to every debate
const Answer = "Cuillère."

// missingDebateMessage asks for the debate query parameter
const missingDebateMessage = "Passez moi un query param \"debate\" pour que je puisse faire quelque chose"

// answers returns the answer list shown on the debate page
func answers() []string {
	return []string{Answer}
}

// renderHTML writes an already rendered page. Pass the result of a
// templates function through templates.OrFallback first.
func (s *WebServer) renderHTML(c *gin.Context, statusCode int, body []byte) {
	c.Header("Content-Language", templates.Lang.String())
	c.Data(statusCode, htmlContentType, body)
}
