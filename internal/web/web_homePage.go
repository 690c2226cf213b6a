package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-while/go-cuillere/internal/templates"
)

func (s *WebServer) homePage(c *gin.Context) {
	s.renderHTML(c, http.StatusOK, templates.OrFallback(templates.Home()))
}
