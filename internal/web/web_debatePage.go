package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-while/go-cuillere/internal/metrics"
	"github.com/go-while/go-cuillere/internal/templates"
)

// debatePage answers the debate given in the query string.
// A missing parameter gets the same prompt as the API, as an HTML page.
// An empty value is still a debate.
func (s *WebServer) debatePage(c *gin.Context) {
	debate, ok := c.GetQuery("debate")
	if !ok {
		s.renderHTML(c, http.StatusBadRequest, templates.OrFallback(templates.Error("Requête invalide", missingDebateMessage)))
		return
	}

	metrics.ObserveDebate("page")
	s.renderHTML(c, http.StatusOK, templates.OrFallback(templates.Debate(debate, answers())))
}
