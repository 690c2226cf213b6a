package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-while/go-cuillere/internal/metrics"
)

// APIResponse is the JSON answer of /api
type APIResponse struct {
	Debate      string `json:"debate"`
	ElapsedTime int64  `json:"elapsed_time"` // microseconds
	Answer      string `json:"answer"`
}

// APIError is the JSON body of a rejected /api request
type APIError struct {
	Error string `json:"error"`
}

// apiDebate is the JSON twin of debatePage
func (s *WebServer) apiDebate(c *gin.Context) {
	debate, ok := c.GetQuery("debate")
	if !ok {
		c.JSON(http.StatusBadRequest, APIError{Error: missingDebateMessage})
		return
	}

	start := time.Now()
	answer := Answer
	elapsed := time.Since(start)

	metrics.ObserveDebate("api")
	c.JSON(http.StatusOK, APIResponse{
		Debate:      debate,
		ElapsedTime: elapsed.Microseconds(),
		Answer:      answer,
	})
}
