package controllers

import (
	"gourluses/repository"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	DB repository.Repository
}

// Status reports ok, or 503 when the repository has a server that does not
// answer a ping.
func (h HealthController) Status(c *gin.Context) {
	if p, ok := h.DB.(repository.Pinger); ok {
		if err := p.Ping(c.Request.Context()); err != nil {
			fail(c, newHTTPError(http.StatusServiceUnavailable, "%s", err.Error()))
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
