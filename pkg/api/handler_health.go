package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oracle/wls-alert-webhook/pkg/version"
)

const healthStatusHealthy = "healthy"

// healthHandler handles GET /health. The receiver has no dependencies, so
// it is healthy whenever it can answer.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, &HealthResponse{
		Status:  healthStatusHealthy,
		Version: version.GitCommit,
	})
}
