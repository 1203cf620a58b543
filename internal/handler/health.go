package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health godoc
// @Summary      Health check
// @Description  Reports whether the digest service is wired
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	status := "healthy"
	if h.digests == nil {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}
