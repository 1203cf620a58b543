package handler

import (
	"context"

	"market-pulse/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type DigestService interface {
	Build(ctx context.Context) domain.Digest
	Run(ctx context.Context) domain.Digest
}

type Handler struct {
	tracer  trace.Tracer
	digests DigestService
}

func New(tracer trace.Tracer, digests DigestService) *Handler {
	return &Handler{
		tracer:  tracer,
		digests: digests,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, apiKey string) {
	r.GET("/health", h.Health)

	api := r.Group("/api", APIKeyAuth(apiKey))
	api.GET("/digest", h.PreviewDigest)
	api.POST("/digest/run", h.RunDigest)
}
