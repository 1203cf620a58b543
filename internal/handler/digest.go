package handler

import (
	"errors"
	"net/http"
	"time"

	"market-pulse/internal/domain"

	"github.com/gin-gonic/gin"
)

type premiumResponse struct {
	Code    string   `json:"code"`
	Name    string   `json:"name"`
	Premium *float64 `json:"premium_percent"`
	Status  string   `json:"status"`
}

type digestResponse struct {
	GeneratedAt time.Time             `json:"generated_at"`
	Snapshot    domain.MetricSnapshot `json:"snapshot"`
	Premiums    []premiumResponse     `json:"premiums"`
	Signals     []domain.Signal       `json:"signals"`
	Title       string                `json:"title"`
	Body        string                `json:"body"`
}

// PreviewDigest godoc
// @Summary      Preview today's market digest
// @Description  Collects every metric and evaluates advisories without pushing a notification
// @Tags         digest
// @Produce      json
// @Success      200  {object}  digestResponse
// @Failure      503  {object}  map[string]string
// @Security     ApiKeyAuth
// @Router       /api/digest [get]
func (h *Handler) PreviewDigest(c *gin.Context) {
	if h.digests == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "digest service unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.preview-digest")
	defer span.End()

	c.JSON(http.StatusOK, newDigestResponse(h.digests.Build(ctx)))
}

// RunDigest godoc
// @Summary      Run the digest and push it
// @Description  Collects, evaluates and delivers the digest to the configured push channels
// @Tags         digest
// @Produce      json
// @Success      200  {object}  digestResponse
// @Failure      503  {object}  map[string]string
// @Security     ApiKeyAuth
// @Router       /api/digest/run [post]
func (h *Handler) RunDigest(c *gin.Context) {
	if h.digests == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "digest service unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.run-digest")
	defer span.End()

	c.JSON(http.StatusOK, newDigestResponse(h.digests.Run(ctx)))
}

func newDigestResponse(d domain.Digest) digestResponse {
	premiums := make([]premiumResponse, 0, len(d.Premiums))
	for _, p := range d.Premiums {
		premiums = append(premiums, premiumResponse{
			Code:    p.Fund.Code,
			Name:    p.Fund.Name,
			Premium: p.Premium,
			Status:  premiumStatus(p),
		})
	}
	signals := d.Signals
	if signals == nil {
		signals = []domain.Signal{}
	}
	return digestResponse{
		GeneratedAt: d.GeneratedAt,
		Snapshot:    d.Snapshot,
		Premiums:    premiums,
		Signals:     signals,
		Title:       d.Title,
		Body:        d.Body,
	}
}

func premiumStatus(p domain.ETFPremium) string {
	switch {
	case p.Available():
		return "ok"
	case errors.Is(p.Err, domain.ErrParse):
		return "not_found"
	default:
		return "fetch_failed"
	}
}
