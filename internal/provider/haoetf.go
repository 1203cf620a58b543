package provider

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"market-pulse/internal/domain"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const haoETFBaseURL = "https://www.haoetf.com"

var premiumCellPattern = regexp.MustCompile(`^[+-]?\d+\.\d+%$`)

// HaoETFProvider scrapes QDII fund premium/discount rates from haoetf.com.
type HaoETFProvider struct {
	client   *resty.Client
	baseURL  string
	tracer   trace.Tracer
	throttle *Throttle
}

func NewHaoETFProvider(tracer trace.Tracer, timeout time.Duration) *HaoETFProvider {
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	return &HaoETFProvider{
		client:   newPageClient(timeout),
		baseURL:  haoETFBaseURL,
		tracer:   tracer,
		throttle: NewThrottle(2, 500*time.Millisecond),
	}
}

// FetchPremium returns the premium of the fund in percent, e.g. 1.23 for +1.23%.
func (p *HaoETFProvider) FetchPremium(ctx context.Context, code string) (float64, error) {
	ctx, span := p.tracer.Start(ctx, "haoetf.fetch-premium")
	defer span.End()
	span.SetAttributes(attribute.String("fund.code", code))

	code = strings.TrimSpace(code)
	if code == "" {
		return 0, fmt.Errorf("fund code is required")
	}

	if err := p.throttle.Wait(ctx); err != nil {
		return 0, err
	}
	doc, err := fetchDocument(ctx, p.client, strings.TrimRight(p.baseURL, "/")+"/qdii/"+code)
	if err != nil {
		return 0, err
	}
	premium, err := extractPremium(doc)
	if err != nil {
		return 0, fmt.Errorf("fund %s: %w", code, err)
	}
	return premium, nil
}

// extractPremium returns the first table cell, in document order, whose whole
// text is a signed percentage with a fractional part.
func extractPremium(doc *goquery.Document) (float64, error) {
	var cell string
	doc.Find("td").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strippedText(s)
		if premiumCellPattern.MatchString(text) {
			cell = text
			return false
		}
		return true
	})
	if cell == "" {
		return 0, fmt.Errorf("premium cell not found: %w", domain.ErrParse)
	}

	v, err := strconv.ParseFloat(strings.TrimSuffix(cell, "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("parse premium %q: %w: %w", cell, domain.ErrParse, err)
	}
	return v, nil
}
