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
	"go.opentelemetry.io/otel/trace"
)

const yahooFinanceBaseURL = "https://finance.yahoo.com"

const vixPriceSelector = `fin-streamer[data-symbol="^VIX"][data-field="regularMarketPrice"]`

var vixFallbackPattern = regexp.MustCompile(`(\d+\.\d{2})`)

// VIXProvider scrapes the CBOE volatility index from the Yahoo Finance quote page.
type VIXProvider struct {
	client  *resty.Client
	baseURL string
	tracer  trace.Tracer
}

func NewVIXProvider(tracer trace.Tracer, timeout time.Duration) *VIXProvider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &VIXProvider{
		client:  newPageClient(timeout),
		baseURL: yahooFinanceBaseURL,
		tracer:  tracer,
	}
}

// FetchLatest returns the unrounded VIX value shown on the quote page.
func (p *VIXProvider) FetchLatest(ctx context.Context) (float64, error) {
	ctx, span := p.tracer.Start(ctx, "vix.fetch-latest")
	defer span.End()

	doc, err := fetchDocument(ctx, p.client, strings.TrimRight(p.baseURL, "/")+"/quote/%5EVIX/")
	if err != nil {
		return 0, err
	}
	return extractVIX(doc)
}

// extractVIX reads the structured price element. The page text is scanned for
// the first two-decimal number only when that element is missing.
func extractVIX(doc *goquery.Document) (float64, error) {
	tag := doc.Find(vixPriceSelector).First()
	if tag.Length() > 0 {
		candidates := []string{tag.Text()}
		if v, ok := tag.Attr("data-value"); ok {
			candidates = append(candidates, v)
		}
		for _, c := range candidates {
			c = strings.ReplaceAll(strings.TrimSpace(c), ",", "")
			if c == "" {
				continue
			}
			if v, err := strconv.ParseFloat(c, 64); err == nil {
				return v, nil
			}
		}
		return 0, fmt.Errorf("vix price field %q is not a number: %w", strings.TrimSpace(tag.Text()), domain.ErrParse)
	}

	if m := vixFallbackPattern.FindStringSubmatch(doc.Text()); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return v, nil
		}
	}
	return 0, fmt.Errorf("vix value not found in page: %w", domain.ErrParse)
}
