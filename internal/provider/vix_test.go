package provider

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"market-pulse/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

func docFromHTML(t *testing.T, page string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestExtractVIXStructuredField(t *testing.T) {
	doc := docFromHTML(t, `<html><body>
		<span>52 week 10.62</span>
		<fin-streamer data-symbol="^VIX" data-field="regularMarketChange">-0.31</fin-streamer>
		<fin-streamer data-symbol="^VIX" data-field="regularMarketPrice">1,018.456</fin-streamer>
	</body></html>`)

	v, err := extractVIX(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 1018.456 {
		t.Fatalf("expected 1018.456, got %v", v)
	}
}

func TestExtractVIXDataValueAttribute(t *testing.T) {
	doc := docFromHTML(t, `<fin-streamer data-symbol="^VIX" data-field="regularMarketPrice" data-value="17.25"></fin-streamer>`)
	v, err := extractVIX(doc)
	if err != nil || v != 17.25 {
		t.Fatalf("expected 17.25, got %v (%v)", v, err)
	}
}

func TestExtractVIXFallbackPattern(t *testing.T) {
	doc := docFromHTML(t, `<html><body><h1>CBOE Volatility Index</h1><p>Last 21.47 at close</p></body></html>`)
	v, err := extractVIX(doc)
	if err != nil || v != 21.47 {
		t.Fatalf("expected fallback 21.47, got %v (%v)", v, err)
	}
}

func TestExtractVIXPlaceholderQuoteIsUnavailable(t *testing.T) {
	tests := []struct {
		name string
		page string
	}{
		{name: "n/a", page: `<p>Prev close 12.34</p><fin-streamer data-symbol="^VIX" data-field="regularMarketPrice">N/A</fin-streamer>`},
		{name: "dashes", page: `<p>Day range 15.02 - 16.88</p><fin-streamer data-symbol="^VIX" data-field="regularMarketPrice" data-value="--">--</fin-streamer>`},
		{name: "empty", page: `<p>Open 19.90</p><fin-streamer data-symbol="^VIX" data-field="regularMarketPrice"></fin-streamer>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := extractVIX(docFromHTML(t, tt.page))
			if !errors.Is(err, domain.ErrParse) {
				t.Fatalf("expected parse error, got value=%v err=%v", v, err)
			}
		})
	}
}

func TestExtractVIXNotFound(t *testing.T) {
	doc := docFromHTML(t, `<html><body>no numbers here</body></html>`)
	if _, err := extractVIX(doc); !errors.Is(err, domain.ErrParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestVIXFetchLatest(t *testing.T) {
	p := NewVIXProvider(testTracer(), time.Second)
	p.baseURL = "https://example.com"
	p.client.SetTransport(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.EscapedPath() != "/quote/%5EVIX/" {
			t.Fatalf("unexpected path: %s", req.URL.EscapedPath())
		}
		if ua := req.Header.Get("User-Agent"); ua != browserUserAgent {
			t.Fatalf("unexpected user agent: %q", ua)
		}
		return stubResponse(req, http.StatusOK, `<fin-streamer data-symbol="^VIX" data-field="regularMarketPrice">18.5</fin-streamer>`), nil
	}))

	v, err := p.FetchLatest(context.Background())
	if err != nil || v != 18.5 {
		t.Fatalf("expected 18.5, got %v (%v)", v, err)
	}
}

func TestVIXFetchLatestStatusError(t *testing.T) {
	p := NewVIXProvider(testTracer(), time.Second)
	p.client.SetTransport(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return stubResponse(req, http.StatusForbidden, "denied"), nil
	}))
	if _, err := p.FetchLatest(context.Background()); !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
}
