package provider

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"market-pulse/internal/domain"
)

const haoETFPage = `<html><body><table>
	<tr><td>场内价格</td><td>1.234</td></tr>
	<tr><td>涨幅 2.5 %</td><td>12%</td></tr>
	<tr><td> -0.87 <span>%</span></td><td>+3.10%</td></tr>
</table></body></html>`

func TestExtractPremiumFirstStrictMatch(t *testing.T) {
	v, err := extractPremium(docFromHTML(t, haoETFPage))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != -0.87 {
		t.Fatalf("expected -0.87, got %v", v)
	}
}

func TestExtractPremiumSignedPositive(t *testing.T) {
	v, err := extractPremium(docFromHTML(t, `<table><tr><td>+12.30%</td></tr></table>`))
	if err != nil || v != 12.3 {
		t.Fatalf("expected 12.3, got %v (%v)", v, err)
	}
}

func TestExtractPremiumMissing(t *testing.T) {
	_, err := extractPremium(docFromHTML(t, `<table><tr><td>12%</td><td>n/a</td></tr></table>`))
	if !errors.Is(err, domain.ErrParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestHaoETFFetchPremium(t *testing.T) {
	p := NewHaoETFProvider(testTracer(), time.Second)
	p.baseURL = "https://example.com/"
	p.client.SetTransport(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/qdii/513500" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		return stubResponse(req, http.StatusOK, `<table><tr><td>+1.00%</td></tr></table>`), nil
	}))

	v, err := p.FetchPremium(context.Background(), "513500")
	if err != nil || v != 1 {
		t.Fatalf("expected 1, got %v (%v)", v, err)
	}
}

func TestHaoETFFetchPremiumErrors(t *testing.T) {
	p := NewHaoETFProvider(testTracer(), time.Second)
	p.client.SetTransport(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("dial tcp: timeout")
	}))
	if _, err := p.FetchPremium(context.Background(), "159612"); !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}

	p.client.SetTransport(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return stubResponse(req, http.StatusOK, `<p>maintenance</p>`), nil
	}))
	if _, err := p.FetchPremium(context.Background(), "159612"); !errors.Is(err, domain.ErrParse) {
		t.Fatalf("expected parse error, got %v", err)
	}

	if _, err := p.FetchPremium(context.Background(), " "); err == nil {
		t.Fatal("expected error for empty code")
	}
}
