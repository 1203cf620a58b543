package provider

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"market-pulse/internal/domain"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html"
)

const browserUserAgent = "Mozilla/5.0"

func newPageClient(timeout time.Duration) *resty.Client {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", browserUserAgent)
	return client
}

// fetchDocument GETs an HTML page and parses it.
func fetchDocument(ctx context.Context, client *resty.Client, pageURL string) (*goquery.Document, error) {
	resp, err := client.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w: %w", pageURL, domain.ErrNetwork, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("get %s: status %d: %w", pageURL, resp.StatusCode(), domain.ErrNetwork)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w: %w", pageURL, domain.ErrParse, err)
	}
	return doc, nil
}

// strippedText concatenates the selection's text nodes, each trimmed of
// surrounding whitespace, so "<td> +1.20 <b>%</b></td>" reads "+1.20%".
func strippedText(s *goquery.Selection) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(strings.TrimSpace(n.Data))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range s.Nodes {
		walk(n)
	}
	return b.String()
}
