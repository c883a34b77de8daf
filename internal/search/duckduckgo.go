package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/scout/internal/models"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

const (
	LiteURL   = "https://lite.duckduckgo.com/lite/"
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	maxRetries   = 3
	initialDelay = time.Second
)

// DuckDuckGo scrapes the html lite interface of DuckDuckGo.
type DuckDuckGo struct {
	URL    string
	client *http.Client
	// backoff is the first delay after a 429, doubled on each retry
	backoff time.Duration
	debug   bool
}

func NewDuckDuckGo() *DuckDuckGo {
	return NewDuckDuckGoWithClient(&http.Client{Timeout: 15 * time.Second})
}

// NewDuckDuckGoWithClient creates a DuckDuckGo searcher using the supplied HTTP client.
func NewDuckDuckGoWithClient(client *http.Client) *DuckDuckGo {
	return &DuckDuckGo{
		URL:     LiteURL,
		client:  client,
		backoff: initialDelay,
		debug:   misc.Truthy(os.Getenv("DEBUG")) || misc.Truthy(os.Getenv("DEBUG_SEARCH")),
	}
}

// Search posts the query to DuckDuckGo and parses the results page.
func (d *DuckDuckGo) Search(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is empty", ErrSearchFailed)
	}
	if maxResults < 1 {
		return nil, fmt.Errorf("%w: max results must be positive, got: %v", ErrSearchFailed, maxResults)
	}
	body, err := d.fetch(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}
	results, err := parseLite(body, maxResults)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse results: %w", ErrSearchFailed, err)
	}
	if d.debug {
		ancli.PrintOK(fmt.Sprintf("duckduckgo: '%v' yielded %v results\n", query, len(results)))
	}
	return results, nil
}

// fetch the results page, retrying with backoff on 429. The returned
// reader has been decoded to utf-8.
func (d *DuckDuckGo) fetch(ctx context.Context, query string) (io.Reader, error) {
	form := url.Values{}
	form.Set("q", query)

	delay := d.backoff
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.URL, strings.NewReader(form.Encode()))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		res, err := d.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to execute request: %w", err)
		}
		if res.StatusCode == http.StatusTooManyRequests && attempt < maxRetries {
			res.Body.Close()
			if d.debug {
				ancli.PrintWarn(fmt.Sprintf("duckduckgo rate limited, retrying in: %v\n", delay))
			}
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
			continue
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status code: %v", res.Status)
		}
		utf8Body, err := charset.NewReader(res.Body, res.Header.Get("Content-Type"))
		if err != nil {
			return nil, fmt.Errorf("failed to decode charset: %w", err)
		}
		b, err := io.ReadAll(utf8Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}
		return strings.NewReader(string(b)), nil
	}
}

// parseLite walks the lite results page. Each result is an anchor with class
// 'result-link', followed further down by a td with class 'result-snippet'.
func parseLite(r io.Reader, maxResults int) ([]models.SearchResult, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	results := make([]models.SearchResult, 0, maxResults)
	var pending *models.SearchResult
	flush := func() {
		if pending != nil && pending.URL != "" && pending.Title != "" {
			results = append(results, *pending)
		}
		pending = nil
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if len(results) >= maxResults {
			return
		}
		if n.Type == html.ElementNode {
			switch {
			case n.Data == "a" && hasClass(n, "result-link"):
				flush()
				pending = &models.SearchResult{
					Title: strings.TrimSpace(textOf(n)),
					URL:   unwrapRedirect(attr(n, "href")),
				}
				return
			case n.Data == "td" && hasClass(n, "result-snippet"):
				if pending != nil {
					pending.Snippet = snippetMarkdown(n)
					flush()
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	if len(results) < maxResults {
		flush()
	}
	return results, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// snippetMarkdown converts the inner html of the snippet cell into markdown,
// keeping the emphasis DuckDuckGo puts on matched terms. Falls back to plain
// text if the conversion fails.
func snippetMarkdown(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return collapseWhitespace(textOf(n))
		}
	}
	md, err := htmltomarkdown.ConvertString(sb.String())
	if err != nil {
		return collapseWhitespace(textOf(n))
	}
	return collapseWhitespace(md)
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// unwrapRedirect resolves '//duckduckgo.com/l/?uddg=<target>' links to their target.
func unwrapRedirect(href string) string {
	href = strings.TrimSpace(href)
	if !strings.Contains(href, "uddg=") {
		return href
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	target := u.Query().Get("uddg")
	if target == "" {
		return href
	}
	return target
}
