package search

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Snippet is one web search result. Title and Body are plain text.
type Snippet struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Searcher looks up web snippets for a query. Implementations are
// best-effort collaborators: callers treat any error as "no results".
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]Snippet, error)
}

// DuckDuckGo queries the DuckDuckGo HTML endpoint and scrapes result titles
// and snippet bodies out of the response markup.
type DuckDuckGo struct {
	BaseURL string
	httpDo  *http.Client
}

func NewDuckDuckGo(baseURL string) *DuckDuckGo {
	if baseURL == "" {
		baseURL = "https://html.duckduckgo.com/html/"
	}
	return &DuckDuckGo{
		BaseURL: baseURL,
		httpDo:  &http.Client{Timeout: 15 * time.Second},
	}
}

var (
	resultTitleRe   = regexp.MustCompile(`(?s)<a[^>]+class="result__a"[^>]*>(.*?)</a>`)
	resultSnippetRe = regexp.MustCompile(`(?s)<a[^>]+class="result__snippet"[^>]*>(.*?)</a>`)
	tagRe           = regexp.MustCompile(`<[^>]+>`)
)

func (d *DuckDuckGo) Search(ctx context.Context, query string, limit int) ([]Snippet, error) {
	if limit <= 0 {
		limit = 10
	}
	endpoint := fmt.Sprintf("%s?q=%s", d.BaseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; futureproof/1.0)")

	resp, err := d.httpDo.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	titles := resultTitleRe.FindAllStringSubmatch(string(body), limit)
	snippets := resultSnippetRe.FindAllStringSubmatch(string(body), limit)

	var out []Snippet
	for i, m := range titles {
		s := Snippet{Title: stripMarkup(m[1])}
		if i < len(snippets) {
			s.Body = stripMarkup(snippets[i][1])
		}
		out = append(out, s)
	}
	return out, nil
}

func stripMarkup(s string) string {
	s = tagRe.ReplaceAllString(s, "")
	return strings.TrimSpace(html.UnescapeString(s))
}
