package webpage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// DefaultUserAgent mimics a desktop browser so sites serve real content.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Pages whose raw body text exceeds this are re-extracted through
// readability to keep only the article content.
const readableThreshold = 100_000

const noTitle = "No title found"

// Page holds the cleaned content of one fetched web page.
type Page struct {
	URL      string   `json:"url"`
	Title    string   `json:"title"`
	BodyText string   `json:"body_text"`
	Links    []string `json:"links"` // raw href values in document order
}

// Content renders the page as the block fed into prompts.
func (p *Page) Content() string {
	return fmt.Sprintf("Webpage Title:\n%s\nWebpage Contents:\n%s\n\n", p.Title, p.BodyText)
}

// FetchError reports a failed or unusable HTTP fetch.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves pages and reduces them to title, text and links.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxSizeMB  int
}

// NewFetcher creates a fetcher with a redirect cap and body size limit.
func NewFetcher(userAgent string, maxSizeMB int) *Fetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if maxSizeMB <= 0 {
		maxSizeMB = 5
	}
	return &Fetcher{
		httpClient: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		},
		userAgent: userAgent,
		maxSizeMB: maxSizeMB,
	}
}

// Fetch retrieves pageURL and parses it into a Page.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*Page, error) {
	html, err := f.fetchHTML(ctx, pageURL)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}

	page, err := Parse(pageURL, html)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}

	// Very large pages drown the prompt in boilerplate; fall back to
	// readability's article extraction.
	if len(page.BodyText) > readableThreshold {
		if u, perr := url.Parse(pageURL); perr == nil {
			if article, rerr := readability.FromReader(strings.NewReader(html), u); rerr == nil {
				if text := strings.TrimSpace(article.TextContent); text != "" {
					page.BodyText = text
				}
			}
		}
	}

	return page, nil
}

func (f *Fetcher) fetchHTML(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	maxBytes := int64(f.maxSizeMB * 1024 * 1024)
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}
	if int64(len(body)) >= maxBytes {
		return "", fmt.Errorf("content exceeds size limit of %dMB", f.maxSizeMB)
	}

	return string(body), nil
}

// Parse turns raw HTML into a Page. Exposed separately so cached HTML and
// test fixtures go through the same cleanup as live fetches.
func Parse(pageURL, html string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = noTitle
	}

	// Raw hrefs, unresolved. Relative values pass through as-is.
	links := []string{}
	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok {
			links = append(links, href)
		}
	})

	body := doc.Find("body")
	body.Find("script, style, img, input").Remove()

	var parts []string
	collectText(body, &parts)
	bodyText := strings.TrimSpace(strings.Join(parts, "\n"))

	return &Page{
		URL:      pageURL,
		Title:    title,
		BodyText: bodyText,
		Links:    links,
	}, nil
}

// collectText gathers trimmed text nodes in document order.
func collectText(sel *goquery.Selection, parts *[]string) {
	sel.Contents().Each(func(i int, s *goquery.Selection) {
		if goquery.NodeName(s) == "#text" {
			if text := strings.TrimSpace(s.Text()); text != "" {
				*parts = append(*parts, text)
			}
			return
		}
		collectText(s, parts)
	})
}
