// Package brochure chains two chat-completion calls into a company
// brochure: the model first picks the brochure-relevant links off the
// landing page, then writes the brochure from the aggregated pages.
package brochure

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strings"

	"go-brochure/internal/llm"
	"go-brochure/internal/prompts"
	"go-brochure/internal/webpage"
)

// Fetcher retrieves and cleans one page.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (*webpage.Page, error)
}

// ChatClient is the slice of the llm client the generator needs.
type ChatClient interface {
	Chat(ctx context.Context, messages []llm.Message) (string, error)
	ChatJSON(ctx context.Context, messages []llm.Message) (string, error)
}

// Link is one classified brochure-relevant link.
type Link struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// LinkClassification is the parsed shape of the classifier's JSON reply.
type LinkClassification struct {
	Links []Link `json:"links"`
}

// Generator runs the brochure workflow. Strictly sequential: landing page,
// classification, one fetch per selected link, synthesis.
type Generator struct {
	fetcher Fetcher
	chat    ChatClient
}

func NewGenerator(fetcher Fetcher, chat ChatClient) *Generator {
	return &Generator{fetcher: fetcher, chat: chat}
}

// Generate builds a markdown brochure for the site at pageURL. Any fetch
// failure, including a selected link's, aborts the whole run.
func (g *Generator) Generate(ctx context.Context, pageURL string) (string, error) {
	landing, err := g.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return "", err
	}

	log.Printf("[Brochure] Asking model which of %d links are brochure-relevant", len(landing.Links))
	classification, err := g.ClassifyLinks(ctx, landing)
	if err != nil {
		return "", err
	}
	log.Printf("[Brochure] Classifier selected %d links", len(classification.Links))

	aggregate, err := g.aggregate(ctx, landing, classification.Links)
	if err != nil {
		return "", err
	}

	return g.chat.Chat(ctx, []llm.Message{
		{Role: "system", Content: prompts.BrochureWriterSystem()},
		{Role: "user", Content: prompts.BrochureUser(pageURL, aggregate)},
	})
}

// ClassifyLinks asks the model which raw links off page belong in a
// brochure. The links go to the model verbatim, relative or not.
func (g *Generator) ClassifyLinks(ctx context.Context, page *webpage.Page) (*LinkClassification, error) {
	raw, err := g.chat.ChatJSON(ctx, []llm.Message{
		{Role: "system", Content: prompts.LinkClassifierSystem()},
		{Role: "user", Content: prompts.LinkAnalysisUser(page.URL, page.Links)},
	})
	if err != nil {
		return nil, err
	}

	var classification LinkClassification
	if err := json.Unmarshal([]byte(raw), &classification); err != nil {
		return nil, &llm.RemoteServiceError{Detail: fmt.Sprintf("malformed link classification: %v", err)}
	}
	return &classification, nil
}

// aggregate concatenates the landing page and each selected link's content,
// landing page first, links in classifier order.
func (g *Generator) aggregate(ctx context.Context, landing *webpage.Page, links []Link) (string, error) {
	var builder strings.Builder
	builder.WriteString("Landing page:\n")
	builder.WriteString(landing.Content())

	for _, link := range links {
		target := resolveLink(landing.URL, link.URL)
		log.Printf("[Brochure] Fetching %s (%s)", target, link.Type)
		page, err := g.fetcher.Fetch(ctx, target)
		if err != nil {
			return "", err
		}
		builder.WriteString("\n\n")
		builder.WriteString(link.Type)
		builder.WriteString("\n")
		builder.WriteString(page.Content())
	}

	return builder.String(), nil
}

// resolveLink resolves a possibly-relative classified link against the
// landing page URL so it can actually be fetched.
func resolveLink(base, href string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}
