// Package summary runs the single-call summarize workflow: fetch one page,
// ask the content analyst for a markdown summary.
package summary

import (
	"context"

	"go-brochure/internal/llm"
	"go-brochure/internal/prompts"
	"go-brochure/internal/webpage"
)

type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (*webpage.Page, error)
}

type ChatClient interface {
	Chat(ctx context.Context, messages []llm.Message) (string, error)
}

type Summarizer struct {
	fetcher Fetcher
	chat    ChatClient
}

func NewSummarizer(fetcher Fetcher, chat ChatClient) *Summarizer {
	return &Summarizer{fetcher: fetcher, chat: chat}
}

// Summarize fetches pageURL and returns the model's markdown summary.
func (s *Summarizer) Summarize(ctx context.Context, pageURL string) (string, error) {
	page, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return "", err
	}

	return s.chat.Chat(ctx, []llm.Message{
		{Role: "system", Content: prompts.ContentAnalystSystem()},
		{Role: "user", Content: prompts.SummaryUser(page)},
	})
}
