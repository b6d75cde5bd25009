package brochure

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go-brochure/internal/llm"
	"go-brochure/internal/webpage"
)

type fakeFetcher struct {
	pages   map[string]*webpage.Page
	fetched []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, pageURL string) (*webpage.Page, error) {
	f.fetched = append(f.fetched, pageURL)
	page, ok := f.pages[pageURL]
	if !ok {
		return nil, &webpage.FetchError{URL: pageURL, Err: errors.New("not found")}
	}
	return page, nil
}

type fakeChat struct {
	jsonReply  string
	chatReply  string
	jsonErr    error
	chatErr    error
	lastPrompt []llm.Message
}

func (c *fakeChat) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	c.lastPrompt = messages
	return c.chatReply, c.chatErr
}

func (c *fakeChat) ChatJSON(ctx context.Context, messages []llm.Message) (string, error) {
	return c.jsonReply, c.jsonErr
}

func landingPage() *webpage.Page {
	return &webpage.Page{
		URL:      "https://acme.example",
		Title:    "Acme",
		BodyText: "We make everything.",
		Links:    []string{"/about", "/legal"},
	}
}

func TestGenerate_NoRelevantLinks(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]*webpage.Page{
		"https://acme.example": landingPage(),
	}}
	chat := &fakeChat{jsonReply: `{"links":[]}`, chatReply: "# Acme Brochure"}

	got, err := NewGenerator(fetcher, chat).Generate(context.Background(), "https://acme.example")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "# Acme Brochure" {
		t.Errorf("Generate = %q", got)
	}
	// Landing page only: no further fetches
	if len(fetcher.fetched) != 1 {
		t.Errorf("fetched %v, want only the landing page", fetcher.fetched)
	}

	user := chat.lastPrompt[len(chat.lastPrompt)-1].Content
	if !strings.Contains(user, "Landing page:") {
		t.Errorf("synthesis prompt missing landing page block: %q", user)
	}
	if !strings.Contains(user, "We make everything.") {
		t.Errorf("synthesis prompt missing landing content")
	}
}

func TestGenerate_SelectedLinksInOrder(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]*webpage.Page{
		"https://acme.example":         landingPage(),
		"https://acme.example/about":   {URL: "https://acme.example/about", Title: "About", BodyText: "About Acme"},
		"https://acme.example/careers": {URL: "https://acme.example/careers", Title: "Careers", BodyText: "Join us"},
	}}
	chat := &fakeChat{
		jsonReply: `{"links":[
			{"type":"careers page","url":"https://acme.example/careers"},
			{"type":"about page","url":"/about"}
		]}`,
		chatReply: "brochure",
	}

	if _, err := NewGenerator(fetcher, chat).Generate(context.Background(), "https://acme.example"); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Classifier order is preserved, relative link resolved against the base
	want := []string{"https://acme.example", "https://acme.example/careers", "https://acme.example/about"}
	if len(fetcher.fetched) != len(want) {
		t.Fatalf("fetched %v, want %v", fetcher.fetched, want)
	}
	for i := range want {
		if fetcher.fetched[i] != want[i] {
			t.Errorf("fetched[%d] = %q, want %q", i, fetcher.fetched[i], want[i])
		}
	}

	user := chat.lastPrompt[len(chat.lastPrompt)-1].Content
	careersAt := strings.Index(user, "Join us")
	aboutAt := strings.Index(user, "About Acme")
	landingAt := strings.Index(user, "We make everything.")
	if landingAt == -1 || careersAt == -1 || aboutAt == -1 {
		t.Fatalf("synthesis prompt missing page content: %q", user)
	}
	if !(landingAt < careersAt && careersAt < aboutAt) {
		t.Errorf("aggregate order wrong: landing=%d careers=%d about=%d", landingAt, careersAt, aboutAt)
	}
}

func TestGenerate_LinkFetchFailureAborts(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]*webpage.Page{
		"https://acme.example": landingPage(),
	}}
	chat := &fakeChat{jsonReply: `{"links":[{"type":"about page","url":"https://acme.example/missing"}]}`}

	_, err := NewGenerator(fetcher, chat).Generate(context.Background(), "https://acme.example")
	var fetchErr *webpage.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError abort, got %v", err)
	}
	if fetchErr.URL != "https://acme.example/missing" {
		t.Errorf("FetchError.URL = %q", fetchErr.URL)
	}
}

func TestClassifyLinks_MalformedJSON(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]*webpage.Page{}}
	chat := &fakeChat{jsonReply: `this is not json`}

	_, err := NewGenerator(fetcher, chat).ClassifyLinks(context.Background(), landingPage())
	var remoteErr *llm.RemoteServiceError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected RemoteServiceError for malformed JSON, got %v", err)
	}
}

func TestResolveLink(t *testing.T) {
	cases := []struct {
		base, href, want string
	}{
		{"https://acme.example", "/about", "https://acme.example/about"},
		{"https://acme.example/home", "about", "https://acme.example/about"},
		{"https://acme.example", "https://other.example/x", "https://other.example/x"},
	}
	for _, c := range cases {
		if got := resolveLink(c.base, c.href); got != c.want {
			t.Errorf("resolveLink(%q, %q) = %q, want %q", c.base, c.href, got, c.want)
		}
	}
}
