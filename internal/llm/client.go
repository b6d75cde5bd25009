package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Message is one role-tagged entry in a chat-completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AuthError reports an authentication or quota failure from the chat
// endpoint. The CLI points users at their API key for these.
type AuthError struct {
	Status int
	Detail string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("chat endpoint rejected credentials (HTTP %d): %s", e.Status, e.Detail)
}

// RemoteServiceError reports any other chat endpoint failure, including
// responses that cannot be parsed.
type RemoteServiceError struct {
	Status int
	Detail string
}

func (e *RemoteServiceError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("chat endpoint error (HTTP %d): %s", e.Status, e.Detail)
	}
	return "chat endpoint error: " + e.Detail
}

// Client talks to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// New creates a chat client. baseURL is the API root, e.g.
// "https://api.openai.com/v1".
func New(baseURL, apiKey, model string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// Chat sends messages and returns the first choice's content.
func (c *Client) Chat(ctx context.Context, messages []Message) (string, error) {
	return c.complete(ctx, messages, false)
}

// ChatJSON is Chat with the json_object response format, for calls whose
// reply must parse as JSON.
func (c *Client) ChatJSON(ctx context.Context, messages []Message) (string, error) {
	return c.complete(ctx, messages, true)
}

func (c *Client) complete(ctx context.Context, messages []Message, jsonResponse bool) (string, error) {
	reqBody := map[string]interface{}{
		"model":    c.model,
		"messages": messages,
	}
	if jsonResponse {
		reqBody["response_format"] = map[string]string{"type": "json_object"}
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &RemoteServiceError{Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		detail := strings.TrimSpace(string(body))
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
			return "", &AuthError{Status: resp.StatusCode, Detail: detail}
		default:
			return "", &RemoteServiceError{Status: resp.StatusCode, Detail: detail}
		}
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &RemoteServiceError{Detail: fmt.Sprintf("failed to decode response: %v", err)}
	}
	if len(result.Choices) == 0 {
		return "", &RemoteServiceError{Detail: "no choices returned"}
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}
