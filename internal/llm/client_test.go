package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, New(srv.URL, "sk-test", "gpt-4o-mini")
}

func TestChat_OK(t *testing.T) {
	var gotAuth string
	var gotReq map[string]interface{}
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(`{"choices":[{"message":{"content":"  hello  "}}]}`))
	})

	got, err := client.Chat(context.Background(), []Message{
		{Role: "system", Content: "sys"},
		{Role: "user", Content: "usr"},
	})
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if got != "hello" {
		t.Errorf("Chat = %q, want trimmed %q", got, "hello")
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReq["model"] != "gpt-4o-mini" {
		t.Errorf("model = %v", gotReq["model"])
	}
	if _, ok := gotReq["response_format"]; ok {
		t.Errorf("plain Chat must not request a response format")
	}
}

func TestChatJSON_RequestsJSONFormat(t *testing.T) {
	var gotReq map[string]interface{}
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"links\":[]}"}}]}`))
	})

	if _, err := client.ChatJSON(context.Background(), []Message{{Role: "user", Content: "x"}}); err != nil {
		t.Fatalf("ChatJSON failed: %v", err)
	}
	rf, ok := gotReq["response_format"].(map[string]interface{})
	if !ok || rf["type"] != "json_object" {
		t.Errorf("response_format = %v", gotReq["response_format"])
	}
}

func TestChat_AuthError(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests} {
		_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", status)
		})
		_, err := client.Chat(context.Background(), []Message{{Role: "user", Content: "x"}})
		var authErr *AuthError
		if !errors.As(err, &authErr) {
			t.Errorf("status %d: expected AuthError, got %v", status, err)
			continue
		}
		if authErr.Status != status {
			t.Errorf("AuthError.Status = %d, want %d", authErr.Status, status)
		}
	}
}

func TestChat_RemoteServiceError(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	_, err := client.Chat(context.Background(), []Message{{Role: "user", Content: "x"}})
	var remoteErr *RemoteServiceError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected RemoteServiceError, got %v", err)
	}
}

func TestChat_EmptyChoices(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})
	_, err := client.Chat(context.Background(), []Message{{Role: "user", Content: "x"}})
	var remoteErr *RemoteServiceError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected RemoteServiceError for empty choices, got %v", err)
	}
}
