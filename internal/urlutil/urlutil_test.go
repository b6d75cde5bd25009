package urlutil

import (
	"errors"
	"testing"
)

func TestIsValid(t *testing.T) {
	valid := []string{
		"example.com",
		"www.example.com",
		"https://blog.example.co.uk/path?x=1",
		"http://example.com:8080",
		"EXAMPLE.COM",
	}
	for _, u := range valid {
		if !IsValid(u) {
			t.Errorf("IsValid(%q) = false, want true", u)
		}
	}

	invalid := []string{
		"",
		"not a url",
		"http://",
		"example",
		"ftp://example.com",
	}
	for _, u := range invalid {
		if IsValid(u) {
			t.Errorf("IsValid(%q) = true, want false", u)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("example.com"); got != "https://example.com" {
		t.Errorf("Normalize without scheme = %q", got)
	}
	if got := Normalize("http://example.com"); got != "http://example.com" {
		t.Errorf("Normalize must not touch schemed URLs, got %q", got)
	}
	// Scheme detection is case-insensitive, like the validator
	if got := Normalize("HTTP://example.com"); got != "HTTP://example.com" {
		t.Errorf("Normalize stacked a scheme onto an uppercase-schemed URL: %q", got)
	}
	// Idempotent
	once := Normalize("www.example.com")
	if Normalize(once) != once {
		t.Errorf("Normalize is not idempotent: %q -> %q", once, Normalize(once))
	}
}

func TestValidate(t *testing.T) {
	got, err := Validate("  www.example.com  ")
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if got != "https://www.example.com" {
		t.Errorf("Validate = %q", got)
	}

	var invErr *InvalidInputError
	if _, err := Validate(""); !errors.As(err, &invErr) {
		t.Errorf("empty input should yield InvalidInputError, got %v", err)
	}
	if _, err := Validate("not a url"); !errors.As(err, &invErr) {
		t.Errorf("malformed input should yield InvalidInputError, got %v", err)
	}
}
