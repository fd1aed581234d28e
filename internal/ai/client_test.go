package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/iotsystems/hdlbot/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.AIConfig{
		APIKey:         "sk-test",
		BaseURL:        srv.URL,
		Model:          "google/gemma-2-9b-it:free",
		Referer:        "https://t.me/hdlbot",
		Title:          "hdlbot",
		Temperature:    0.3,
		MaxTokens:      350,
		TimeoutSeconds: 5,
	}, zap.NewNop())
}

func TestAsk(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("authorization = %q", got)
		}
		if got := r.Header.Get("HTTP-Referer"); got != "https://t.me/hdlbot" {
			t.Errorf("referer = %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "google/gemma-2-9b-it:free" {
			t.Errorf("model = %q", req.Model)
		}
		if req.Temperature != 0.3 || req.MaxTokens != 350 {
			t.Errorf("sampling params: %+v", req)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("messages: %+v", req.Messages)
		}

		w.Write([]byte(`{"choices":[{"message":{"content":" Шлюз HDL настраивается так. "}}]}`))
	})

	answer, err := c.Ask(context.Background(), "как настроить шлюз?", "")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if answer != "Шлюз HDL настраивается так." {
		t.Errorf("answer = %q", answer)
	}
}

func TestAskTruncatesLongQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if n := utf8.RuneCountInString(req.Messages[1].Content); n > maxQueryRunes+3 {
			t.Errorf("query not truncated: %d runes", n)
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	})

	if _, err := c.Ask(context.Background(), strings.Repeat("щ", 2000), ""); err != nil {
		t.Fatalf("Ask: %v", err)
	}
}

func TestAskRateLimited(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Ask(context.Background(), "вопрос", "")
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("err = %v, want ErrRateLimited", err)
	}
}

func TestAskEmptyChoices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})

	_, err := c.Ask(context.Background(), "вопрос", "")
	if !errors.Is(err, ErrEmptyAnswer) {
		t.Errorf("err = %v, want ErrEmptyAnswer", err)
	}
}

func TestAskEmptyQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request sent for empty query")
	})

	if _, err := c.Ask(context.Background(), "   ", ""); err == nil {
		t.Error("expected error for empty query")
	}
}
