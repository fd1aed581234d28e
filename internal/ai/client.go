// Package ai is a client for the hosted chat-completion service used as the
// fallback assistant when document search comes up empty.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/iotsystems/hdlbot/internal/config"
	"github.com/iotsystems/hdlbot/pkg/utils"
)

// maxQueryRunes caps what is forwarded to the model; longer queries are
// truncated rather than rejected.
const maxQueryRunes = 500

// ErrRateLimited is returned when the service reports too many requests after
// retries are exhausted. The bot shows a softer message for this case.
var ErrRateLimited = errors.New("ai: rate limited")

// ErrEmptyAnswer is returned when the service responds without any content.
var ErrEmptyAnswer = errors.New("ai: empty answer")

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    any    `json:"code"`
	} `json:"error"`
}

// Client calls the chat-completion endpoint with retries and backoff.
type Client struct {
	cfg    config.AIConfig
	httpc  *retryablehttp.Client
	logger *zap.Logger
}

// NewClient builds a Client from config.
func NewClient(cfg config.AIConfig, logger *zap.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.MaxRetries
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.HTTPClient.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	rc.Logger = leveledLogger{logger.Named("ai.http")}
	// Hand back the final response instead of a "giving up" error so status
	// codes stay inspectable after retries run out.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{cfg: cfg, httpc: rc, logger: logger}
}

// Ask sends the user query with the support-assistant system prompt and
// returns the model's answer. extraContext, when non-empty, is appended to the
// system prompt; the caller uses it to mention what the document search
// already found. The query is truncated to keep token usage bounded.
func (c *Client) Ask(ctx context.Context, query, extraContext string) (string, error) {
	query = utils.Truncate(strings.TrimSpace(query), maxQueryRunes)
	if query == "" {
		return "", fmt.Errorf("ai: empty query")
	}

	system := systemPrompt
	if extraContext != "" {
		system += "\n\n" + utils.Truncate(extraContext, maxQueryRunes)
	}

	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: query},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("ai: encode request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.cfg.BaseURL, "/")+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ai: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.Referer != "" {
		req.Header.Set("HTTP-Referer", c.cfg.Referer)
	}
	if c.cfg.Title != "" {
		req.Header.Set("X-Title", c.cfg.Title)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("ai: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("ai: decode response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("ai: service error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", ErrEmptyAnswer
	}
	answer := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if answer == "" {
		return "", ErrEmptyAnswer
	}

	c.logger.Debug("ai answer",
		zap.Duration("took", time.Since(start)),
		zap.Int("answer_runes", len([]rune(answer))))
	return answer, nil
}

// systemPrompt keeps the model on topic: it answers as the reseller's support
// assistant and points users back to the document search for anything it
// cannot answer.
const systemPrompt = `Ты ассистент технической поддержки компании iOT Systems, ` +
	`официального поставщика оборудования умного дома HDL, Buspro, Matech, Yeelight, ` +
	`EasyCool, CoolAutomation и Moorgen. Отвечай кратко и по делу на русском языке. ` +
	`Если вопрос касается конкретного документа или инструкции, предложи воспользоваться ` +
	`поиском по базе документации. Не выдумывай характеристики оборудования.`

// leveledLogger adapts zap to the retry client's logging interface.
type leveledLogger struct {
	l *zap.Logger
}

func (a leveledLogger) Error(msg string, kv ...any) { a.l.Error(msg, zap.Any("details", kv)) }
func (a leveledLogger) Info(msg string, kv ...any)  { a.l.Info(msg, zap.Any("details", kv)) }
func (a leveledLogger) Debug(msg string, kv ...any) { a.l.Debug(msg, zap.Any("details", kv)) }
func (a leveledLogger) Warn(msg string, kv ...any)  { a.l.Warn(msg, zap.Any("details", kv)) }
