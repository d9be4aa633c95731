package cards

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"server/internal/domain"
)

// Options configures the Groq completion client.
type Options struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// Client calls Groq's OpenAI-compatible chat-completions endpoint and turns
// the reply into a cleaned deck.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

const groqDefaultTimeout = 60 * time.Second

const defaultGroqBaseURL = "https://api.groq.com/openai/v1"

const systemPrompt = "You are a flashcard generator that only responds with valid JSON."

const maxUpstreamBodyBytes = 8 << 10

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat *chatFormat   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: groqDefaultTimeout}
	}
	return &Client{
		apiKey:  strings.TrimSpace(opts.APIKey),
		model:   strings.TrimSpace(opts.Model),
		baseURL: baseURL,
		client:  client,
	}
}

// Generate builds the prompt, calls the completion endpoint and cleans the
// recovered payload. Non-2xx upstream replies surface as *UpstreamError, a
// reply without message content as domain.ErrEmptyCompletion, and an
// unrecoverable payload as domain.ErrMalformedResponse.
func (c *Client) Generate(ctx context.Context, req Request) (*domain.Deck, error) {
	payload := chatRequest{
		Model:       c.model,
		Temperature: 0.3,
		ResponseFormat: &chatFormat{
			Type: "json_object",
		},
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: BuildPrompt(req.Notes, req.Count, req.Style, req.Mode)},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, fmt.Errorf("encode groq request: %w", err)
	}
	endpoint := fmt.Sprintf("%s/chat/completions", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("build groq request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("groq request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBodyBytes))
		return nil, &UpstreamError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode groq response: %w", err)
	}
	if len(out.Choices) == 0 {
		return nil, domain.ErrEmptyCompletion
	}
	content := strings.TrimSpace(out.Choices[0].Message.Content)
	if content == "" {
		return nil, domain.ErrEmptyCompletion
	}
	value, err := ParsePayload(content)
	if err != nil {
		return nil, err
	}
	deck := CleanDeck(value, req.Count)
	return &deck, nil
}

var _ Generator = (*Client)(nil)
