package rewrite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the OpenAI-compatible chat completions endpoint.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultModel is the rewriting model requested by default.
	DefaultModel = "gpt-4o-mini"

	// DefaultTimeout bounds one rewrite call.
	DefaultTimeout = 2 * time.Minute

	// RequestsPerSecond keeps section-by-section rewriting under typical
	// API rate limits.
	RequestsPerSecond = 2.0
)

// Service is the external text-rewriting collaborator: text in, text out,
// or failure. No guarantees are assumed about its output.
type Service interface {
	Rewrite(ctx context.Context, text string, level Level, grounding string) (string, error)
}

// HTTPService calls an OpenAI-style chat completions API.
type HTTPService struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	apiKey     string
	model      string
}

// ServiceOption configures an HTTPService.
type ServiceOption func(*HTTPService)

// WithAPIKey sets the bearer token for authenticated requests.
func WithAPIKey(key string) ServiceOption {
	return func(s *HTTPService) { s.apiKey = key }
}

// WithBaseURL sets a custom API base URL (for testing).
func WithBaseURL(url string) ServiceOption {
	return func(s *HTTPService) { s.baseURL = strings.TrimRight(url, "/") }
}

// WithModel sets the model name.
func WithModel(model string) ServiceOption {
	return func(s *HTTPService) { s.model = model }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ServiceOption {
	return func(s *HTTPService) { s.httpClient = hc }
}

// NewHTTPService creates a rate-limited rewrite service client. The API
// key defaults to the OPENAI_API_KEY environment variable.
func NewHTTPService(opts ...ServiceOption) *HTTPService {
	s := &HTTPService{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RequestsPerSecond), 1),
		baseURL:    DefaultBaseURL,
		model:      DefaultModel,
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		s.apiKey = key
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Rewrite sends one rewrite request. The prompt instructs the service to
// keep placeholder tokens intact, but nothing downstream relies on it
// complying; verification happens in the pipeline.
func (s *HTTPService) Rewrite(ctx context.Context, text string, level Level, grounding string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	prompt := level.Instruction() +
		"\nPreserve every ⟦n⟧ placeholder exactly where it belongs; do not add, drop, or renumber them."
	if grounding != "" {
		prompt += "\nContext: " + grounding
	}
	prompt += "\n\n" + text

	body, err := json.Marshal(chatRequest{
		Model:       s.model,
		Temperature: 0.7,
		Messages: []chatMessage{
			{Role: "system", Content: "You subtly vary phrasing, rhythm, and syntax while preserving meaning. Return only the rewritten text."},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("rewrite request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("rewrite service status %d: %s", resp.StatusCode, truncate(string(data), 200))
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("rewrite service returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
