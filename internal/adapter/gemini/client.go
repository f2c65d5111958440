package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"gitlab.com/skillsnap.net/internal/config"
	"gitlab.com/skillsnap.net/internal/core/ports/secondary"
)

var _ secondary.CodeReviewer = (*Client)(nil)

const (
	generativeLanguageScope = "https://www.googleapis.com/auth/generative-language"
	maxErrorBody            = 4 << 10
)

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Client calls the Gemini generateContent endpoint
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

// NewClient authenticates with the configured API key
func NewClient(httpClient *http.Client, cfg *config.AuditorConfig) *Client {
	return &Client{
		endpoint: endpoint(cfg),
		apiKey:   cfg.APIKey,
		http:     httpClient,
	}
}

// NewTokenSourceClient authenticates every request with a bearer token from ts
func NewTokenSourceClient(ctx context.Context, base *http.Client, cfg *config.AuditorConfig, ts oauth2.TokenSource) *Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	return &Client{
		endpoint: endpoint(cfg),
		http:     oauth2.NewClient(ctx, ts),
	}
}

// NewDefaultClient uses the API key when set, otherwise Application Default Credentials
func NewDefaultClient(ctx context.Context, base *http.Client, cfg *config.AuditorConfig) (*Client, error) {
	if cfg.APIKey != "" {
		return NewClient(base, cfg), nil
	}
	ts, err := google.DefaultTokenSource(ctx, generativeLanguageScope)
	if err != nil {
		return nil, fmt.Errorf("no gemini api key and no default credentials: %w", err)
	}
	return NewTokenSourceClient(ctx, base, cfg, ts), nil
}

func endpoint(cfg *config.AuditorConfig) string {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent", base, url.PathEscape(cfg.Model))
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		request.Header.Set("x-goog-api-key", c.apiKey)
	}

	resp, err := c.http.Do(request)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", statusError(resp)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Candidates) == 0 {
		return "", fmt.Errorf("response missing candidates")
	}

	var sb strings.Builder
	for _, p := range decoded.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("response empty")
	}
	return text, nil
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var decoded generateResponse
	if json.Unmarshal(body, &decoded) == nil && decoded.Error != nil && decoded.Error.Message != "" {
		return fmt.Errorf("status %s: %s", resp.Status, decoded.Error.Message)
	}
	return fmt.Errorf("status %s", resp.Status)
}
