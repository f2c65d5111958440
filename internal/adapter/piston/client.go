package piston

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"gitlab.com/skillsnap.net/internal/config"
	"gitlab.com/skillsnap.net/internal/core/ports/secondary"
	"gitlab.com/skillsnap.net/internal/domain"
)

var _ secondary.CodeExecutor = (*Client)(nil)

const maxErrorBody = 4 << 10

type file struct {
	Content string `json:"content"`
}

type executeRequest struct {
	Language string `json:"language"`
	Version  string `json:"version"`
	Files    []file `json:"files"`
}

type stage struct {
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
	Code   *int   `json:"code"`
	Signal string `json:"signal"`
}

type executeResponse struct {
	Run     *stage `json:"run"`
	Message string `json:"message"`
}

// Client talks to a Piston v2 execution API
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(httpClient *http.Client, cfg *config.ExecutorConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		http:    httpClient,
	}
}

func (c *Client) Execute(ctx context.Context, req domain.ExecutionRequest) (*domain.RunnerOutput, error) {
	payload, err := json.Marshal(executeRequest{
		Language: req.Language,
		Version:  req.Version,
		Files:    []file{{Content: req.Source}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/execute", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(request)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(resp)
	}

	var decoded executeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if decoded.Run == nil {
		if decoded.Message != "" {
			return nil, fmt.Errorf("runner rejected request: %s", decoded.Message)
		}
		return nil, fmt.Errorf("response missing run stage")
	}

	out := &domain.RunnerOutput{
		Stdout: decoded.Run.Stdout,
		Stderr: decoded.Run.Stderr,
	}
	if decoded.Run.Code != nil {
		out.ExitCode = *decoded.Run.Code
	}
	return out, nil
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var decoded executeResponse
	if json.Unmarshal(body, &decoded) == nil && decoded.Message != "" {
		return fmt.Errorf("status %s: %s", resp.Status, decoded.Message)
	}
	return fmt.Errorf("status %s", resp.Status)
}
