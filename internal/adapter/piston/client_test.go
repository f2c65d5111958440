package piston

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/skillsnap.net/internal/adapter"
	"gitlab.com/skillsnap.net/internal/config"
	"gitlab.com/skillsnap.net/internal/domain"
)

func newClient(url string) *Client {
	return NewClient(adapter.NewHTTPClient(), &config.ExecutorConfig{BaseURL: url + "/"})
}

var sumRequest = domain.ExecutionRequest{
	Language: "python",
	Version:  "3.10.0",
	Source:   "def sum(a, b):\n    return a + b\n\nprint(sum(5, 10))",
}

func TestExecuteSendsPistonRequest(t *testing.T) {
	var received executeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/execute", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"language":"python","version":"3.10.0","run":{"stdout":"15\n","stderr":"","code":0,"signal":null,"output":"15\n"}}`))
	}))
	defer srv.Close()

	out, err := newClient(srv.URL).Execute(context.Background(), sumRequest)

	require.NoError(t, err)
	assert.Equal(t, "15\n", out.Stdout)
	assert.Equal(t, 0, out.ExitCode)
	assert.Equal(t, "python", received.Language)
	assert.Equal(t, "3.10.0", received.Version)
	require.Len(t, received.Files, 1)
	assert.Equal(t, sumRequest.Source, received.Files[0].Content)
}

func TestExecuteReportsStderr(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"run":{"stdout":"","stderr":"NameError: name 'x' is not defined","code":1}}`))
	}))
	defer srv.Close()

	out, err := newClient(srv.URL).Execute(context.Background(), sumRequest)

	require.NoError(t, err)
	assert.Equal(t, "NameError: name 'x' is not defined", out.Stderr)
	assert.Equal(t, 1, out.ExitCode)
}

func TestExecuteNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"python-9.9.9 runtime is unknown"}`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).Execute(context.Background(), sumRequest)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "runtime is unknown")
}

func TestExecuteMissingRunIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"too many requests"}`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).Execute(context.Background(), sumRequest)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many requests")
}

func TestExecuteHonoursDeadline(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newClient(srv.URL).Execute(ctx, sumRequest)

	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestExecuteUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newClient(url).Execute(context.Background(), sumRequest)

	assert.Error(t, err)
}
