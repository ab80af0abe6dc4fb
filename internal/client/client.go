// Package client is a typed GraphQL-over-HTTP client for the CRM API.
package client

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

	"crm/internal/logger"
)

const maxBodyBytes = 4 << 20

type Config struct {
	Endpoint string
	Timeout  time.Duration
}

type Client struct {
	log        *logger.Logger
	endpoint   string
	httpClient *http.Client
}

func New(log *logger.Logger, cfg Config) (*Client, error) {
	if log == nil {
		log = logger.NewNop()
	}
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("missing api endpoint")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		log:        log.With("client", "CRMClient"),
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// WithHTTPClient заменяет транспорт (для тестов)
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	cp := *c
	cp.httpClient = hc
	return &cp
}

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type remoteError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []remoteError   `json:"errors"`
}

// Ping sends a trivial query and reports the HTTP status; the body is ignored.
func (c *Client) Ping(ctx context.Context) (int, error) {
	resp, err := c.post(ctx, request{Query: "{ hello }"})
	if err != nil {
		return 0, &Error{Kind: ErrTransport, Op: "ping", Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	return resp.StatusCode, nil
}

func (c *Client) post(ctx context.Context, body request) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.httpClient.Do(req)
}

// do executes one operation and decodes its data object into out.
func (c *Client) do(ctx context.Context, op, query string, vars map[string]any, out any) error {
	start := time.Now()
	resp, err := c.post(ctx, request{Query: query, Variables: vars})
	if err != nil {
		return &Error{Kind: ErrTransport, Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &Error{Kind: ErrTransport, Op: op, Status: resp.StatusCode, Err: err}
	}
	c.log.Debug("api call", "op", op, "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Kind: ErrTransport, Op: op, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &Error{Kind: ErrParse, Op: op, Status: resp.StatusCode, Err: err}
	}
	if len(env.Errors) > 0 {
		msgs := make([]string, 0, len(env.Errors))
		for _, e := range env.Errors {
			msgs = append(msgs, e.Message)
		}
		return &Error{
			Kind:   ErrRemote,
			Op:     op,
			Status: resp.StatusCode,
			Code:   env.Errors[0].Extensions.Code,
			Err:    errors.New(strings.Join(msgs, "; ")),
		}
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return &Error{Kind: ErrParse, Op: op, Status: resp.StatusCode, Err: errors.New("missing data")}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &Error{Kind: ErrParse, Op: op, Status: resp.StatusCode, Err: err}
	}
	return nil
}

func missing(op, field string) error {
	return &Error{Kind: ErrParse, Op: op, Err: fmt.Errorf("missing field %q", field)}
}
