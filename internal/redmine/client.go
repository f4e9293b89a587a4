// Package redmine implements the issue tracker boundary against the
// Redmine REST API.
package redmine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	pageSize    = 100
	maxAttempts = 3
)

// Client talks to a Redmine instance. It owns pagination and retry;
// callers see complete result sets or an error.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *slog.Logger
}

func NewClient(baseURL, apiKey string, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Ping checks connectivity and credentials.
func (c *Client) Ping(ctx context.Context) error {
	var out struct {
		Projects []projectJSON `json:"projects"`
	}
	q := url.Values{}
	q.Set("limit", "1")
	return c.getJSON(ctx, "/projects.json", q, &out)
}

func (c *Client) apiURL(path string, q url.Values) string {
	u := c.baseURL + path
	if len(q) > 0 {
		u = u + "?" + q.Encode()
	}
	return u
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	if c.baseURL == "" {
		return errors.New("redmine: empty base URL")
	}
	u := c.apiURL(path, q)

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(300*(1<<attempt)) * time.Millisecond):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		req.Header.Set("X-Redmine-API-Key", c.apiKey)

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 300 {
			b, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			err = fmt.Errorf("redmine api status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(b)))
			// retry on 429/5xx
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				lastErr = err
				continue
			}
			return err
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("decoding %s: %w", path, err)
		}
		return nil
	}
	return lastErr
}
