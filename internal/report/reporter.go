// Package report submits finished round scores to a remote score server.
// Reporting is best effort: callers log failures and carry on.
package report

//go:generate go tool mockgen -destination=./mocks/reporter_mock.go -package=mocks . Reporter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultURL is the score server endpoint used when none is configured.
const DefaultURL = "http://127.0.0.1:5000/scores"

// DefaultTimeout bounds a single report request.
const DefaultTimeout = 3 * time.Second

// Reporter submits a final score.
type Reporter interface {
	Report(ctx context.Context, score int) error
}

// Payload is the JSON body sent to the score server.
type Payload struct {
	Score int `json:"score"`
}

// HTTPReporter posts scores as JSON to a score server.
type HTTPReporter struct {
	url    string
	client *http.Client
	logger *log.Logger
}

// NewHTTPReporter creates a reporter for url. A zero timeout uses DefaultTimeout.
// A nil logger uses the package default logger.
func NewHTTPReporter(url string, timeout time.Duration, logger *log.Logger) *HTTPReporter {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.Default()
	}
	return &HTTPReporter{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger.WithPrefix("report"),
	}
}

// URL returns the endpoint scores are posted to.
func (r *HTTPReporter) URL() string {
	return r.url
}

// Report posts {"score": score}. Any non-2xx response is an error.
func (r *HTTPReporter) Report(ctx context.Context, score int) error {
	body, err := json.Marshal(Payload{Score: score})
	if err != nil {
		return fmt.Errorf("report: encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("report: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Debug("score not delivered", "url", r.url, "score", score, "err", err)
		return fmt.Errorf("report: post: %w", err)
	}
	defer resp.Body.Close()        //nolint:errcheck
	io.Copy(io.Discard, resp.Body) //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		r.logger.Debug("score rejected", "url", r.url, "score", score, "status", resp.StatusCode)
		return fmt.Errorf("report: unexpected status %d", resp.StatusCode)
	}

	r.logger.Debug("score delivered", "url", r.url, "score", score)
	return nil
}

// Nop is a Reporter that drops every score.
type Nop struct{}

// Report does nothing.
func (Nop) Report(context.Context, int) error {
	return nil
}
