package alerts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const userAgent = "ghostie"

// Ntfy posts alerts to an ntfy topic URL.
type Ntfy struct {
	endpoint string
	client   *http.Client
}

// NewNtfy builds an ntfy sink. requestTimeout bounds each HTTP request in
// addition to the per-send timeout.
func NewNtfy(endpoint string, requestTimeout time.Duration) *Ntfy {
	if requestTimeout <= 0 {
		requestTimeout = 10 * time.Second
	}
	return &Ntfy{
		endpoint: strings.TrimSpace(endpoint),
		client:   &http.Client{Timeout: requestTimeout},
	}
}

func (n *Ntfy) Send(ctx context.Context, message string, timeout time.Duration) error {
	if n == nil || n.client == nil || n.endpoint == "" {
		return nil
	}
	ctx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	req.Header.Set("Title", AppName)
	req.Header.Set("Tags", "ghostie,github,bell")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
