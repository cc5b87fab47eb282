// Package external probes third-party services shown on the status page.
package external

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const defaultTimeout = 3 * time.Second

// GitHubProbe checks that the GitHub API answers.
type GitHubProbe struct {
	url    string
	client *http.Client
}

// NewGitHubProbe returns a probe for the given API root. A nil client gets a
// short default timeout.
func NewGitHubProbe(url string, client *http.Client) *GitHubProbe {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &GitHubProbe{url: url, client: client}
}

// Ping issues a GET against the API root. Any 5xx or transport error counts as
// unavailable; rate limiting still proves the service is up.
func (p *GitHubProbe) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return fmt.Errorf("github: build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("github: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("github: unexpected status %d", resp.StatusCode)
	}
	return nil
}
