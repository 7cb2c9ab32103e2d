// Package github resolves PR metadata from a GitHub Enterprise API.
// It is an optional enhancement: every failure falls back to the
// convention-based PR-<number> branch name so status fetching never blocks
// on GitHub being reachable.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/npratt/prdash/internal/jenkins"
)

const requestTimeout = 10 * time.Second

// ClientConfig holds the endpoint and credentials for a Client.
type ClientConfig struct {
	BaseURL string
	Owner   string
	Repo    string
	Token   string
}

// Client queries the GitHub v3 API for pull-request details.
type Client struct {
	cfg        ClientConfig
	httpClient *http.Client
}

// NewClient creates a Client. An empty token disables API lookups entirely
// and BranchForPR always answers with the convention-based name.
func NewClient(cfg ClientConfig) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// prResponse is the subset of the pulls API payload we read.
type prResponse struct {
	Head struct {
		Ref string `json:"ref"`
	} `json:"head"`
}

// BranchForPR returns the head branch name for a PR, falling back to the
// PR-<number> convention when the API is unavailable, unauthorized, or the
// PR cannot be found. The fallback is not an error.
func (c *Client) BranchForPR(ctx context.Context, prNumber string) string {
	fallback := jenkins.BranchForPR(prNumber)
	if c.cfg.Token == "" {
		return fallback
	}

	url := fmt.Sprintf("%s/api/v3/repos/%s/%s/pulls/%s",
		c.cfg.BaseURL, c.cfg.Owner, c.cfg.Repo, prNumber)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fallback
	}
	req.Header.Set("Authorization", "token "+c.cfg.Token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fallback
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fallback
	}

	var pr prResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil || pr.Head.Ref == "" {
		return fallback
	}
	return pr.Head.Ref
}
