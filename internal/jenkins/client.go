// Package jenkins fetches and normalizes PR build status from the Jenkins
// REST API. Fetches never return errors: every failure mode is folded into
// the returned record so callers need no fault handling around refreshes.
package jenkins

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/npratt/prdash/internal/build"
)

// DefaultTimeout bounds every outbound Jenkins call. A timeout counts as a
// transport-level failure for the fallback chain.
const DefaultTimeout = 10 * time.Second

// ClientConfig holds the endpoints and credentials for a Client.
type ClientConfig struct {
	JenkinsBase string
	Username    string
	Token       string
	GitHubBase  string
	Owner       string
	Repo        string
	Timeout     time.Duration
}

// Client fetches build status over the Jenkins REST API, trying the Blue
// Ocean run endpoint first and falling back to the legacy job API.
type Client struct {
	cfg        ClientConfig
	httpClient *http.Client
}

// NewClient creates a Client. Missing credentials mean requests go out
// unauthenticated; Jenkins decides whether that is acceptable.
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewPlaceholder returns the Pending record shown immediately when a PR is
// added, before its first fetch completes.
func (c *Client) NewPlaceholder(prNumber, jobPath string) build.Record {
	return build.Record{
		PRNumber:    prNumber,
		Status:      build.StatusPending,
		JobPath:     jobPath,
		PRURL:       PRURL(c.cfg.GitHubBase, c.cfg.Owner, c.cfg.Repo, prNumber),
		LastUpdated: time.Now(),
	}
}

// FetchBuild fetches the current status of a build. branch is the name
// Jenkins builds the PR under (a resolved head branch or the PR-<number>
// convention); prNumber is the tracked PR's identity and is never derived
// from the branch. buildNumber 0 means "latest". The returned record is
// always usable: transport failures on every path become an Error record
// with a message, an unknown-but-not-failed state becomes a Pending
// record, and both carry whatever URLs can still be constructed from the
// inputs.
func (c *Client) FetchBuild(ctx context.Context, jobPath, branch, prNumber string, buildNumber int) build.Record {
	data, status, err := c.getJSON(ctx, c.runEndpoint(jobPath, branch, buildNumber))
	if err == nil {
		switch {
		case status == http.StatusOK:
			return c.withURLs(Normalize(data, jobPath, prNumber))
		case status == http.StatusNotFound:
			// Branch or run not indexed yet: unconfirmed, not an error.
			return c.pendingRecord(prNumber, jobPath, buildNumber)
		default:
			return c.errorRecord(prNumber, jobPath, buildNumber,
				fmt.Sprintf("jenkins returned status %d", status))
		}
	}

	slog.Debug("blue ocean fetch failed, trying job API",
		"job_path", jobPath, "branch", branch, "error", err)
	return c.fetchViaJobAPI(ctx, jobPath, branch, prNumber, buildNumber)
}

// fetchViaJobAPI is the legacy fallback: enumerate the job's build list,
// locate the requested build (or the first one) and normalize its detail
// payload.
func (c *Client) fetchViaJobAPI(ctx context.Context, jobPath, branch, prNumber string, buildNumber int) build.Record {
	jobURL := fmt.Sprintf("%s/job/%s/api/json",
		c.cfg.JenkinsBase, strings.ReplaceAll(jobPath, "/", "/job/"))

	data, status, err := c.getJSON(ctx, jobURL)
	if err != nil {
		// Both API families unreachable: a genuine transport failure.
		return c.errorRecord(prNumber, jobPath, buildNumber,
			fmt.Sprintf("jenkins unreachable: %v", err))
	}
	if status != http.StatusOK {
		return c.pendingRecord(prNumber, jobPath, buildNumber)
	}

	builds, _ := data["builds"].([]any)
	for _, b := range builds {
		entry, ok := b.(map[string]any)
		if !ok {
			continue
		}
		if buildNumber != 0 && asInt(entry["number"]) != buildNumber {
			continue
		}
		detailURL := asString(entry["url"])
		if detailURL == "" {
			break
		}

		detail, detailStatus, err := c.getJSON(ctx, detailURL+"api/json")
		if err != nil {
			return c.errorRecord(prNumber, jobPath, buildNumber,
				fmt.Sprintf("fetching build detail: %v", err))
		}
		if detailStatus != http.StatusOK {
			break
		}
		return c.withURLs(Normalize(detail, jobPath, prNumber))
	}

	// Job reachable but no matching build: cannot confirm status yet.
	return c.pendingRecord(prNumber, jobPath, buildNumber)
}

// runEndpoint builds the Blue Ocean pipeline-run URL for a branch.
func (c *Client) runEndpoint(jobPath, branch string, buildNumber int) string {
	endpoint := fmt.Sprintf("%s/blue/rest/organizations/jenkins/pipelines/%s/branches/%s/runs",
		c.cfg.JenkinsBase, url.PathEscape(jobPath), url.PathEscape(branch))
	if buildNumber > 0 {
		return fmt.Sprintf("%s/%d", endpoint, buildNumber)
	}
	return endpoint + "?latest=true"
}

// getJSON performs a GET and decodes the JSON body. The returned error is
// transport-level only; HTTP error statuses come back via the status code
// with a nil payload. An undecodable 200 body yields an empty payload,
// which Normalize degrades to Pending.
func (c *Client) getJSON(ctx context.Context, rawURL string) (map[string]any, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, err
	}
	if c.cfg.Username != "" && c.cfg.Token != "" {
		req.SetBasicAuth(c.cfg.Username, c.cfg.Token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, nil
	}

	var data map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		slog.Debug("undecodable jenkins payload", "url", rawURL, "error", err)
		return map[string]any{}, resp.StatusCode, nil
	}
	return data, resp.StatusCode, nil
}

// withURLs fills in the PR and build URLs a normalized record cannot
// construct on its own.
func (c *Client) withURLs(rec build.Record) build.Record {
	rec.PRURL = PRURL(c.cfg.GitHubBase, c.cfg.Owner, c.cfg.Repo, rec.PRNumber)
	if rec.BuildNumber > 0 {
		rec.BuildURL = BuildURL(c.cfg.JenkinsBase, rec.JobPath, rec.PRNumber, rec.BuildNumber, "")
	}
	return rec
}

// pendingRecord is the "cannot confirm a build" result. The record never
// claims the requested build number as its own, though the build URL is
// still constructed from it so the tile stays clickable.
func (c *Client) pendingRecord(prNumber, jobPath string, buildNumber int) build.Record {
	rec := build.Record{
		PRNumber:    prNumber,
		Status:      build.StatusPending,
		JobPath:     jobPath,
		PRURL:       PRURL(c.cfg.GitHubBase, c.cfg.Owner, c.cfg.Repo, prNumber),
		LastUpdated: time.Now(),
	}
	if buildNumber > 0 {
		rec.BuildURL = BuildURL(c.cfg.JenkinsBase, jobPath, prNumber, buildNumber, "")
	}
	return rec
}

func (c *Client) errorRecord(prNumber, jobPath string, buildNumber int, msg string) build.Record {
	rec := c.pendingRecord(prNumber, jobPath, buildNumber)
	rec.Status = build.StatusError
	rec.ErrorMessage = msg
	return rec
}
