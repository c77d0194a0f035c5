// SPDX-License-Identifier: AGPL-3.0-or-later

package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://api.github.com"

// The events API serves at most 300 events in pages of 100. This is a
// platform ceiling, not a tunable.
const (
	perPage  = 100
	maxPages = 10
)

// pageDelay is the politeness pause between event pages.
const pageDelay = 500 * time.Millisecond

// Client is a GitHub REST API client with rate-limit handling. All calls are
// synchronous and blocking; concurrency is the caller's problem and this
// system never needs it.
type Client struct {
	baseURL string
	token   string
	http    *http.Client

	// sleep is swapped out in tests so backoff paths don't actually wait.
	sleep func(time.Duration)
	now   func() time.Time
}

// NewClient creates a client. An empty token is allowed; requests then run
// unauthenticated with a reduced quota.
func NewClient(token string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
		sleep:   time.Sleep,
		now:     time.Now,
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}
	return c.http.Do(req)
}

// ValidateToken performs a pre-flight credential check against /user and
// turns the common failure modes into actionable diagnostics. A missing token
// is fine. Transport problems and unexpected statuses only warn; the fetch is
// allowed to proceed and fail on its own terms.
func (c *Client) ValidateToken(ctx context.Context) error {
	if c.token == "" {
		return nil
	}

	resp, err := c.get(ctx, "/user", nil)
	if err != nil {
		slog.Warn("could not validate GitHub token", "error", err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("invalid GitHub token: the GITHUB_TOKEN in your environment is invalid or expired; " +
			"generate a new personal access token at https://github.com/settings/tokens " +
			"with the 'public_repo' scope (or 'repo' for private repositories)")
	case http.StatusForbidden:
		return fmt.Errorf("GitHub token lacks required permissions: " +
			"add the 'public_repo' scope (or 'repo' for private repositories) at https://github.com/settings/tokens")
	case http.StatusOK:
		var user struct {
			Login string `json:"login"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&user); err == nil {
			slog.Info("GitHub token validated", "user", user.Login)
		}
		return nil
	default:
		slog.Warn("unexpected response validating GitHub token", "status", resp.StatusCode)
		return nil
	}
}

// CheckRateLimit queries the remaining core quota and warns when it runs low.
// Failures here never block a fetch.
func (c *Client) CheckRateLimit(ctx context.Context) {
	resp, err := c.get(ctx, "/rate_limit", nil)
	if err != nil {
		slog.Warn("rate limit check failed", "error", err)
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return
	}

	var rl rateLimitResponse
	if err := json.NewDecoder(resp.Body).Decode(&rl); err != nil {
		return
	}

	remaining := rl.Resources.Core.Remaining
	if remaining < 10 {
		wait := time.Unix(rl.Resources.Core.Reset, 0).Sub(c.now())
		if wait < 0 {
			wait = 0
		}
		slog.Warn("GitHub rate limit low", "remaining", remaining, "resets_in", wait.Round(time.Second))
	} else {
		slog.Info("GitHub rate limit", "remaining", remaining)
	}
}

// UserEvents fetches the user's activity feed, paginating until a short page,
// the platform page cap, or an empty page. A 403 that carries an
// X-RateLimit-Reset header sleeps until the reset instant and retries the
// same page; every other non-200 status is fatal for the call.
func (c *Client) UserEvents(ctx context.Context, username string) ([]Event, error) {
	var events []Event

	c.CheckRateLimit(ctx)

	for page := 1; page <= maxPages; page++ {
		pageEvents, retry, err := c.eventsPage(ctx, username, page)
		if err != nil {
			return nil, err
		}
		if retry {
			page--
			continue
		}
		if len(pageEvents) == 0 {
			break
		}

		events = append(events, pageEvents...)
		slog.Info("fetched events page", "page", page, "events", len(pageEvents))

		if len(pageEvents) < perPage {
			break
		}
		if page < maxPages {
			c.sleep(pageDelay)
		}
	}

	return events, nil
}

// eventsPage fetches a single page. retry=true signals a rate-limit wait
// happened and the same page must be requested again.
func (c *Client) eventsPage(ctx context.Context, username string, page int) (_ []Event, retry bool, _ error) {
	query := url.Values{
		"per_page": {strconv.Itoa(perPage)},
		"page":     {strconv.Itoa(page)},
	}
	resp, err := c.get(ctx, "/users/"+username+"/events", query)
	if err != nil {
		return nil, false, fmt.Errorf("fetching events page %d: %w", page, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusForbidden {
		reset, _ := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64)
		if reset == 0 {
			return nil, false, fmt.Errorf("GitHub rate limit exceeded and no reset time provided")
		}
		wait := time.Unix(reset, 0).Sub(c.now()) + time.Second
		if wait < 0 {
			wait = 0
		}
		slog.Warn("GitHub rate limit exceeded, waiting", "wait", wait.Round(time.Second))
		c.sleep(wait)
		return nil, true, nil
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, false, fmt.Errorf("GitHub API error: %d - %s", resp.StatusCode, string(body))
	}

	var pageEvents []Event
	if err := json.NewDecoder(resp.Body).Decode(&pageEvents); err != nil {
		return nil, false, fmt.Errorf("decoding events page %d: %w", page, err)
	}
	return pageEvents, false, nil
}

// CommitDetail fetches the detail record for one commit. Any failure is
// non-fatal: callers get nil and must tolerate the missing record.
func (c *Client) CommitDetail(ctx context.Context, repo, sha string) (*CommitDetail, error) {
	resp, err := c.get(ctx, "/repos/"+repo+"/commits/"+sha, nil)
	if err != nil {
		slog.Warn("error fetching commit", "sha", sha, "error", err)
		return nil, nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("failed to fetch commit", "sha", sha, "status", resp.StatusCode)
		return nil, nil
	}

	var detail CommitDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		slog.Warn("decoding commit detail", "sha", sha, "error", err)
		return nil, nil
	}
	return &detail, nil
}
