// SPDX-License-Identifier: AGPL-3.0-or-later

package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a client at the test server and neuters the sleeps.
// Recorded sleep durations land in the returned slice.
func newTestClient(srv *httptest.Server, now time.Time) (*Client, *[]time.Duration) {
	var slept []time.Duration
	c := NewClient("test-token")
	c.baseURL = srv.URL
	c.http = srv.Client()
	c.sleep = func(d time.Duration) { slept = append(slept, d) }
	c.now = func() time.Time { return now }
	return c, &slept
}

func eventsJSON(n int, repo string) string {
	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"type":"PushEvent","created_at":"2024-03-01T10:00:00Z","repo":{"name":%q},"payload":{"commits":[{"sha":"sha-%s-%d"}]}}`, repo, repo, i)
	}
	b.WriteString("]")
	return b.String()
}

func TestUserEventsStopsOnShortPage(t *testing.T) {
	pagesServed := map[string]int{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/rate_limit" {
			fmt.Fprint(w, `{"resources":{"core":{"remaining":5000,"reset":0}}}`)
			return
		}
		require.Equal(t, "/users/octocat/events", r.URL.Path)
		require.Equal(t, "100", r.URL.Query().Get("per_page"))
		page := r.URL.Query().Get("page")
		pagesServed[page]++
		switch page {
		case "1":
			fmt.Fprint(w, eventsJSON(perPage, "octocat/full"))
		case "2":
			fmt.Fprint(w, eventsJSON(30, "octocat/short"))
		default:
			t.Errorf("unexpected page request: %s", page)
			fmt.Fprint(w, "[]")
		}
	}))
	defer srv.Close()

	c, slept := newTestClient(srv, time.Now())
	events, err := c.UserEvents(context.Background(), "octocat")
	require.NoError(t, err)

	assert.Len(t, events, perPage+30)
	assert.Equal(t, 1, pagesServed["1"])
	assert.Equal(t, 1, pagesServed["2"])
	// One politeness pause between page 1 and page 2, none after the short page.
	assert.Equal(t, []time.Duration{pageDelay}, *slept)
}

func TestUserEventsStopsAtPageCap(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/rate_limit" {
			fmt.Fprint(w, `{"resources":{"core":{"remaining":5000,"reset":0}}}`)
			return
		}
		requests++
		fmt.Fprint(w, eventsJSON(perPage, fmt.Sprintf("octocat/r%s", r.URL.Query().Get("page"))))
	}))
	defer srv.Close()

	c, _ := newTestClient(srv, time.Now())
	events, err := c.UserEvents(context.Background(), "octocat")
	require.NoError(t, err)

	assert.Equal(t, maxPages, requests)
	assert.Len(t, events, maxPages*perPage)
}

func TestUserEventsStopsOnEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/rate_limit" {
			fmt.Fprint(w, `{"resources":{"core":{"remaining":5000,"reset":0}}}`)
			return
		}
		fmt.Fprint(w, "[]")
	}))
	defer srv.Close()

	c, _ := newTestClient(srv, time.Now())
	events, err := c.UserEvents(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestUserEventsRateLimitRetriesSamePage(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	reset := now.Add(30 * time.Second)

	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/rate_limit" {
			fmt.Fprint(w, `{"resources":{"core":{"remaining":5000,"reset":0}}}`)
			return
		}
		require.Equal(t, "1", r.URL.Query().Get("page"))
		attempts++
		if attempts == 1 {
			w.Header().Set("X-RateLimit-Reset", fmt.Sprint(reset.Unix()))
			w.WriteHeader(http.StatusForbidden)
			return
		}
		fmt.Fprint(w, eventsJSON(3, "octocat/demo"))
	}))
	defer srv.Close()

	c, slept := newTestClient(srv, now)
	events, err := c.UserEvents(context.Background(), "octocat")
	require.NoError(t, err)

	assert.Equal(t, 2, attempts)
	assert.Len(t, events, 3)
	require.NotEmpty(t, *slept)
	assert.Equal(t, 31*time.Second, (*slept)[0])
}

func TestUserEventsRateLimitWithoutResetIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/rate_limit" {
			fmt.Fprint(w, `{"resources":{"core":{"remaining":5000,"reset":0}}}`)
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c, _ := newTestClient(srv, time.Now())
	_, err := c.UserEvents(context.Background(), "octocat")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no reset time provided")
}

func TestUserEventsServerErrorIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/rate_limit" {
			fmt.Fprint(w, `{"resources":{"core":{"remaining":5000,"reset":0}}}`)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "boom")
	}))
	defer srv.Close()

	c, _ := newTestClient(srv, time.Now())
	_, err := c.UserEvents(context.Background(), "octocat")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GitHub API error: 500")
}

func TestValidateToken(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "valid", status: http.StatusOK, body: `{"login":"octocat"}`},
		{name: "invalid", status: http.StatusUnauthorized, wantErr: "invalid GitHub token"},
		{name: "missing scopes", status: http.StatusForbidden, wantErr: "lacks required permissions"},
		{name: "unexpected status warns only", status: http.StatusTeapot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/user", r.URL.Path)
				require.Equal(t, "token test-token", r.Header.Get("Authorization"))
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			c, _ := newTestClient(srv, time.Now())
			err := c.ValidateToken(context.Background())
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateTokenSkipsWhenEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected without a token")
	}))
	defer srv.Close()

	c, _ := newTestClient(srv, time.Now())
	c.token = ""
	assert.NoError(t, c.ValidateToken(context.Background()))
}

func TestCommitDetailFailuresAreNonFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/octocat/demo/commits/good":
			fmt.Fprint(w, `{"sha":"good","html_url":"https://example.com/good","commit":{"message":"fix","author":{"name":"Octo","date":"2024-03-01T10:00:00Z"}}}`)
		case "/repos/octocat/demo/commits/garbled":
			fmt.Fprint(w, "{not json")
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c, _ := newTestClient(srv, time.Now())
	ctx := context.Background()

	detail, err := c.CommitDetail(ctx, "octocat/demo", "good")
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, "fix", detail.Commit.Message)

	detail, err = c.CommitDetail(ctx, "octocat/demo", "missing")
	assert.NoError(t, err)
	assert.Nil(t, detail)

	detail, err = c.CommitDetail(ctx, "octocat/demo", "garbled")
	assert.NoError(t, err)
	assert.Nil(t, detail)
}
