// SPDX-License-Identifier: AGPL-3.0-or-later

package commits

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortSHA(t *testing.T) {
	assert.Equal(t, "abc1234", Commit{SHA: "abc1234def5678"}.ShortSHA())
	assert.Equal(t, "abc", Commit{SHA: "abc"}.ShortSHA())
}

func TestRepoGroupsAddKeepsDiscoveryOrder(t *testing.T) {
	var g RepoGroups
	g.Add(Commit{SHA: "a1", Repository: "octocat/beta"})
	g.Add(Commit{SHA: "a2", Repository: "octocat/alpha"})
	g.Add(Commit{SHA: "a3", Repository: "octocat/beta"})

	require.Len(t, g, 2)
	assert.Equal(t, "octocat/beta", g[0].Name)
	assert.Equal(t, "octocat/alpha", g[1].Name)
	assert.Len(t, g[0].Commits, 2)
	assert.Equal(t, 3, g.Total())
}

func TestRepoGroupsJSONOrderSurvivesRoundTrip(t *testing.T) {
	var g RepoGroups
	g.Add(Commit{SHA: "a1", Repository: "octocat/zeta", Date: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)})
	g.Add(Commit{SHA: "a2", Repository: "octocat/alpha", Date: time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC)})

	data, err := json.Marshal(g)
	require.NoError(t, err)

	// zeta was discovered first, so it must serialize first despite sorting
	// after alpha.
	assert.Less(t, strings.Index(string(data), "zeta"), strings.Index(string(data), "alpha"))

	var back RepoGroups
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back, 2)
	assert.Equal(t, "octocat/zeta", back[0].Name)
	assert.Equal(t, "octocat/alpha", back[1].Name)
	assert.Equal(t, g.Total(), back.Total())
}

func TestRepoGroupsUnmarshalRejectsNonObject(t *testing.T) {
	var g RepoGroups
	err := json.Unmarshal([]byte(`["octocat/demo"]`), &g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected object")
}
