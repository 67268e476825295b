package watch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGroups() []Group {
	return []Group{
		{Name: "config", Patterns: []string{"jbwatch.toml"}},
		{Name: "apps", Patterns: []string{"apps/**/*.yaml", "apps/**/*.json", "apps/**/*.html"}},
		{Name: "js", Patterns: []string{"public/js/src/**/*", "public/test/js/spec/v3/**/*"}},
		{Name: "everything", Patterns: []string{"**/*"}},
	}
}

func TestMatch(t *testing.T) {
	m, err := NewMatcher(testGroups())
	require.NoError(t, err)

	testcases := []struct {
		path  string
		group string
	}{
		{path: "jbwatch.toml", group: "config"},
		{path: "apps/store/config.yaml", group: "apps"},
		{path: "apps/store/stacks/overview/templates.html", group: "apps"},
		{path: "public/js/src/app.js", group: "js"},
		{path: "public/test/js/spec/v3/app.spec.js", group: "js"},
		{path: "apps/store/app.py", group: "everything"},
	}

	for _, tc := range testcases {
		t.Run(tc.path, func(t *testing.T) {
			// the second call is answered from the cache
			for range 2 {
				g, ok := m.Match(tc.path)
				require.True(t, ok)
				assert.Equal(t, tc.group, g.Name)
			}
		})
	}
}

func TestMatchNoGroup(t *testing.T) {
	m, err := NewMatcher(testGroups()[:3])
	require.NoError(t, err)

	for range 2 {
		_, ok := m.Match("README.md")
		assert.False(t, ok)
	}
}

func TestNewMatcherRejectsMalformedPattern(t *testing.T) {
	_, err := NewMatcher([]Group{{Name: "broken", Patterns: []string{"apps/[*.yaml"}}})
	require.Error(t, err)
}

func TestMatcherCopiesGroups(t *testing.T) {
	groups := testGroups()

	m, err := NewMatcher(groups)
	require.NoError(t, err)

	groups[1].Patterns[0] = "nothing"

	g, ok := m.Match("apps/store/config.yaml")
	require.True(t, ok)
	assert.Equal(t, "apps", g.Name)
}
