package watch

import (
	"fmt"
	"sync"

	"github.com/golang/groupcache/lru"

	"github.com/juiceinc/jbwatch/internal/fs"
)

const matchCacheMaxEntries = 4096

// Matcher finds the watch group of a path.
// Groups are evaluated in order, the first group with a matching pattern
// wins.
// A Matcher is immutable, results are cached.
type Matcher struct {
	groups []Group

	cache *lru.Cache
	mu    sync.Mutex
}

type matchResult struct {
	group *Group
}

// NewMatcher returns a Matcher for groups.
// An error is returned if a pattern is malformed.
func NewMatcher(groups []Group) (*Matcher, error) {
	m := Matcher{
		groups: make([]Group, len(groups)),
		cache:  lru.New(matchCacheMaxEntries),
	}

	for i, g := range groups {
		for _, p := range g.Patterns {
			if err := fs.ValidateGlob(p); err != nil {
				return nil, fmt.Errorf("group %q: %w", g.Name, err)
			}
		}

		m.groups[i] = Group{
			Name:     g.Name,
			Patterns: append([]string(nil), g.Patterns...),
			Debounce: g.Debounce,
			Coalesce: g.Coalesce,
		}
	}

	return &m, nil
}

// Match returns the first group that has a pattern matching the
// slash-separated relative path.
func (m *Matcher) Match(path string) (Group, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if v, ok := m.cache.Get(path); ok {
		res := v.(matchResult)
		if res.group == nil {
			return Group{}, false
		}

		return *res.group, true
	}

	res := matchResult{group: m.match(path)}
	m.cache.Add(path, res)

	if res.group == nil {
		return Group{}, false
	}

	return *res.group, true
}

func (m *Matcher) match(path string) *Group {
	for i := range m.groups {
		for _, pattern := range m.groups[i].Patterns {
			// patterns are validated in NewMatcher, Match can not fail
			if ok, _ := fs.MatchGlob(pattern, path); ok {
				return &m.groups[i]
			}
		}
	}

	return nil
}

// Groups returns the groups of the matcher.
func (m *Matcher) Groups() []Group {
	return append([]Group(nil), m.groups...)
}
