package engine

import (
	"strings"

	"github.com/Andbal23/dynamic-music-pill/internal/config"
)

// Filter decides which bus names may become sessions. The list is
// matched case-insensitively as substrings. In allow mode the same
// list additionally gates web-content URLs during arbitration.
type Filter struct {
	mode string
	list []string
}

// NewFilter builds a filter from configuration values.
func NewFilter(mode string, list []string) Filter {
	cleaned := make([]string, 0, len(list))
	for _, item := range list {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" {
			cleaned = append(cleaned, item)
		}
	}
	return Filter{mode: mode, list: cleaned}
}

// AllowListActive reports whether allow-mode URL gating applies.
func (f Filter) AllowListActive() bool {
	return f.mode == config.FilterAllow
}

// AllowsName reports whether a bus name passes the filter. An empty
// list allows everything in deny mode and nothing in allow mode.
func (f Filter) AllowsName(busName string) bool {
	switch f.mode {
	case config.FilterDeny:
		return !f.matches(busName)
	case config.FilterAllow:
		return f.matches(busName)
	default:
		return true
	}
}

// AllowsURL reports whether a content URL matches the allow list.
// Only consulted for web content while allow mode is active.
func (f Filter) AllowsURL(url string) bool {
	return f.matches(url)
}

func (f Filter) matches(s string) bool {
	s = strings.ToLower(s)
	for _, item := range f.list {
		if strings.Contains(s, item) {
			return true
		}
	}
	return false
}
