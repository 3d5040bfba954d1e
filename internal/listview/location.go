package listview

import (
	"strings"
	"sync"
)

// Location is the address bar of a list page: the current query string and a
// navigation that replaces the current history entry.
type Location interface {
	Query() string
	Replace(rawQuery string)
}

// MemoryLocation is an in-process Location. It records how many entries the
// history holds so callers can check that replacements never push.
type MemoryLocation struct {
	mu       sync.RWMutex
	path     string
	query    string
	entries  int
	replaces int
}

// NewMemoryLocation parses "path?query", "?query" or a bare query.
func NewMemoryLocation(rawURL string) *MemoryLocation {
	path, query, found := strings.Cut(rawURL, "?")
	if !found && !strings.HasPrefix(rawURL, "/") {
		path, query = "", rawURL
	}
	return &MemoryLocation{path: path, query: query, entries: 1}
}

func (l *MemoryLocation) Query() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.query
}

func (l *MemoryLocation) Replace(rawQuery string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.query = strings.TrimPrefix(rawQuery, "?")
	l.replaces++
}

// Push navigates to a new entry, as a link click would.
func (l *MemoryLocation) Push(rawQuery string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.query = strings.TrimPrefix(rawQuery, "?")
	l.entries++
}

// URL renders path and query the way a browser shows them.
func (l *MemoryLocation) URL() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.query == "" {
		return l.path
	}
	return l.path + "?" + l.query
}

// HistoryLen is the number of history entries created so far.
func (l *MemoryLocation) HistoryLen() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.entries
}

// Replacements counts Replace calls.
func (l *MemoryLocation) Replacements() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.replaces
}
