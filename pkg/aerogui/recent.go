package aerogui

import (
	"path/filepath"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/aeroki-lang/aerokiide"
)

// RecentFiles is a bounded most-recently-used list of opened documents.
type RecentFiles struct {
	cache *lru.Cache[string, struct{}]
}

// NewRecentFiles creates a list holding at most limit paths.
func NewRecentFiles(limit int) *RecentFiles {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	cache, err := lru.New[string, struct{}](limit)
	if err != nil {
		// Only possible for a non-positive size.
		panic(err)
	}
	return &RecentFiles{cache: cache}
}

// LoadRecentFiles restores the list stored in settings, newest first.
func LoadRecentFiles(settings *aeroki.Settings, limit int) *RecentFiles {
	r := NewRecentFiles(limit)
	if settings == nil {
		return r
	}
	// Oldest first so the newest ends up most recent.
	for i := len(settings.RecentFiles) - 1; i >= 0; i-- {
		r.Add(settings.RecentFiles[i])
	}
	return r
}

// Add records path as the most recently used file.
func (r *RecentFiles) Add(path string) {
	if path == "" {
		return
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	r.cache.Add(path, struct{}{})
}

// Remove forgets path, e.g. after it failed to open.
func (r *RecentFiles) Remove(path string) {
	r.cache.Remove(path)
}

// List returns the paths, most recent first.
func (r *RecentFiles) List() []string {
	keys := r.cache.Keys()
	slices.Reverse(keys)
	return keys
}

// Len returns the number of remembered files.
func (r *RecentFiles) Len() int { return r.cache.Len() }

// Clear forgets every file.
func (r *RecentFiles) Clear() { r.cache.Purge() }

// Store writes the list into settings for saving.
func (r *RecentFiles) Store(settings *aeroki.Settings) {
	if settings != nil {
		settings.RecentFiles = r.List()
	}
}
