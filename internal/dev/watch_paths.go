package dev

import (
	"path/filepath"

	"github.com/vango-dev/hashview/internal/config"
)

// CollectWatchPaths returns the deduplicated watch paths for the project:
// the directories of the page and lang files plus dev.watch.
func CollectWatchPaths(cfg *config.Config) []string {
	paths := []string{filepath.Dir(cfg.PagePath())}
	if lang := cfg.LangPath(); lang != "" {
		paths = append(paths, filepath.Dir(lang))
	}
	paths = append(paths, cfg.WatchPaths()...)

	unique := make([]string, 0, len(paths))
	seen := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		clean := filepath.Clean(p)
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		unique = append(unique, clean)
	}
	return unique
}
