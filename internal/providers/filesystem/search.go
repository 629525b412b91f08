package filesystem

import (
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"

	"github.com/docagent/backend/internal/types"
)

// SearchOps handles search and recent-file operations
type SearchOps struct {
	*Ops
}

// GetTools returns search operation tool definitions
func (s *SearchOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "files.search",
			Name:        "Search Files",
			Description: "Search for files by content or filename patterns",
			Parameters: []types.Parameter{
				{Name: "query", Type: "string", Description: "Text to search for", Required: true},
				{Name: "search_type", Type: "string", Description: "Search in file contents or filenames", Required: false, Enum: []string{"content", "filename"}},
			},
			Returns: "object",
		},
		{
			ID:          "files.find",
			Name:        "Find Files",
			Description: "Find files matching a glob pattern (supports **)",
			Parameters: []types.Parameter{
				{Name: "pattern", Type: "string", Description: "Glob pattern (e.g. 'notes/**/*.md')", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "files.recent",
			Name:        "Recent Files",
			Description: "List recently modified files within a specified time period",
			Parameters: []types.Parameter{
				{Name: "days", Type: "number", Description: "Number of days to look back", Required: false},
				{Name: "limit", Type: "number", Description: "Maximum number of files to return", Required: false},
			},
			Returns: "object",
		},
	}
}

// FileSearch scans markdown files under the sandbox root, never outside it.
func (s *SearchOps) FileSearch(params map[string]interface{}) (map[string]interface{}, error) {
	query, err := requireString(params, "query")
	if err != nil {
		return nil, err
	}
	searchType := stringParam(params, "search_type", "content")
	if searchType != "content" && searchType != "filename" {
		return nil, types.InvalidArguments("invalid search_type %q; use content or filename", searchType)
	}

	queryLower := strings.ToLower(query)
	maxMatches := s.Search.MaxMatchesPerFile

	var mu sync.Mutex
	results := []map[string]interface{}{}
	searched := 0

	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, s.Root.Path(), func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(p, ".md") {
			return nil
		}
		rel := s.Root.Rel(p)

		mu.Lock()
		searched++
		mu.Unlock()

		if searchType == "filename" {
			if strings.Contains(strings.ToLower(d.Name()), queryLower) {
				mu.Lock()
				results = append(results, map[string]interface{}{
					"file":       rel,
					"match_type": "filename",
					"match_text": d.Name(),
				})
				mu.Unlock()
			}
			return nil
		}

		data, err := os.ReadFile(p)
		if err != nil {
			return nil // unreadable files are skipped, not fatal
		}
		if !strings.Contains(strings.ToLower(string(data)), queryLower) {
			return nil
		}

		matchLines := []map[string]interface{}{}
		for i, line := range strings.Split(string(data), "\n") {
			if strings.Contains(strings.ToLower(line), queryLower) {
				matchLines = append(matchLines, map[string]interface{}{
					"line_number":  i + 1,
					"line_content": strings.TrimSpace(line),
				})
				if len(matchLines) >= maxMatches {
					break
				}
			}
		}

		mu.Lock()
		results = append(results, map[string]interface{}{
			"file":       rel,
			"match_type": "content",
			"matches":    matchLines,
		})
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i]["file"].(string) < results[j]["file"].(string)
	})

	return map[string]interface{}{
		"query":                query,
		"search_type":          searchType,
		"results":              results,
		"total_matches":        len(results),
		"total_files_searched": searched,
	}, nil
}

// Find matches files against a doublestar glob pattern under the root.
func (s *SearchOps) Find(params map[string]interface{}) (map[string]interface{}, error) {
	pattern, err := requireString(params, "pattern")
	if err != nil {
		return nil, err
	}

	// Resolving the pattern as a token confines the glob's starting point;
	// meta characters are ordinary name characters for the resolver.
	resolved, err := s.Root.Resolve(pattern)
	if err != nil {
		return nil, err
	}

	matches, err := doublestar.FilepathGlob(resolved)
	if err != nil {
		return nil, types.InvalidArguments("invalid pattern %q: %v", pattern, err)
	}

	relMatches := []string{}
	for _, match := range matches {
		relMatches = append(relMatches, s.Root.Rel(match))
	}
	sort.Strings(relMatches)

	return map[string]interface{}{
		"pattern": pattern,
		"matches": relMatches,
		"count":   len(relMatches),
	}, nil
}

// Recent lists recently modified markdown files, newest first.
func (s *SearchOps) Recent(params map[string]interface{}) (map[string]interface{}, error) {
	days := int(numberParam(params, "days", 7))
	limit := int(numberParam(params, "limit", 10))

	if days < 1 || days > s.Search.MaxRecentDays {
		return nil, types.InvalidArguments("days must be between 1 and %d", s.Search.MaxRecentDays)
	}
	if limit < 1 || limit > s.Search.MaxRecentLimit {
		return nil, types.InvalidArguments("limit must be between 1 and %d", s.Search.MaxRecentLimit)
	}

	type recentFile struct {
		rel      string
		modified time.Time
		size     int64
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	var mu sync.Mutex
	files := []recentFile{}

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, s.Root.Path(), func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(p, ".md") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().Before(cutoff) {
			return nil
		}
		mu.Lock()
		files = append(files, recentFile{rel: s.Root.Rel(p), modified: info.ModTime(), size: info.Size()})
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].modified.After(files[j].modified) })
	if len(files) > limit {
		files = files[:limit]
	}

	now := time.Now()
	out := []map[string]interface{}{}
	for _, f := range files {
		out = append(out, map[string]interface{}{
			"file":     f.rel,
			"modified": f.modified.Format(time.RFC3339),
			"size":     f.size,
			"days_ago": int(now.Sub(f.modified).Hours() / 24),
		})
	}

	return map[string]interface{}{
		"days_back":   days,
		"files":       out,
		"total_found": len(out),
	}, nil
}
