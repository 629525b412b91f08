// Package sandbox confines all filesystem access to a single root
// directory. Every caller-supplied path token must pass through Resolve
// before it touches the filesystem; the returned absolute path is proven
// to be the root itself or a descendant of it.
package sandbox

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/docagent/backend/internal/types"
)

// Root is an immutable sandbox root. The zero value is unusable; create
// one with New.
type Root struct {
	path string // absolute, symlink-resolved
}

// New canonicalizes root and returns a sandbox anchored at it. The
// directory is created if it does not exist yet.
func New(root string) (*Root, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("invalid sandbox root %q: %w", root, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create sandbox root: %w", err)
	}
	// Resolve symlinks once so containment checks compare canonical forms.
	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize sandbox root: %w", err)
	}
	return &Root{path: canonical}, nil
}

// Path returns the canonical absolute path of the sandbox root.
func (r *Root) Path() string { return r.path }

// Resolve validates token against the sandbox root and returns the
// absolute path it names. Empty and "." tokens resolve to the root
// itself. Escape attempts fail with a SecurityViolation carrying the
// original token; the resolved path is never exposed in the error.
func (r *Root) Resolve(token string) (string, error) {
	if token == "" || token == "." {
		return r.path, nil
	}
	// Backslashes and drive letters are path syntax on other platforms;
	// rejecting them outright closes that hole on every platform.
	if strings.ContainsRune(token, '\\') || filepath.VolumeName(token) != "" {
		return "", types.SecurityViolation(token)
	}
	if filepath.IsAbs(token) {
		return "", types.SecurityViolation(token)
	}

	joined := filepath.Join(r.path, token)
	if !r.contains(joined) {
		return "", types.SecurityViolation(token)
	}

	// A symlink inside the sandbox may still point outside it. Canonicalize
	// the deepest existing ancestor and re-run the containment check.
	resolved, err := resolveExisting(joined)
	if err != nil {
		return "", types.Classify(err)
	}
	if !r.contains(resolved) {
		return "", types.SecurityViolation(token)
	}

	return resolved, nil
}

// Rel converts an absolute path inside the sandbox back to a token
// relative to the root, for echoing in results.
func (r *Root) Rel(abs string) string {
	rel, err := filepath.Rel(r.path, abs)
	if err != nil {
		return abs
	}
	return rel
}

// contains reports whether abs equals the root or lies beneath it,
// compared component-wise so that a sibling like "documents2" can never
// satisfy a check against "documents".
func (r *Root) contains(abs string) bool {
	rel, err := filepath.Rel(r.path, abs)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// resolveExisting canonicalizes the deepest existing ancestor of path and
// rejoins the remaining (not yet created) components.
func resolveExisting(path string) (string, error) {
	var tail []string
	current := path
	for {
		resolved, err := filepath.EvalSymlinks(current)
		if err == nil {
			if len(tail) == 0 {
				return resolved, nil
			}
			parts := append([]string{resolved}, tail...)
			return filepath.Join(parts...), nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
		parent := filepath.Dir(current)
		if parent == current {
			// Hit the filesystem root without finding anything; should not
			// happen for paths joined onto an existing sandbox root.
			return path, nil
		}
		tail = append([]string{filepath.Base(current)}, tail...)
		current = parent
	}
}
