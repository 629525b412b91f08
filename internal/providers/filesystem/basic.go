package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/docagent/backend/internal/types"
)

// BasicOps handles core file operations
type BasicOps struct {
	*Ops
}

// GetTools returns basic file operation tool definitions
func (b *BasicOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "files.read",
			Name:        "Read File",
			Description: "Read the content of a markdown file",
			Parameters: []types.Parameter{
				{Name: "filename", Type: "string", Description: "Name or path of the markdown file", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "files.create",
			Name:        "Create File",
			Description: "Create a new markdown file with optional initial content",
			Parameters: []types.Parameter{
				{Name: "filename", Type: "string", Description: "Name or path of the new file", Required: true},
				{Name: "content", Type: "string", Description: "Initial content", Required: false},
				{Name: "parents", Type: "boolean", Description: "Create missing parent directories", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "files.update",
			Name:        "Update File",
			Description: "Update the content of an existing markdown file",
			Parameters: []types.Parameter{
				{Name: "filename", Type: "string", Description: "Name or path of the file to update", Required: true},
				{Name: "content", Type: "string", Description: "Content to write", Required: true},
				{Name: "mode", Type: "string", Description: "How to apply the content", Required: false, Enum: []string{"replace", "append", "prepend"}},
			},
			Returns: "object",
		},
		{
			ID:          "files.delete",
			Name:        "Delete File",
			Description: "Delete a file or directory",
			Parameters: []types.Parameter{
				{Name: "filename", Type: "string", Description: "Name or path to delete", Required: true},
				{Name: "recursive", Type: "boolean", Description: "Delete non-empty directories", Required: false},
			},
			Returns: "object",
		},
	}
}

// Read returns file content as text
func (b *BasicOps) Read(params map[string]interface{}) (map[string]interface{}, error) {
	name, err := requireString(params, "filename")
	if err != nil {
		return nil, err
	}
	name = ensureMarkdownExt(name)

	path, err := b.Root.Resolve(name)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, types.NotFound("file %q does not exist", name)
	}
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, types.InvalidArguments("%q is not a file", name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	content := string(data)

	return map[string]interface{}{
		"filename": name,
		"content":  content,
		"size":     len(content),
		"lines":    len(strings.Split(content, "\n")),
	}, nil
}

// Create creates a new file; overwriting an existing file is refused.
func (b *BasicOps) Create(params map[string]interface{}) (map[string]interface{}, error) {
	name, err := requireString(params, "filename")
	if err != nil {
		return nil, err
	}
	name = ensureMarkdownExt(name)
	content := stringParam(params, "content", "")
	parents := boolParam(params, "parents", false)

	path, err := b.Root.Resolve(name)
	if err != nil {
		return nil, err
	}

	parent := filepath.Dir(path)
	if _, err := os.Stat(parent); errors.Is(err, os.ErrNotExist) {
		if !parents {
			return nil, types.NotFound("parent directory of %q does not exist", name)
		}
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return nil, err
		}
	}

	// O_EXCL makes the existence check and the create one atomic step.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		return nil, types.AlreadyExists("file %q already exists", name)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"filename": name,
		"size":     len(content),
		"created":  true,
	}, nil
}

// Update rewrites file content using replace, append, or prepend mode.
func (b *BasicOps) Update(params map[string]interface{}) (map[string]interface{}, error) {
	name, err := requireString(params, "filename")
	if err != nil {
		return nil, err
	}
	content, ok := params["content"].(string)
	if !ok {
		return nil, types.InvalidArguments("content parameter required")
	}
	mode := stringParam(params, "mode", "replace")
	name = ensureMarkdownExt(name)

	path, err := b.Root.Resolve(name)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, types.NotFound("file %q does not exist", name)
	}
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, types.InvalidArguments("%q is not a file", name)
	}

	var updated string
	switch mode {
	case "replace":
		updated = content
	case "append", "prepend":
		existing, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if mode == "append" {
			updated = string(existing) + content
		} else {
			updated = content + string(existing)
		}
	default:
		return nil, types.InvalidArguments("invalid mode %q; use replace, append, or prepend", mode)
	}

	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"filename": name,
		"mode":     mode,
		"size":     len(updated),
	}, nil
}

// Delete removes a file, or a directory when explicitly allowed.
func (b *BasicOps) Delete(params map[string]interface{}) (map[string]interface{}, error) {
	token, err := requireString(params, "filename")
	if err != nil {
		return nil, err
	}
	recursive := boolParam(params, "recursive", false)

	name, path, info, err := b.statToken(token)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		if len(entries) > 0 && !recursive {
			return nil, types.InvalidArguments("directory %q is not empty; pass recursive to delete it", name)
		}
		if recursive {
			err = os.RemoveAll(path)
		} else {
			err = os.Remove(path)
		}
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"filename": name,
			"deleted":  true,
			"is_dir":   true,
		}, nil
	}

	size := info.Size()
	if err := os.Remove(path); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"filename":     name,
		"deleted":      true,
		"deleted_size": size,
	}, nil
}

// statToken resolves a token that may name a directory, a file, or a
// markdown file given without its extension, in that order.
func (b *BasicOps) statToken(token string) (string, string, os.FileInfo, error) {
	path, err := b.Root.Resolve(token)
	if err != nil {
		return "", "", nil, err
	}
	if info, err := os.Stat(path); err == nil {
		return token, path, info, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", "", nil, err
	}

	name := ensureMarkdownExt(token)
	if name != token {
		path, err = b.Root.Resolve(name)
		if err != nil {
			return "", "", nil, err
		}
		if info, err := os.Stat(path); err == nil {
			return name, path, info, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", "", nil, err
		}
	}
	return "", "", nil, types.NotFound("file %q does not exist", name)
}
