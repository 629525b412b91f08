package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/docagent/backend/internal/types"
)

// DirectoryOps handles directory operations
type DirectoryOps struct {
	*Ops
}

// GetTools returns directory operation tool definitions
func (d *DirectoryOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "files.list",
			Name:        "List Directory",
			Description: "List files and folders in the documents directory",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Relative path within the sandbox (default: root)", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "files.mkdir",
			Name:        "Create Directory",
			Description: "Create a new directory for organizing files",
			Parameters: []types.Parameter{
				{Name: "dirname", Type: "string", Description: "Name or path of the new directory", Required: true},
				{Name: "parents", Type: "boolean", Description: "Create missing parent directories", Required: false},
			},
			Returns: "object",
		},
	}
}

// List lists the immediate entries of a directory
func (d *DirectoryOps) List(params map[string]interface{}) (map[string]interface{}, error) {
	token := stringParam(params, "path", ".")

	path, err := d.Root.Resolve(token)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, types.NotFound("directory %q does not exist", token)
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, types.InvalidArguments("%q is not a directory", token)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	files := []map[string]interface{}{}
	folders := []map[string]interface{}{}
	for _, entry := range entries {
		rel := d.Root.Rel(filepath.Join(path, entry.Name()))
		if entry.IsDir() {
			folders = append(folders, map[string]interface{}{
				"name": entry.Name(),
				"path": rel,
			})
			continue
		}
		var size int64
		if fi, err := entry.Info(); err == nil {
			size = fi.Size()
		}
		files = append(files, map[string]interface{}{
			"name":        entry.Name(),
			"path":        rel,
			"size":        size,
			"is_markdown": strings.HasSuffix(entry.Name(), ".md"),
		})
	}

	return map[string]interface{}{
		"current_path":  token,
		"files":         files,
		"folders":       folders,
		"total_files":   len(files),
		"total_folders": len(folders),
	}, nil
}

// Mkdir creates a new directory
func (d *DirectoryOps) Mkdir(params map[string]interface{}) (map[string]interface{}, error) {
	dirname, err := requireString(params, "dirname")
	if err != nil {
		return nil, err
	}
	parents := boolParam(params, "parents", false)

	path, err := d.Root.Resolve(dirname)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err == nil {
		return nil, types.AlreadyExists("directory %q already exists", dirname)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if parents {
		err = os.MkdirAll(path, 0o755)
	} else {
		err = os.Mkdir(path, 0o755)
	}
	if errors.Is(err, os.ErrNotExist) {
		return nil, types.NotFound("parent directory of %q does not exist", dirname)
	}
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"dirname": dirname,
		"created": true,
	}, nil
}
