package filesystem

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/docagent/backend/internal/types"
)

// TransferOps handles rename, move, copy, and backup operations
type TransferOps struct {
	*Ops
}

// GetTools returns transfer operation tool definitions
func (t *TransferOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "files.rename",
			Name:        "Rename",
			Description: "Rename a file or directory in place",
			Parameters: []types.Parameter{
				{Name: "old_name", Type: "string", Description: "Current name or path", Required: true},
				{Name: "new_name", Type: "string", Description: "New name (not a path)", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "files.move",
			Name:        "Move",
			Description: "Move a file to a different location within the sandbox",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "Current path of the file", Required: true},
				{Name: "destination", Type: "string", Description: "Destination directory or full path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "files.copy",
			Name:        "Copy",
			Description: "Copy a file to a new location",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "Source file path", Required: true},
				{Name: "destination", Type: "string", Description: "Destination file path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "files.backup",
			Name:        "Create Backup",
			Description: "Create a timestamped backup copy of a file",
			Parameters: []types.Parameter{
				{Name: "filename", Type: "string", Description: "Name or path of the file to back up", Required: true},
			},
			Returns: "object",
		},
	}
}

// Rename renames a file or directory within its parent directory.
func (t *TransferOps) Rename(params map[string]interface{}) (map[string]interface{}, error) {
	oldName, err := requireString(params, "old_name")
	if err != nil {
		return nil, err
	}
	newName, err := requireString(params, "new_name")
	if err != nil {
		return nil, err
	}

	oldPath, err := t.Root.Resolve(oldName)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(oldPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, types.NotFound("%q does not exist", oldName)
	}
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		newName = ensureMarkdownExt(newName)
	}

	// The new path shares the old parent; resolving its token guards
	// against traversal smuggled through new_name.
	newToken := t.Root.Rel(filepath.Join(filepath.Dir(oldPath), newName))
	newPath, err := t.Root.Resolve(newToken)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(newPath); err == nil {
		return nil, types.AlreadyExists("%q already exists", newName)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"old_name": oldName,
		"new_name": newName,
		"renamed":  true,
	}, nil
}

// Move relocates a file; a directory destination keeps the base name.
func (t *TransferOps) Move(params map[string]interface{}) (map[string]interface{}, error) {
	source, err := requireString(params, "source")
	if err != nil {
		return nil, err
	}
	destination, err := requireString(params, "destination")
	if err != nil {
		return nil, err
	}

	srcPath, err := t.Root.Resolve(source)
	if err != nil {
		return nil, err
	}
	srcInfo, err := os.Stat(srcPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, types.NotFound("source %q does not exist", source)
	}
	if err != nil {
		return nil, err
	}

	destPath, err := t.Root.Resolve(destination)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(destPath); err == nil && info.IsDir() {
		destPath, err = t.Root.Resolve(t.Root.Rel(filepath.Join(destPath, filepath.Base(srcPath))))
		if err != nil {
			return nil, err
		}
	} else if !srcInfo.IsDir() {
		destPath, err = t.Root.Resolve(ensureMarkdownExt(destination))
		if err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return nil, err
	}
	if _, err := os.Stat(destPath); err == nil {
		return nil, types.AlreadyExists("destination %q already exists", t.Root.Rel(destPath))
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if err := os.Rename(srcPath, destPath); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"source":      source,
		"destination": t.Root.Rel(destPath),
		"moved":       true,
	}, nil
}

// Copy copies a single file to a new location.
func (t *TransferOps) Copy(params map[string]interface{}) (map[string]interface{}, error) {
	source, err := requireString(params, "source")
	if err != nil {
		return nil, err
	}
	destination, err := requireString(params, "destination")
	if err != nil {
		return nil, err
	}

	srcPath, err := t.Root.Resolve(source)
	if err != nil {
		return nil, err
	}
	srcInfo, err := os.Stat(srcPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, types.NotFound("source file %q does not exist", source)
	}
	if err != nil {
		return nil, err
	}
	if srcInfo.IsDir() {
		return nil, types.InvalidArguments("%q is not a file", source)
	}

	destination = ensureMarkdownExt(destination)
	destPath, err := t.Root.Resolve(destination)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return nil, err
	}

	size, err := copyFile(srcPath, destPath)
	if errors.Is(err, os.ErrExist) {
		return nil, types.AlreadyExists("destination %q already exists", destination)
	}
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"source":      source,
		"destination": destination,
		"size":        size,
		"copied":      true,
	}, nil
}

// Backup copies a file to a timestamped sibling.
func (t *TransferOps) Backup(params map[string]interface{}) (map[string]interface{}, error) {
	name, err := requireString(params, "filename")
	if err != nil {
		return nil, err
	}
	name = ensureMarkdownExt(name)

	path, err := t.Root.Resolve(name)
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

	timestamp := time.Now().Format("20060102_150405")
	stem := strings.TrimSuffix(filepath.Base(path), ".md")
	backupToken := t.Root.Rel(filepath.Join(filepath.Dir(path), stem+"_backup_"+timestamp+".md"))
	backupPath, err := t.Root.Resolve(backupToken)
	if err != nil {
		return nil, err
	}

	size, err := copyFile(path, backupPath)
	if errors.Is(err, os.ErrExist) {
		return nil, types.AlreadyExists("backup %q already exists", backupToken)
	}
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"original_file": name,
		"backup_file":   backupToken,
		"backup_size":   size,
		"timestamp":     timestamp,
	}, nil
}

// copyFile copies src to dst, refusing to overwrite dst.
func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}
