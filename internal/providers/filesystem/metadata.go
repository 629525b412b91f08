package filesystem

import (
	"errors"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/docagent/backend/internal/types"
)

// MetadataOps handles file metadata and markdown structure analysis
type MetadataOps struct {
	*Ops
}

// GetTools returns metadata operation tool definitions
func (m *MetadataOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "files.stat",
			Name:        "File Info",
			Description: "Get detailed information about a file including size, word count, and structure",
			Parameters: []types.Parameter{
				{Name: "filename", Type: "string", Description: "Name or path of the file to analyze", Required: true},
			},
			Returns: "object",
		},
	}
}

// Stat returns file metadata and markdown structure counts
func (m *MetadataOps) Stat(params map[string]interface{}) (map[string]interface{}, error) {
	name, err := requireString(params, "filename")
	if err != nil {
		return nil, err
	}
	name = ensureMarkdownExt(name)

	path, err := m.Root.Resolve(name)
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
	lines := strings.Split(content, "\n")

	headers := 0
	links := 0
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			headers++
		}
		if strings.Contains(line, "[") && strings.Contains(line, "](") {
			links++
		}
	}

	return map[string]interface{}{
		"filename":    name,
		"size_bytes":  info.Size(),
		"modified":    info.ModTime().Unix(),
		"mime_type":   mimetype.Detect(data).String(),
		"lines":       len(lines),
		"words":       len(strings.Fields(content)),
		"characters":  len(content),
		"headers":     headers,
		"links":       links,
		"code_blocks": strings.Count(content, "```") / 2,
		"is_empty":    len(strings.TrimSpace(content)) == 0,
	}, nil
}
