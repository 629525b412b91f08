package filesystem

import (
	"context"

	"github.com/docagent/backend/internal/config"
	"github.com/docagent/backend/internal/logging"
	"github.com/docagent/backend/internal/sandbox"
	"github.com/docagent/backend/internal/types"
)

// Provider exposes sandboxed file operations as a service
type Provider struct {
	ops *Ops

	basic    *BasicOps
	dir      *DirectoryOps
	transfer *TransferOps
	meta     *MetadataOps
	search   *SearchOps
}

// NewProvider creates a filesystem provider confined to root.
func NewProvider(root *sandbox.Root, log *logging.Logger, search config.SearchConfig) *Provider {
	if log == nil {
		log = logging.NewNop()
	}
	ops := &Ops{Root: root, Log: log, Search: search}
	return &Provider{
		ops:      ops,
		basic:    &BasicOps{Ops: ops},
		dir:      &DirectoryOps{Ops: ops},
		transfer: &TransferOps{Ops: ops},
		meta:     &MetadataOps{Ops: ops},
		search:   &SearchOps{Ops: ops},
	}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	tools := []types.Tool{}
	tools = append(tools, p.dir.GetTools()...)
	tools = append(tools, p.basic.GetTools()...)
	tools = append(tools, p.transfer.GetTools()...)
	tools = append(tools, p.search.GetTools()...)
	tools = append(tools, p.meta.GetTools()...)

	return types.Service{
		ID:          "files",
		Name:        "Document Files",
		Description: "Markdown file and directory operations with sandboxed access",
		Category:    types.CategoryFilesystem,
		Capabilities: []string{
			"list", "read", "create", "update", "delete",
			"mkdir", "rename", "move", "copy", "search",
			"stat", "backup", "recent", "find",
		},
		Tools: tools,
	}
}

// Execute runs a filesystem operation. The whole-sandbox mutex is held
// for the duration of the handler so operations never race on a file.
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}) (map[string]interface{}, error) {
	p.ops.mu.Lock()
	defer p.ops.mu.Unlock()

	switch toolID {
	case "files.list":
		return p.dir.List(params)
	case "files.mkdir":
		return p.dir.Mkdir(params)
	case "files.read":
		return p.basic.Read(params)
	case "files.create":
		return p.basic.Create(params)
	case "files.update":
		return p.basic.Update(params)
	case "files.delete":
		return p.basic.Delete(params)
	case "files.rename":
		return p.transfer.Rename(params)
	case "files.move":
		return p.transfer.Move(params)
	case "files.copy":
		return p.transfer.Copy(params)
	case "files.backup":
		return p.transfer.Backup(params)
	case "files.search":
		return p.search.FileSearch(params)
	case "files.find":
		return p.search.Find(params)
	case "files.recent":
		return p.search.Recent(params)
	case "files.stat":
		return p.meta.Stat(params)
	default:
		return nil, types.NewOpError(types.KindUnknownOperation, "unknown tool: %s", toolID)
	}
}
