package filesystem

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docagent/backend/internal/service"
	"github.com/docagent/backend/internal/types"
)

// newTestRegistry wires a real provider behind the dispatch boundary.
func newTestRegistry(t *testing.T) (*service.Registry, *Provider) {
	t.Helper()
	p := newTestProvider(t)
	reg := service.NewRegistry(nil, nil)
	require.NoError(t, reg.Register(p))
	return reg, p
}

func TestDispatchCreateThenRead(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	result := reg.Execute(ctx, "files.create", map[string]interface{}{"filename": "x.md", "content": "hello"})
	require.Equal(t, types.StatusSuccess, result.Status)

	result = reg.Execute(ctx, "files.update", map[string]interface{}{"filename": "x.md", "content": " world", "mode": "append"})
	require.Equal(t, types.StatusSuccess, result.Status)

	result = reg.Execute(ctx, "files.read", map[string]interface{}{"filename": "x.md"})
	require.Equal(t, types.StatusSuccess, result.Status)
	assert.Equal(t, "hello world", result.Data["content"])
}

func TestDispatchTraversalBlocked(t *testing.T) {
	reg, _ := newTestRegistry(t)

	result := reg.Execute(context.Background(), "files.read", map[string]interface{}{"filename": "../../etc/passwd"})
	require.Equal(t, types.StatusError, result.Status)
	require.NotNil(t, result.Error)
	assert.Equal(t, types.KindSecurityViolation, result.Error.Kind)
	assert.Contains(t, result.Error.Message, "../../etc/passwd")
	assert.NotContains(t, result.Error.Message, "/tmp")
}

func TestDispatchUnknownOperation(t *testing.T) {
	reg, _ := newTestRegistry(t)

	result := reg.Execute(context.Background(), "bogusOp", map[string]interface{}{})
	require.Equal(t, types.StatusError, result.Status)
	require.NotNil(t, result.Error)
	assert.Equal(t, types.KindUnknownOperation, result.Error.Kind)
	assert.Contains(t, result.Error.Message, "files.read")
}

func TestDispatchMissingRequiredArgument(t *testing.T) {
	reg, _ := newTestRegistry(t)

	result := reg.Execute(context.Background(), "files.read", map[string]interface{}{})
	require.Equal(t, types.StatusError, result.Status)
	require.NotNil(t, result.Error)
	assert.Equal(t, types.KindInvalidArguments, result.Error.Kind)
	assert.Contains(t, result.Error.Message, "filename")
}

func TestDispatchUnknownArgumentRejected(t *testing.T) {
	reg, _ := newTestRegistry(t)

	result := reg.Execute(context.Background(), "files.read", map[string]interface{}{
		"filename": "x.md",
		"bogus":    true,
	})
	require.Equal(t, types.StatusError, result.Status)
	assert.Equal(t, types.KindInvalidArguments, result.Error.Kind)
	assert.Contains(t, result.Error.Message, "bogus")
}

func TestDispatchResultEchoesOperationAndArguments(t *testing.T) {
	reg, _ := newTestRegistry(t)
	args := map[string]interface{}{"filename": "missing.md"}

	result := reg.Execute(context.Background(), "files.read", args)
	assert.Equal(t, "files.read", result.Operation)
	assert.Equal(t, args, result.Arguments)
	assert.Equal(t, types.KindNotFound, result.Error.Kind)
}

func TestDispatchEveryAdvertisedToolRoutes(t *testing.T) {
	reg, p := newTestRegistry(t)
	ctx := context.Background()

	for _, tool := range p.Definition().Tools {
		result := reg.Execute(ctx, tool.ID, map[string]interface{}{})
		require.NotNil(t, result, tool.ID)
		if result.Status == types.StatusError {
			// Empty arguments must never surface as an unknown operation.
			assert.NotEqual(t, types.KindUnknownOperation, result.Error.Kind, tool.ID)
		}
	}
}

func TestDispatchSandboxLeakFree(t *testing.T) {
	reg, p := newTestRegistry(t)
	ctx := context.Background()
	rootPath := p.ops.Root.Path()

	for _, token := range []string{"../escape", "../sibling.md", "/etc/hosts", `..\..\windows`} {
		result := reg.Execute(ctx, "files.read", map[string]interface{}{"filename": token})
		require.Equal(t, types.StatusError, result.Status, token)
		assert.Equal(t, types.KindSecurityViolation, result.Error.Kind, token)
		assert.False(t, strings.Contains(result.Error.Message, rootPath), token)
	}
}
