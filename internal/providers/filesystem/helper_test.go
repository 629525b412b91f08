package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/docagent/backend/internal/config"
	"github.com/docagent/backend/internal/logging"
	"github.com/docagent/backend/internal/sandbox"
	"github.com/docagent/backend/internal/types"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	root, err := sandbox.New(filepath.Join(t.TempDir(), "documents"))
	require.NoError(t, err)
	return NewProvider(root, logging.NewNop(), config.Default().Search)
}

func writeFile(t *testing.T, p *Provider, rel, content string) {
	t.Helper()
	path := filepath.Join(p.ops.Root.Path(), rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func requireKind(t *testing.T, err error, kind types.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	var opErr *types.OpError
	require.True(t, errors.As(err, &opErr), "expected OpError, got %T: %v", err, err)
	require.Equal(t, kind, opErr.Kind, "message: %s", opErr.Message)
}
