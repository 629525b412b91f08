package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docagent/backend/internal/types"
)

func TestCreateReadRoundTrip(t *testing.T) {
	p := newTestProvider(t)

	data, err := p.basic.Create(map[string]interface{}{"filename": "x.md", "content": "hello"})
	require.NoError(t, err)
	assert.Equal(t, "x.md", data["filename"])
	assert.Equal(t, 5, data["size"])

	read, err := p.basic.Read(map[string]interface{}{"filename": "x.md"})
	require.NoError(t, err)
	assert.Equal(t, "hello", read["content"])
}

func TestCreateAppendsMarkdownExtension(t *testing.T) {
	p := newTestProvider(t)

	data, err := p.basic.Create(map[string]interface{}{"filename": "notes", "content": ""})
	require.NoError(t, err)
	assert.Equal(t, "notes.md", data["filename"])

	_, err = os.Stat(filepath.Join(p.ops.Root.Path(), "notes.md"))
	assert.NoError(t, err)
}

func TestCreateRefusesOverwrite(t *testing.T) {
	p := newTestProvider(t)
	writeFile(t, p, "x.md", "original")

	_, err := p.basic.Create(map[string]interface{}{"filename": "x.md", "content": "new"})
	requireKind(t, err, types.KindAlreadyExists)

	// The original content must be untouched.
	read, err := p.basic.Read(map[string]interface{}{"filename": "x.md"})
	require.NoError(t, err)
	assert.Equal(t, "original", read["content"])
}

func TestCreateMissingParent(t *testing.T) {
	p := newTestProvider(t)

	_, err := p.basic.Create(map[string]interface{}{"filename": "deep/dir/x.md"})
	requireKind(t, err, types.KindNotFound)

	data, err := p.basic.Create(map[string]interface{}{"filename": "deep/dir/x.md", "parents": true})
	require.NoError(t, err)
	assert.Equal(t, true, data["created"])
}

func TestReadMissingFile(t *testing.T) {
	p := newTestProvider(t)

	_, err := p.basic.Read(map[string]interface{}{"filename": "missing.md"})
	requireKind(t, err, types.KindNotFound)
}

func TestReadDirectoryRejected(t *testing.T) {
	p := newTestProvider(t)
	require.NoError(t, os.MkdirAll(filepath.Join(p.ops.Root.Path(), "sub.md"), 0o755))

	_, err := p.basic.Read(map[string]interface{}{"filename": "sub.md"})
	requireKind(t, err, types.KindInvalidArguments)
}

func TestUpdateModes(t *testing.T) {
	p := newTestProvider(t)
	writeFile(t, p, "x.md", "hello")

	_, err := p.basic.Update(map[string]interface{}{"filename": "x.md", "content": " world", "mode": "append"})
	require.NoError(t, err)
	read, err := p.basic.Read(map[string]interface{}{"filename": "x.md"})
	require.NoError(t, err)
	assert.Equal(t, "hello world", read["content"])

	_, err = p.basic.Update(map[string]interface{}{"filename": "x.md", "content": "say: ", "mode": "prepend"})
	require.NoError(t, err)
	read, err = p.basic.Read(map[string]interface{}{"filename": "x.md"})
	require.NoError(t, err)
	assert.Equal(t, "say: hello world", read["content"])

	_, err = p.basic.Update(map[string]interface{}{"filename": "x.md", "content": "reset", "mode": "replace"})
	require.NoError(t, err)
	read, err = p.basic.Read(map[string]interface{}{"filename": "x.md"})
	require.NoError(t, err)
	assert.Equal(t, "reset", read["content"])
}

func TestUpdateDefaultsToReplace(t *testing.T) {
	p := newTestProvider(t)
	writeFile(t, p, "x.md", "old")

	_, err := p.basic.Update(map[string]interface{}{"filename": "x.md", "content": "new"})
	require.NoError(t, err)

	read, err := p.basic.Read(map[string]interface{}{"filename": "x.md"})
	require.NoError(t, err)
	assert.Equal(t, "new", read["content"])
}

func TestUpdateMissingFile(t *testing.T) {
	p := newTestProvider(t)

	_, err := p.basic.Update(map[string]interface{}{"filename": "missing.md", "content": "x"})
	requireKind(t, err, types.KindNotFound)
}

func TestUpdateInvalidMode(t *testing.T) {
	p := newTestProvider(t)
	writeFile(t, p, "x.md", "hello")

	_, err := p.basic.Update(map[string]interface{}{"filename": "x.md", "content": "x", "mode": "overwrite"})
	requireKind(t, err, types.KindInvalidArguments)
}

func TestDeleteFile(t *testing.T) {
	p := newTestProvider(t)
	writeFile(t, p, "x.md", "bye")

	data, err := p.basic.Delete(map[string]interface{}{"filename": "x.md"})
	require.NoError(t, err)
	assert.Equal(t, true, data["deleted"])
	assert.Equal(t, int64(3), data["deleted_size"])

	_, err = os.Stat(filepath.Join(p.ops.Root.Path(), "x.md"))
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteMissingFile(t *testing.T) {
	p := newTestProvider(t)

	_, err := p.basic.Delete(map[string]interface{}{"filename": "missing.md"})
	requireKind(t, err, types.KindNotFound)
}

func TestDeleteNonEmptyDirectoryNeedsRecursive(t *testing.T) {
	p := newTestProvider(t)
	writeFile(t, p, "dir/x.md", "content")

	_, err := p.basic.Delete(map[string]interface{}{"filename": "dir"})
	requireKind(t, err, types.KindInvalidArguments)

	data, err := p.basic.Delete(map[string]interface{}{"filename": "dir", "recursive": true})
	require.NoError(t, err)
	assert.Equal(t, true, data["is_dir"])

	_, err = os.Stat(filepath.Join(p.ops.Root.Path(), "dir"))
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteEmptyDirectory(t *testing.T) {
	p := newTestProvider(t)
	require.NoError(t, os.MkdirAll(filepath.Join(p.ops.Root.Path(), "empty"), 0o755))

	_, err := p.basic.Delete(map[string]interface{}{"filename": "empty"})
	require.NoError(t, err)
}
