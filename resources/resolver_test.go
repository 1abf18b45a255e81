package resources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveModelDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tokenizer.model"),
		[]byte("spm"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"),
		[]byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"),
		[]byte("ignored"), 0644))

	rsrcs, err := ResolveModelDir(dir)
	require.NoError(t, err)
	defer rsrcs.Cleanup()
	assert.True(t, rsrcs.Has("tokenizer.model"))
	assert.True(t, rsrcs.Has("config.json"))
	assert.False(t, rsrcs.Has("tokenizer.json"))
	assert.False(t, rsrcs.Has("README.md"))
	assert.Equal(t, int64(3), (*rsrcs)["tokenizer.model"].Size)

	data, err := rsrcs.Data("tokenizer.model")
	require.NoError(t, err)
	assert.Equal(t, "spm", string(*data))

	_, err = rsrcs.Data("vocab.json")
	assert.Error(t, err)
}

func TestResolveModelDirNeedsEngineFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "merges.txt"),
		[]byte("#version: 0.2\n"), 0644))
	_, err := ResolveModelDir(dir)
	assert.Error(t, err)
}

func TestResolveModelDirMissing(t *testing.T) {
	_, err := ResolveModelDir(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.txt")
	require.NoError(t, os.WriteFile(path, []byte("가나다\n라마"), 0644))

	contents, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "가나다\n라마", string(contents))

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	contents, err = ReadFile(empty)
	require.NoError(t, err)
	assert.Empty(t, contents)

	_, err = ReadFile(filepath.Join(dir, "missing.txt"))
	assert.True(t, os.IsNotExist(err))

	_, err = ReadFile(dir)
	assert.Error(t, err)
}
