package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/gpt_pairs/types"
)

func TestOpenMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	store, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), store.Get())
	assert.NoFileExists(t, path)
}

func TestSetSavesOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	store, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, store.Set("modelDir", "models/ko"))
	require.NoError(t, store.Set("maxPairs", "250"))
	require.NoError(t, store.Set("customPattern", "[0-9]+"))

	reopened, err := Open(path)
	require.NoError(t, err)
	expected := Defaults()
	expected.ModelDir = "models/ko"
	expected.MaxPairs = 250
	expected.CustomPattern = "[0-9]+"
	assert.Equal(t, expected, reopened.Get())

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(contents), `"customPattern": "[0-9]+"`)
}

func TestSetUnchangedDoesNotWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("batchSize", "5"))
	assert.NoFileExists(t, path)
}

func TestSetRejectsBadInput(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), DefaultPath))
	require.NoError(t, err)
	assert.ErrorIs(t, store.Set("batchSize", "five"),
		types.ErrInvalidOption)
	assert.ErrorIs(t, store.Set("colour", "blue"), types.ErrInvalidOption)
	assert.Equal(t, Defaults(), store.Get())
}

func TestOpenMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))
	_, err := Open(path)
	assert.Error(t, err)
}

func TestOpenKeepsDefaultsForAbsentKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"dataDir": "corpus"}`), 0644))
	store, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "corpus", store.Get().DataDir)
	assert.Equal(t, 100, store.Get().MaxPairs)
}
