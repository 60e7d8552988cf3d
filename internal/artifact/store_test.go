package artifact

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteBiographyOverwritesSameName(t *testing.T) {
	fsys := afero.NewMemMapFs()
	store := NewStore(fsys, "/site/bio")

	require.NoError(t, store.WriteBiography("Anna Berg", "first"))
	require.NoError(t, store.WriteBiography("Anna Berg", "second"))

	data, err := afero.ReadFile(fsys, "/site/bio/Anna Berg.txt")
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestReadWriteAndCheck(t *testing.T) {
	store := NewStore(afero.NewMemMapFs(), "/site")

	state, err := store.Check("data/infotable.json")
	require.NoError(t, err)
	assert.Equal(t, StateMissing, state)

	require.NoError(t, store.WriteFile("data/infotable.json", []byte("[]")))
	state, err = store.Check("data/infotable.json")
	require.NoError(t, err)
	assert.Equal(t, StateReady, state)

	data, err := store.ReadFile("/site/data/infotable.json")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	state, err = store.Check("data")
	assert.Error(t, err)
	assert.Equal(t, StateInvalid, state)

	_, err = store.ReadFile("missing.txt")
	assert.Error(t, err)
}

func TestOsStore(t *testing.T) {
	dir := t.TempDir()
	store := NewOsStore(filepath.Join(dir, "bio"))
	require.NoError(t, store.WriteBiography("John Q Smith Jr", "text"))
	assert.FileExists(t, filepath.Join(dir, "bio", "John Q Smith Jr.txt"))
	assert.Equal(t, filepath.Join(dir, "bio", "x.txt"), store.Path("x.txt"))
	assert.Equal(t, "/abs/x.txt", store.Path("/abs/x.txt"))
}
