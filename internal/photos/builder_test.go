package photos

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/falkman/photopages/internal/artifact"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const infoTable = `[
  {"id": 1, "pic": "john.jpg", "name": "John Q Smith Jr", "born": "1944", "bio": "John Q Smith Jr.txt"},
  {"id": 2, "pic": "john.jpg", "name": "Duplicate John", "born": "1944"},
  {"id": 3, "pic": "mary.jpg", "name": "Mary Ellen Jones", "born": "ABT 1946", "bio": "missing.txt"},
  {"id": 4, "pic": "", "name": "No Picture", "born": "1950"},
  {"id": 5, "pic": "ann.jpg", "name": "Ann Brown", "born": null},
  {"id": 6, "pic": "paul.jpg", "name": "Paul Smith", "born": 1970, "bio": null}
]`

func newBuilder(t *testing.T) (*Builder, afero.Fs) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	store := artifact.NewStore(fsys, "/site")
	require.NoError(t, store.WriteFile("data/infotable.json", []byte(infoTable)))
	require.NoError(t, store.WriteFile("bios/John Q Smith Jr.txt", []byte("John served in the navy.")))
	return &Builder{Store: store, BioDir: "bios"}, fsys
}

func TestBuildFiltersAndEnriches(t *testing.T) {
	builder, fsys := newBuilder(t)

	count, err := builder.Build("data/infotable.json", "data/PhotoPagesData.json")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	data, err := afero.ReadFile(fsys, "/site/data/PhotoPagesData.json")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[\n  {\n    \"pic\": \"john.jpg\","), string(data))
	assert.True(t, strings.HasSuffix(string(data), "}\n]\n"), "single trailing newline")

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 3)

	assert.Equal(t, "John Q Smith Jr", entries[0]["name"])
	assert.Equal(t, "John served in the navy.", entries[0]["bioText"])

	assert.Equal(t, "mary.jpg", entries[1]["pic"])
	assert.Equal(t, "The bio for Mary Ellen Jones should be updated soon.", entries[1]["bioText"])

	assert.Equal(t, float64(1970), entries[2]["born"])
	assert.Equal(t, "The bio for Paul Smith should be updated soon.", entries[2]["bioText"])
	_, hasID := entries[2]["id"]
	assert.False(t, hasID)
}

func TestBuildRejectsInvalidJSON(t *testing.T) {
	builder, _ := newBuilder(t)
	require.NoError(t, builder.Store.WriteFile("data/broken.json", []byte("{not json")))

	_, err := builder.Build("data/broken.json", "data/out.json")
	assert.Error(t, err)

	_, err = builder.Build("data/absent.json", "data/out.json")
	assert.Error(t, err)
}

func TestEntriesKeepDefaultWhenBioIsNotAFile(t *testing.T) {
	builder, _ := newBuilder(t)
	require.NoError(t, builder.Store.WriteFile("bios/folder/inner.txt", []byte("nested")))

	entries := builder.Entries([]map[string]any{
		{"pic": "a.jpg", "name": "Folder Person", "born": "1900", "bio": "folder"},
		{"pic": "b.jpg", "name": "Absent Person", "born": "1901", "bio": "absent.txt"},
	})
	require.Len(t, entries, 2)
	assert.Equal(t, "The bio for Folder Person should be updated soon.", entries[0].BioText)
	assert.Equal(t, "The bio for Absent Person should be updated soon.", entries[1].BioText)
}

func TestTruthy(t *testing.T) {
	assert.False(t, truthy(nil))
	assert.False(t, truthy(""))
	assert.False(t, truthy(float64(0)))
	assert.False(t, truthy(false))
	assert.True(t, truthy("x"))
	assert.True(t, truthy(float64(3)))
	assert.True(t, truthy([]any{}))
}
