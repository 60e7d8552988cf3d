package export

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/falkman/photopages/internal/artifact"
	"github.com/falkman/photopages/internal/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumns(t *testing.T) {
	got := Columns([]string{" info_id ", "name", "parent_info_id", "pic "}, DefaultRenames)
	assert.Equal(t, []string{"id", "name", "parent_id", "pic"}, got)
	assert.Equal(t, []string{"info_id"}, Columns([]string{"info_id"}, map[string]string{}))
}

func TestEncodeKeepsOrderAndTypes(t *testing.T) {
	table := &sheet.Table{
		Header: []string{"info_id", "name", "born", "age", "living"},
		Rows: [][]sheet.Cell{
			{
				{Text: "1", Kind: sheet.KindNumber},
				{Text: "John <Jack> Smith", Kind: sheet.KindString},
				{Text: "1944", Kind: sheet.KindString},
				{Text: "81.5", Kind: sheet.KindNumber},
				{Text: "1", Kind: sheet.KindBool},
			},
			{
				{Text: "2", Kind: sheet.KindNumber},
				{},
				{Text: "ABT 1898", Kind: sheet.KindString},
				{Text: "Unknown", Kind: sheet.KindNumber},
				{Text: "0", Kind: sheet.KindBool},
			},
		},
	}
	data, err := Encode(table, DefaultRenames)
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "[\n  {\n    \"id\": 1,"), text)
	assert.Less(t, strings.Index(text, `"id"`), strings.Index(text, `"name"`))
	assert.Less(t, strings.Index(text, `"born"`), strings.Index(text, `"age"`))
	assert.Contains(t, text, `"John <Jack> Smith"`)
	assert.True(t, strings.HasSuffix(text, "}\n]\n"), "single trailing newline")

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, float64(1), rows[0]["id"])
	assert.Equal(t, "1944", rows[0]["born"])
	assert.Equal(t, 81.5, rows[0]["age"])
	assert.Equal(t, true, rows[0]["living"])
	assert.Nil(t, rows[1]["name"])
	assert.Equal(t, "Unknown", rows[1]["age"])
	assert.Equal(t, false, rows[1]["living"])
}

func TestEncodeEmptyTable(t *testing.T) {
	data, err := Encode(&sheet.Table{Header: []string{"id"}}, nil)
	require.NoError(t, err)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(data, &rows))
	assert.Empty(t, rows)
}

func TestExportWritesJSON(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "InfoTableData.xlsx")
	require.NoError(t, sheet.WriteTable(input, "", []string{"info_id ", "name", "pic"}, [][]any{
		{1, "John Q Smith Jr", "john.jpg"},
		{2, "Mary Ellen Jones", nil},
	}))

	exp := &Exporter{Store: artifact.NewOsStore(dir)}
	count, err := exp.Export(input, "data/infotable.json")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	data, err := exp.Store.ReadFile("data/infotable.json")
	require.NoError(t, err)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, float64(2), rows[1]["id"])
	assert.Equal(t, "john.jpg", rows[0]["pic"])
	assert.Nil(t, rows[1]["pic"])
}

func TestExportMissingInput(t *testing.T) {
	exp := &Exporter{Store: artifact.NewOsStore(t.TempDir())}
	_, err := exp.Export(filepath.Join(t.TempDir(), "missing.xlsx"), "out.json")
	assert.Error(t, err)
}
