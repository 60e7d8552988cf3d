package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/falkman/photopages/internal/config"
	"github.com/falkman/photopages/internal/sheet"
)

const tree = `0 HEAD
0 @I1@ INDI
1 NAME Walter /Smith/ Sr
1 BIRT
2 DATE 1920
1 FAMS @F1@
0 @I2@ INDI
1 NAME Edna /Smith/
1 FAMS @F1@
0 @F1@ FAM
1 HUSB @I1@
1 WIFE @I2@
0 TRLR
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := RootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(append(args, "--log-level", "disabled"))
	err := root.Execute()
	return out.String(), err
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "init", "--project", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "created")
	assert.FileExists(t, filepath.Join(dir, config.FileName))

	out, err = execute(t, "init", "--project", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "exists")
}

func TestFlattenCommandWithOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tree.ged"), []byte(tree), 0o644))
	logFile := filepath.Join(dir, "logs", "run.log")

	out, err := execute(t, "flatten",
		"--project", dir,
		"--gedcom", "tree.ged",
		"--output", "out/people.xlsx",
		"--bio-dir", "bios",
		"--sheet", "People",
		"--log-file", logFile,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "flattened")
	assert.Contains(t, out, "2 people")
	assert.Contains(t, out, filepath.Join("out", "people.xlsx"))
	assert.FileExists(t, logFile)

	table, err := sheet.ReadTable(filepath.Join(dir, "out", "people.xlsx"), "People")
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Sr", table.Rows[0][3].Text)
	assert.Equal(t, "Edna Smith", table.Rows[0][14].Text)
	assert.FileExists(t, filepath.Join(dir, "bios", "Walter Smith Sr.txt"))
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "flatten", "--project", dir)
	assert.Error(t, err, "missing GEDCOM file")

	_, err = execute(t, "run", "publish", "--project", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown step publish")

	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte("pipeline: [flatten, nope]\n"), 0o644))
	_, err = execute(t, "run", "--project", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown step nope")
	assert.NoFileExists(t, filepath.Join(dir, "parsed_genealogy.xlsx"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte("version: -1\n"), 0o644))
	_, err = execute(t, "export", "--project", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config:")
}

func TestRunNamedSteps(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "family.ged"), []byte(tree), 0o644))

	out, err := execute(t, "run", "Flatten", "--project", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "flattened")
	assert.FileExists(t, filepath.Join(dir, "parsed_genealogy.xlsx"))
	assert.NotContains(t, out, "exported")
}

func TestRelative(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "x.json"), relative("/p", "/p/data/x.json"))
	assert.Equal(t, "/elsewhere/x.json", relative("/p", "/elsewhere/x.json"))
}
