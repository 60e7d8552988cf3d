package gedcom

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTree = "\ufeff0 HEAD\r\n" + `1 CHAR UTF-8
0 @I1@ INDI
1 NAME John "Jack" Q. /Smith/ Jr
2 GIVN John
1 SEX M
1 BIRT
2 DATE 16 AUG 1944
2 PLAC Springfield, Illinois
1 FAMS @F1@
1 NOTE Served in the navy.
2 CONT Later moved west.
2 CONC  Retired in 2001.

0 @I2@ INDI
1 NAME
2 GIVN Mary
2 SURN Jones
1 SEX F
0 @F1@ FAM
1 HUSB @I1@
1 WIFE @I2@
0 TRLR
`

func TestParseBuildsHierarchy(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleTree))
	require.NoError(t, err)

	roots := doc.Roots()
	require.Len(t, roots, 5)
	assert.Equal(t, "HEAD", roots[0].Tag)
	assert.Equal(t, "TRLR", roots[4].Tag)

	individuals := doc.Individuals()
	require.Len(t, individuals, 2)
	assert.Equal(t, "@I1@", individuals[0].Xref)
	assert.Equal(t, "@I2@", individuals[1].Xref)

	fam, ok := doc.Lookup("@F1@")
	require.True(t, ok)
	assert.Equal(t, TagFamily, fam.Tag)
	require.Len(t, fam.Children, 2)
	assert.Equal(t, "@I2@", fam.Children[1].Value)
	assert.True(t, fam.Children[1].IsPointer())

	_, ok = doc.Lookup("@I99@")
	assert.False(t, ok)
}

func TestRecordAccessors(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleTree))
	require.NoError(t, err)
	john, _ := doc.Lookup("@I1@")
	mary, _ := doc.Lookup("@I2@")

	given, surname := john.Name()
	assert.Equal(t, `John "Jack" Q.`, given)
	assert.Equal(t, "Smith", surname)

	given, surname = mary.Name()
	assert.Equal(t, "Mary", given)
	assert.Equal(t, "Jones", surname)

	assert.Equal(t, "M", john.Gender())
	date, place := john.Birth()
	assert.Equal(t, "16 AUG 1944", date)
	assert.Equal(t, "Springfield, Illinois", place)

	date, place = john.Death()
	assert.Empty(t, date)
	assert.Empty(t, place)

	note, ok := john.FirstChild(TagNote)
	require.True(t, ok)
	assert.Equal(t, "Served in the navy.\nLater moved west. Retired in 2001.", note.Text())
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  error
	}{
		{name: "non numeric level", input: "X HEAD\n", want: ErrMalformedLine},
		{name: "missing tag", input: "0 @I1@\n", want: ErrMalformedLine},
		{name: "bad xref", input: "0 @I1 INDI\n", want: ErrMalformedLine},
		{name: "level jump", input: "0 @I1@ INDI\n2 DATE 1900\n", want: ErrLevelJump},
		{name: "orphan child", input: "1 NAME Lost\n", want: ErrLevelJump},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			assert.Contains(t, err.Error(), "line")
		})
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.ged")
	require.NoError(t, os.WriteFile(path, []byte(sampleTree), 0o644))

	doc, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, doc.Individuals(), 2)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.ged"))
	assert.Error(t, err)
}
