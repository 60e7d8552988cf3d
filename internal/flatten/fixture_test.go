package flatten

import (
	"fmt"
	"strings"
	"testing"

	"github.com/falkman/photopages/internal/gedcom"
	"github.com/stretchr/testify/require"
)

// familyTree builds a small tree:
//
//	@I1@ John "Jack" Q. /Smith/ Jr, child of @F0@, married in @F1@ then @F2@
//	@F0@ has nine more children (@I20@..@I28@) so sibling slots overflow
//	@F1@ with Mary has one child, @F2@ with Ann has two
func familyTree() string {
	var b strings.Builder
	b.WriteString(`0 HEAD
1 CHAR UTF-8
0 @I1@ INDI
1 NAME John "Jack" Q. /Smith/ Jr
1 SEX M
1 BIRT
2 DATE 16 AUG 1944
2 PLAC Springfield
1 FAMC @F0@
1 FAMS @F1@
1 FAMS @F2@
0 @I2@ INDI
1 NAME Mary Ellen /Jones/
1 SEX F
1 BIRT
2 DATE ABT 1946
1 DEAT
2 DATE 3 MAR 2010
2 PLAC Boston
1 FAMS @F1@
1 NOTE Mary taught school.
2 CONT She loved gardening.
1 NOTE @N1@
0 @I3@ INDI
1 NAME Ann /Brown/
1 SEX F
1 FAMS @F2@
0 @I5@ INDI
1 NAME Peter /Smith/
1 FAMC @F1@
0 @I6@ INDI
1 NAME Paul /Smith/
1 FAMC @F2@
0 @I7@ INDI
1 NAME Lucy /Smith/
1 FAMC @F2@
0 @I10@ INDI
1 NAME Walter W. /Smith/ Sr
1 FAMS @F0@
0 @I11@ INDI
1 NAME Edna /Miller/
1 FAMS @F0@
0 @I113@ INDI
1 NAME "Bill" /Carter/
1 SEX M
0 @I114@ INDI
1 SEX U
`)
	for i := 20; i <= 28; i++ {
		fmt.Fprintf(&b, "0 @I%d@ INDI\n1 NAME Sib%d /Smith/\n1 FAMC @F0@\n", i, i)
	}
	b.WriteString(`0 @F0@ FAM
1 HUSB @I10@
1 WIFE @I11@
1 CHIL @I1@
`)
	for i := 20; i <= 28; i++ {
		fmt.Fprintf(&b, "1 CHIL @I%d@\n", i)
	}
	b.WriteString(`0 @F1@ FAM
1 HUSB @I1@
1 WIFE @I2@
1 CHIL @I5@
0 @F2@ FAM
1 HUSB @I1@
1 WIFE @I3@
1 CHIL @I6@
1 CHIL @I7@
1 CHIL @I404@
0 @N1@ NOTE Shared note about the Jones family.
1 CONC  Continued on the same line.
0 TRLR
`)
	return b.String()
}

func parseTree(t *testing.T, src string) *gedcom.Document {
	t.Helper()
	doc, err := gedcom.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func mustLookup(t *testing.T, doc *gedcom.Document, xref string) *gedcom.Record {
	t.Helper()
	rec, ok := doc.Lookup(xref)
	require.True(t, ok, "missing %s", xref)
	return rec
}

type memorySink struct {
	files map[string]string
	order []string
}

func newMemorySink() *memorySink {
	return &memorySink{files: map[string]string{}}
}

func (m *memorySink) WriteBiography(name, text string) error {
	m.files[name] = text
	m.order = append(m.order, name)
	return nil
}
