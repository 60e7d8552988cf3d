package flatten

import (
	"fmt"
	"strings"

	"github.com/falkman/photopages/internal/gedcom"
)

// PlaceholderBiography is written for individuals without NOTE records.
func PlaceholderBiography(name string) string {
	return fmt.Sprintf("The biography for %s is not yet available.", name)
}

// BiographyFile is the file name a person's biography is stored under.
// Names are not sanitised, so identical display names share one file.
func BiographyFile(name string) string {
	return name + ".txt"
}

// Biography concatenates the NOTE blocks attached to ind. Blocks are joined
// by a blank line. A NOTE that points at a top-level NOTE record is read from
// that record. The bool is false when ind has no NOTE records at all.
func Biography(doc *gedcom.Document, ind *gedcom.Record) (string, bool) {
	notes := ind.ChildrenByTag(gedcom.TagNote)
	if len(notes) == 0 {
		return "", false
	}
	blocks := make([]string, 0, len(notes))
	for _, note := range notes {
		source := note
		if note.IsPointer() {
			if target, ok := doc.Lookup(note.Value); ok && target.Tag == gedcom.TagNote {
				source = target
			}
		}
		blocks = append(blocks, strings.TrimSpace(source.Text()))
	}
	return strings.TrimSpace(strings.Join(blocks, "\n\n")), true
}
