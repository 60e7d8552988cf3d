package flatten

import (
	"github.com/falkman/photopages/internal/gedcom"
)

// RelativeSlots is the fixed number of child and sibling columns per person.
const RelativeSlots = 6

// Relatives holds the resolved display names around one individual.
type Relatives struct {
	Father   string
	Mother   string
	Spouse   string
	Children [RelativeSlots]string
	Siblings [RelativeSlots]string
}

// Traverser resolves parents, siblings, spouse and children through family
// records.
type Traverser struct {
	doc   *gedcom.Document
	names *Resolver
}

// NewTraverser builds a traverser that names relatives with names.
func NewTraverser(doc *gedcom.Document, names *Resolver) *Traverser {
	return &Traverser{doc: doc, names: names}
}

// Relatives collects the family members of ind.
//
// Only the first FAMC family is read. Across several FAMS families the spouse
// of the last one wins and children are appended without de-duplication.
func (t *Traverser) Relatives(ind *gedcom.Record) Relatives {
	var rel Relatives
	self := ind.Xref

	var siblings []string
	if link, ok := ind.FirstChild(gedcom.TagChildOf); ok {
		if fam, ok := t.doc.Lookup(link.Value); ok {
			for _, member := range fam.Children {
				switch member.Tag {
				case gedcom.TagHusband:
					rel.Father = t.names.Resolve(member).Display()
				case gedcom.TagWife:
					rel.Mother = t.names.Resolve(member).Display()
				case gedcom.TagChild:
					if member.Value != self {
						siblings = append(siblings, t.names.Resolve(member).Display())
					}
				}
			}
		}
	}

	var children []string
	for _, link := range ind.ChildrenByTag(gedcom.TagSpouseOf) {
		fam, ok := t.doc.Lookup(link.Value)
		if !ok {
			continue
		}
		for _, member := range fam.Children {
			switch member.Tag {
			case gedcom.TagHusband, gedcom.TagWife:
				if member.Value != self {
					rel.Spouse = t.names.Resolve(member).Display()
				}
			case gedcom.TagChild:
				children = append(children, t.names.Resolve(member).Display())
			}
		}
	}

	rel.Siblings = fillSlots(siblings)
	rel.Children = fillSlots(children)
	return rel
}

// fillSlots keeps the first RelativeSlots names; unused slots stay empty.
func fillSlots(names []string) [RelativeSlots]string {
	var slots [RelativeSlots]string
	copy(slots[:], names)
	return slots
}
