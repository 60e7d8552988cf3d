package flatten

import (
	"regexp"
	"strings"

	"github.com/falkman/photopages/internal/gedcom"
)

// DefaultNameOverrides is the known data-quality patch for the family tree:
// @I113@ is recorded under a nickname and is listed by his given name.
var DefaultNameOverrides = map[string]string{
	"@I113@": "William",
}

var nicknamePattern = regexp.MustCompile(`\s*".*?"\s*`)

// PersonName holds the cleaned name components of one individual.
type PersonName struct {
	Given   string
	Middle  string
	Surname string
	Suffix  string
}

// Display joins the non-empty components with single spaces.
func (n PersonName) Display() string {
	parts := make([]string, 0, 4)
	for _, part := range []string{n.Given, n.Middle, n.Surname, n.Suffix} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " ")
}

// Resolver turns individual records, or HUSB/WIFE/CHIL links to them, into
// cleaned names.
type Resolver struct {
	doc       *gedcom.Document
	overrides map[string]string
}

// NewResolver builds a resolver over doc. overrides maps an identifier to a
// given name that replaces the recorded one when that individual is resolved
// directly and has a given name at all.
func NewResolver(doc *gedcom.Document, overrides map[string]string) *Resolver {
	table := make(map[string]string, len(overrides))
	for id, given := range overrides {
		table[id] = given
	}
	return &Resolver{doc: doc, overrides: table}
}

// Individual returns the INDI record behind rec, following a link if needed.
func (r *Resolver) Individual(rec *gedcom.Record) (*gedcom.Record, bool) {
	if rec == nil {
		return nil, false
	}
	if rec.IsIndividual() {
		return rec, true
	}
	return r.doc.Lookup(rec.Value)
}

// Resolve extracts the name of the individual behind rec. An unresolved link
// yields the zero PersonName.
func (r *Resolver) Resolve(rec *gedcom.Record) PersonName {
	ind, ok := r.Individual(rec)
	if !ok {
		return PersonName{}
	}
	var name PersonName
	given, surname := ind.Name()
	if given != "" {
		fields := strings.Fields(stripNickname(given))
		if len(fields) > 0 {
			name.Given = fields[0]
		}
		// The middle initial is positional: the last token when there are several.
		if len(fields) > 1 {
			name.Middle = strings.TrimRight(fields[len(fields)-1], ".")
		}
	}
	// Overrides patch the person's own row only; relatives reached through
	// HUSB/WIFE/CHIL links keep the recorded given name.
	if override, ok := r.overrides[ind.Xref]; ok && rec.IsIndividual() && given != "" {
		name.Given = override
	}
	name.Given = strings.TrimRight(name.Given, ".")
	name.Surname = surname
	name.Suffix = suffixOf(ind)
	return name
}

// stripNickname removes quoted nicknames, keeping the surrounding words apart.
func stripNickname(value string) string {
	return strings.TrimSpace(nicknamePattern.ReplaceAllString(value, " "))
}

// suffixOf takes the text after the closing surname slash of the last NAME
// that has one ("John /Smith/ Jr" -> "Jr").
func suffixOf(ind *gedcom.Record) string {
	suffix := ""
	for _, name := range ind.ChildrenByTag(gedcom.TagName) {
		parts := strings.Split(name.Value, "/")
		if len(parts) > 1 {
			suffix = strings.TrimSpace(parts[len(parts)-1])
		}
	}
	return suffix
}
