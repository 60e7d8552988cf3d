// Package gedcom reads GEDCOM 5.5 files into an immutable record tree.
//
// The reader only shapes lines into a hierarchy; it does not validate tags,
// cross references or the header. Consumers navigate the tree through
// Document.Lookup and Record.ChildrenByTag.
package gedcom

import "strings"

// Tags used by the flattener and by Record accessors.
const (
	TagIndividual = "INDI"
	TagFamily     = "FAM"
	TagNote       = "NOTE"
	TagName       = "NAME"
	TagGiven      = "GIVN"
	TagSurname    = "SURN"
	TagSex        = "SEX"
	TagBirth      = "BIRT"
	TagDeath      = "DEAT"
	TagDate       = "DATE"
	TagPlace      = "PLAC"
	TagContinue   = "CONT"
	TagConcat     = "CONC"
	TagChildOf    = "FAMC"
	TagSpouseOf   = "FAMS"
	TagHusband    = "HUSB"
	TagWife       = "WIFE"
	TagChild      = "CHIL"
)

// Record is one GEDCOM line together with its nested sub-records.
type Record struct {
	Level    int
	Xref     string
	Tag      string
	Value    string
	Children []*Record
}

// IsIndividual reports whether the record is an INDI record.
func (r *Record) IsIndividual() bool {
	return r != nil && r.Tag == TagIndividual
}

// IsPointer reports whether the value references another record (@X1@).
func (r *Record) IsPointer() bool {
	return r != nil && isXref(r.Value)
}

// ChildrenByTag returns the direct sub-records with the given tag in file order.
func (r *Record) ChildrenByTag(tag string) []*Record {
	if r == nil {
		return nil
	}
	var out []*Record
	for _, child := range r.Children {
		if child.Tag == tag {
			out = append(out, child)
		}
	}
	return out
}

// FirstChild returns the first direct sub-record with the given tag.
func (r *Record) FirstChild(tag string) (*Record, bool) {
	if r == nil {
		return nil, false
	}
	for _, child := range r.Children {
		if child.Tag == tag {
			return child, true
		}
	}
	return nil, false
}

// Name returns the given and surname parts of the record's name.
//
// The first NAME carrying a value wins and is split on '/'. A NAME without a
// value falls back to its GIVN and SURN sub-records once both are present.
func (r *Record) Name() (given, surname string) {
	for _, name := range r.ChildrenByTag(TagName) {
		if name.Value != "" {
			parts := strings.Split(name.Value, "/")
			given = strings.TrimSpace(parts[0])
			if len(parts) > 1 {
				surname = strings.TrimSpace(parts[1])
			}
			return given, surname
		}
		var foundGiven, foundSurname bool
		for _, part := range name.Children {
			switch part.Tag {
			case TagGiven:
				given, foundGiven = part.Value, true
			case TagSurname:
				surname, foundSurname = part.Value, true
			}
		}
		if foundGiven && foundSurname {
			return given, surname
		}
	}
	return given, surname
}

// Gender returns the SEX value, or "" when absent.
func (r *Record) Gender() string {
	if sex, ok := r.FirstChild(TagSex); ok {
		return sex.Value
	}
	return ""
}

// Birth returns the date and place of the record's BIRT events.
func (r *Record) Birth() (date, place string) {
	return r.event(TagBirth)
}

// Death returns the date and place of the record's DEAT events.
func (r *Record) Death() (date, place string) {
	return r.event(TagDeath)
}

// event scans every matching event; later DATE/PLAC values replace earlier ones.
func (r *Record) event(tag string) (date, place string) {
	for _, ev := range r.ChildrenByTag(tag) {
		for _, detail := range ev.Children {
			switch detail.Tag {
			case TagDate:
				date = detail.Value
			case TagPlace:
				place = detail.Value
			}
		}
	}
	return date, place
}

// Text returns the value joined with its CONT (new line) and CONC
// (same line) continuations.
func (r *Record) Text() string {
	if r == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(r.Value)
	for _, child := range r.Children {
		switch child.Tag {
		case TagContinue:
			b.WriteString("\n")
			b.WriteString(child.Value)
		case TagConcat:
			b.WriteString(child.Value)
		}
	}
	return b.String()
}

func isXref(value string) bool {
	return len(value) > 2 && strings.HasPrefix(value, "@") && strings.HasSuffix(value, "@")
}
