// Package flatten turns a GEDCOM family tree into one flat row per individual
// plus a biography text per individual.
package flatten

import (
	"fmt"
	"time"

	"github.com/falkman/photopages/internal/gedcom"
	"github.com/falkman/photopages/internal/logging"
)

// Columns is the header of the person table, in cell order.
var Columns = []string{
	"GIVEN NAME", "MI", "SURNAME", "SUFFIX", "NAME", "SEX",
	"BIRTH DATE", "BIRTH PLACE", "DEATH DATE", "DEATH PLACE", "born_died", "AGE",
	"FATHER", "MOTHER", "SPOUSE",
	"CHILD1", "CHILD2", "CHILD3", "CHILD4", "CHILD5", "CHILD6",
	"SIB1", "SIB2", "SIB3", "SIB4", "SIB5", "SIB6",
	"BIO", "info_id",
}

// Person is the flattened row for one individual.
type Person struct {
	Xref       string
	Name       PersonName
	FullName   string
	Sex        string
	BirthDate  string
	BirthPlace string
	DeathDate  string
	DeathPlace string
	BornDied   string
	Age        Age
	Relatives
	Biography string
	BioFile   string
	InfoID    string
}

// Cells returns the row values aligned with Columns.
func (p Person) Cells() []any {
	cells := make([]any, 0, len(Columns))
	cells = append(cells,
		p.Name.Given, p.Name.Middle, p.Name.Surname, p.Name.Suffix, p.FullName, p.Sex,
		p.BirthDate, p.BirthPlace, p.DeathDate, p.DeathPlace, p.BornDied, p.Age.Value(),
		p.Father, p.Mother, p.Spouse,
	)
	for _, child := range p.Children {
		cells = append(cells, child)
	}
	for _, sibling := range p.Siblings {
		cells = append(cells, sibling)
	}
	return append(cells, p.BioFile, p.InfoID)
}

// BiographySink receives one biography per person, keyed by display name.
type BiographySink interface {
	WriteBiography(name, text string) error
}

// Flattener converts documents into person rows.
type Flattener struct {
	now       func() time.Time
	logger    logging.Logger
	overrides map[string]string
}

// Option customizes a Flattener during construction.
type Option func(*Flattener)

// WithClock overrides the clock used to age people without a death date.
func WithClock(clock func() time.Time) Option {
	return func(f *Flattener) {
		if clock != nil {
			f.now = clock
		}
	}
}

// WithLogger routes per-person diagnostics to logger.
func WithLogger(logger logging.Logger) Option {
	return func(f *Flattener) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithNameOverrides replaces the given-name correction table.
func WithNameOverrides(overrides map[string]string) Option {
	return func(f *Flattener) {
		f.overrides = overrides
	}
}

// New builds a Flattener with DefaultNameOverrides and the wall clock.
func New(opts ...Option) *Flattener {
	f := &Flattener{
		now:       time.Now,
		logger:    logging.Nop(),
		overrides: DefaultNameOverrides,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Flatten produces one Person per INDI record in document order and writes
// each biography to sink. A nil sink skips biography output. The first sink
// error aborts the run.
func (f *Flattener) Flatten(doc *gedcom.Document, sink BiographySink) ([]Person, error) {
	names := NewResolver(doc, f.overrides)
	family := NewTraverser(doc, names)
	now := f.now()

	individuals := doc.Individuals()
	people := make([]Person, 0, len(individuals))
	for _, ind := range individuals {
		p := f.person(doc, ind, names, family, now)
		if sink != nil {
			if err := sink.WriteBiography(p.FullName, p.Biography); err != nil {
				return nil, fmt.Errorf("flatten: write biography for %s: %w", ind.Xref, err)
			}
		}
		people = append(people, p)
	}
	f.logger.Info("flattened family tree", "people", len(people))
	return people, nil
}

func (f *Flattener) person(doc *gedcom.Document, ind *gedcom.Record, names *Resolver, family *Traverser, now time.Time) Person {
	name := names.Resolve(ind)
	p := Person{
		Xref:     ind.Xref,
		Name:     name,
		FullName: name.Display(),
		Sex:      ind.Gender(),
		InfoID:   stripXref(ind.Xref),
	}
	p.BirthDate, p.BirthPlace = ind.Birth()
	p.DeathDate, p.DeathPlace = ind.Death()
	p.BornDied = p.BirthDate + " - " + p.DeathDate
	p.Age = ComputeAge(p.BirthDate, p.DeathDate, now)
	p.Relatives = family.Relatives(ind)

	bio, ok := Biography(doc, ind)
	if !ok {
		bio = PlaceholderBiography(p.FullName)
	}
	p.Biography = bio
	p.BioFile = BiographyFile(p.FullName)

	log := f.logger.With("xref", ind.Xref, "name", p.FullName)
	if !p.Age.Known && p.BirthDate != "" {
		log.Debug("unparseable birth date", "birth", p.BirthDate)
	}
	if !ok {
		log.Debug("no notes, using placeholder biography")
	}
	log.Debug("flattened person", "age", p.Age.String())
	return p
}

// stripXref drops the "@I" prefix and trailing "@" of an identifier.
func stripXref(xref string) string {
	if len(xref) < 3 {
		return ""
	}
	return xref[2 : len(xref)-1]
}
