package gedcom

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var (
	// ErrMalformedLine indicates a line that does not follow `level [@xref@] TAG [value]`.
	ErrMalformedLine = errors.New("gedcom: malformed line")
	// ErrLevelJump indicates a line nested more than one level below its parent.
	ErrLevelJump = errors.New("gedcom: level jump")
)

const maxLineBytes = 1 << 20

// Document is a parsed GEDCOM file. It is read-only once Parse returns.
type Document struct {
	roots []*Record
	index map[string]*Record
}

// ParseFile opens and parses the GEDCOM file at path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gedcom: open %s: %w", path, err)
	}
	defer f.Close()
	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, path)
	}
	return doc, nil
}

// Parse reads a GEDCOM stream into a Document.
func Parse(r io.Reader) (*Document, error) {
	doc := &Document{index: map[string]*Record{}}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	// stack[i] holds the most recent record at level i.
	var stack []*Record
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w at line %d: %q", err, lineNo, line)
		}
		if rec.Level > len(stack) {
			return nil, fmt.Errorf("%w at line %d: level %d follows level %d", ErrLevelJump, lineNo, rec.Level, len(stack)-1)
		}
		stack = stack[:rec.Level]
		if rec.Level == 0 {
			doc.roots = append(doc.roots, rec)
			if rec.Xref != "" {
				doc.index[rec.Xref] = rec
			}
		} else {
			parent := stack[rec.Level-1]
			parent.Children = append(parent.Children, rec)
		}
		stack = append(stack, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("gedcom: read: %w", err)
	}
	return doc, nil
}

func parseLine(line string) (*Record, error) {
	line = strings.TrimLeft(line, " \t")
	levelToken, rest, _ := strings.Cut(line, " ")
	level, err := strconv.Atoi(levelToken)
	if err != nil || level < 0 {
		return nil, ErrMalformedLine
	}
	rest = strings.TrimLeft(rest, " ")
	rec := &Record{Level: level}
	if strings.HasPrefix(rest, "@") {
		xref, after, _ := strings.Cut(rest, " ")
		if !isXref(xref) {
			return nil, ErrMalformedLine
		}
		rec.Xref = xref
		rest = strings.TrimLeft(after, " ")
	}
	tag, value, _ := strings.Cut(rest, " ")
	if tag == "" {
		return nil, ErrMalformedLine
	}
	rec.Tag = strings.ToUpper(tag)
	rec.Value = value
	return rec, nil
}

// Roots returns the top-level records in declaration order.
func (d *Document) Roots() []*Record {
	return d.roots
}

// Individuals returns the top-level INDI records in declaration order.
func (d *Document) Individuals() []*Record {
	var out []*Record
	for _, rec := range d.roots {
		if rec.IsIndividual() {
			out = append(out, rec)
		}
	}
	return out
}

// Lookup resolves a cross reference such as "@I1@" to its top-level record.
func (d *Document) Lookup(xref string) (*Record, bool) {
	rec, ok := d.index[xref]
	return rec, ok
}
