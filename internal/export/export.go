// Package export converts a spreadsheet into the JSON info table the photo
// gallery reads.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/falkman/photopages/internal/artifact"
	"github.com/falkman/photopages/internal/logging"
	"github.com/falkman/photopages/internal/sheet"
	"github.com/tidwall/pretty"
)

// DefaultRenames maps header substrings to their replacement.
var DefaultRenames = map[string]string{"info_id": "id"}

var prettyOptions = &pretty.Options{Width: 80, Indent: "  "}

// Exporter turns spreadsheet rows into JSON row objects.
type Exporter struct {
	Sheet   string
	Renames map[string]string
	Store   *artifact.Store
	Logger  logging.Logger
}

// Export reads input, writes the JSON array to output and returns the number of rows.
func (e *Exporter) Export(input, output string) (int, error) {
	table, err := sheet.ReadTable(input, e.Sheet)
	if err != nil {
		return 0, fmt.Errorf("export: %w", err)
	}
	data, err := Encode(table, e.renames())
	if err != nil {
		return 0, err
	}
	if err := e.Store.WriteFile(output, data); err != nil {
		return 0, fmt.Errorf("export: %w", err)
	}
	e.logger().Info("exported spreadsheet", "input", input, "output", output, "rows", len(table.Rows))
	return len(table.Rows), nil
}

func (e *Exporter) renames() map[string]string {
	if e.Renames == nil {
		return DefaultRenames
	}
	return e.Renames
}

func (e *Exporter) logger() logging.Logger {
	if e.Logger == nil {
		return logging.Nop()
	}
	return e.Logger
}

// Columns trims each header and applies renames as substring replacements,
// in sorted key order.
func Columns(header []string, renames map[string]string) []string {
	keys := make([]string, 0, len(renames))
	for k := range renames {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		for _, k := range keys {
			h = strings.ReplaceAll(h, k, renames[k])
		}
		out[i] = h
	}
	return out
}

// Encode renders the table as an indented JSON array of objects whose keys
// follow the header order.
func Encode(table *sheet.Table, renames map[string]string) ([]byte, error) {
	columns := Columns(table.Header, renames)
	var buf bytes.Buffer
	buf.WriteByte('[')
	for r, row := range table.Rows {
		if r > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for c, col := range columns {
			if c > 0 {
				buf.WriteByte(',')
			}
			key, err := marshal(col)
			if err != nil {
				return nil, fmt.Errorf("export: encode column %q: %w", col, err)
			}
			buf.Write(key)
			buf.WriteByte(':')
			value, err := cellJSON(row[c])
			if err != nil {
				return nil, fmt.Errorf("export: encode row %d column %q: %w", r+1, col, err)
			}
			buf.Write(value)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	out := pretty.PrettyOptions(buf.Bytes(), prettyOptions)
	return append(bytes.TrimRight(out, "\n"), '\n'), nil
}

func cellJSON(cell sheet.Cell) ([]byte, error) {
	switch cell.Kind {
	case sheet.KindEmpty:
		return []byte("null"), nil
	case sheet.KindNumber:
		if f, ok := cell.Number(); ok && !math.IsInf(f, 0) && !math.IsNaN(f) {
			if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
				return []byte(strconv.FormatInt(int64(f), 10)), nil
			}
			return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
		}
	case sheet.KindBool:
		if b, ok := cell.Bool(); ok {
			return []byte(strconv.FormatBool(b)), nil
		}
	}
	return marshal(cell.Text)
}

// marshal encodes a string without HTML escaping.
func marshal(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
