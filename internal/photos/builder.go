// Package photos builds the photo-gallery data file from the exported info
// table and the biography texts.
package photos

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/falkman/photopages/internal/artifact"
	"github.com/falkman/photopages/internal/logging"
	"github.com/tidwall/pretty"
)

// Entry is one record of the gallery data file.
type Entry struct {
	Pic     any    `json:"pic"`
	Name    any    `json:"name"`
	Born    any    `json:"born"`
	BioText string `json:"bioText"`
}

// DefaultBio is used when a record has no readable biography.
func DefaultBio(name any) string {
	return fmt.Sprintf("The bio for %v should be updated soon.", name)
}

// Builder reads info-table JSON through Store and resolves bio files under BioDir.
type Builder struct {
	Store  *artifact.Store
	BioDir string
	Logger logging.Logger
}

// Build writes the gallery entries for infoTable to output and returns how
// many were kept.
func (b *Builder) Build(infoTable, output string) (int, error) {
	raw, err := b.Store.ReadFile(infoTable)
	if err != nil {
		return 0, fmt.Errorf("photos: %w", err)
	}
	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return 0, fmt.Errorf("photos: parse %s: %w", infoTable, err)
	}
	entries := b.Entries(records)
	data, err := encode(entries)
	if err != nil {
		return 0, err
	}
	if err := b.Store.WriteFile(output, data); err != nil {
		return 0, fmt.Errorf("photos: %w", err)
	}
	b.logger().Info("built photo pages data", "output", output, "entries", len(entries), "records", len(records))
	return len(entries), nil
}

// Entries filters and enriches records in order. Records missing pic, name or
// born are skipped, as is any record whose pic was already taken.
func (b *Builder) Entries(records []map[string]any) []Entry {
	log := b.logger()
	seen := map[string]bool{}
	entries := make([]Entry, 0, len(records))
	for _, record := range records {
		if !truthy(record["pic"]) || !truthy(record["name"]) || !truthy(record["born"]) {
			log.Warn("skipping record with missing fields", "name", record["name"])
			continue
		}
		key := identity(record["pic"])
		if seen[key] {
			continue
		}
		seen[key] = true

		bio := DefaultBio(record["name"])
		if file, ok := record["bio"].(string); ok && file != "" {
			if text := b.readBio(file); text != "" {
				bio = text
			}
		}
		entries = append(entries, Entry{
			Pic:     record["pic"],
			Name:    record["name"],
			Born:    record["born"],
			BioText: bio,
		})
	}
	return entries
}

// readBio returns the bio text for file, or "" when it cannot be loaded.
func (b *Builder) readBio(file string) string {
	rel := filepath.Join(b.BioDir, file)
	state, err := b.Store.Check(rel)
	if state != artifact.StateReady {
		b.logger().Error("error loading bio", "file", file, "state", state, "err", err)
		return ""
	}
	data, err := b.Store.ReadFile(rel)
	if err != nil {
		b.logger().Error("error loading bio", "file", file, "err", err)
		return ""
	}
	return string(data)
}

func (b *Builder) logger() logging.Logger {
	if b.Logger == nil {
		return logging.Nop()
	}
	return b.Logger
}

// truthy mirrors the gallery's notion of a present field.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	default:
		return true
	}
}

func identity(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

func encode(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entries); err != nil {
		return nil, fmt.Errorf("photos: encode entries: %w", err)
	}
	out := pretty.PrettyOptions(bytes.TrimRight(buf.Bytes(), "\n"), &pretty.Options{Width: 80, Indent: "  "})
	// Same layout as the exported info table: one trailing newline.
	return append(bytes.TrimRight(out, "\n"), '\n'), nil
}
