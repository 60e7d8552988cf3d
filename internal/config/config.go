// internal/config/config.go
//
// This package handles the photopages.yaml project file. Every path in it is
// relative to the project directory unless written as an absolute path.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// FileName is the project config file looked up in the project directory.
	FileName = "photopages.yaml"

	StepFlatten = "flatten"
	StepExport  = "export"
	StepPhotos  = "photos"
)

// KnownSteps is the default pipeline. Step ids are checked against the step
// registry when the pipeline runs.
var KnownSteps = []string{StepFlatten, StepExport, StepPhotos}

const defaultProjectConfigYAML = `# photopages project configuration
version: 1

# GEDCOM -> person table + one biography text per person.
flatten:
  gedcom_file: family.ged
  output_file: parsed_genealogy.xlsx
  bio_dir: bio
  sheet: Sheet1
  # Known data-quality patches: identifier -> forced given name.
  name_overrides:
    "@I113@": William

# Spreadsheet -> JSON info table for the gallery.
export:
  input_file: InfoTableData.xlsx
  output_file: data/infotable.json
  # Empty means the first sheet of the workbook.
  sheet: ""
  rename:
    info_id: id

# Info table + bios -> gallery data file.
photos:
  info_table: data/infotable.json
  bio_dir: bios
  output_file: data/PhotoPagesData.json

pipeline: [flatten, export, photos]
`

// FlattenConfig configures the GEDCOM flattener.
type FlattenConfig struct {
	GedcomFile    string            `yaml:"gedcom_file"`
	OutputFile    string            `yaml:"output_file"`
	BioDir        string            `yaml:"bio_dir"`
	Sheet         string            `yaml:"sheet,omitempty"`
	NameOverrides map[string]string `yaml:"name_overrides,omitempty"`
}

// ExportConfig configures the spreadsheet to JSON exporter.
type ExportConfig struct {
	InputFile  string            `yaml:"input_file"`
	OutputFile string            `yaml:"output_file"`
	Sheet      string            `yaml:"sheet,omitempty"`
	Rename     map[string]string `yaml:"rename,omitempty"`
}

// PhotosConfig configures the gallery data builder.
type PhotosConfig struct {
	InfoTable  string `yaml:"info_table"`
	BioDir     string `yaml:"bio_dir"`
	OutputFile string `yaml:"output_file"`
}

// ProjectConfig models photopages.yaml.
type ProjectConfig struct {
	Version  int           `yaml:"version"`
	Flatten  FlattenConfig `yaml:"flatten"`
	Export   ExportConfig  `yaml:"export"`
	Photos   PhotosConfig  `yaml:"photos"`
	Pipeline []string      `yaml:"pipeline"`
}

// Config holds the runtime configuration.
type Config struct {
	// ProjectDir is the directory relative paths resolve against
	ProjectDir string

	// Path is the config file that was loaded, or would be
	Path string

	// Loaded reports whether Path existed
	Loaded bool

	Project ProjectConfig
}

// NewConfig loads configPath (or ProjectDir/photopages.yaml when empty).
// A missing file yields the defaults.
func NewConfig(projectDir, configPath string) (*Config, error) {
	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, fmt.Errorf("config: resolve project dir: %w", err)
	}
	if strings.TrimSpace(configPath) == "" {
		configPath = filepath.Join(abs, FileName)
	} else {
		configPath = resolvePath(abs, configPath)
	}
	cfg := &Config{
		ProjectDir: abs,
		Path:       configPath,
		Project:    defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// InitProjectConfig writes the commented default config into projectDir
// unless one already exists. It reports whether a file was created.
func InitProjectConfig(projectDir string) (string, bool, error) {
	path := filepath.Join(projectDir, FileName)
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return path, false, err
	}
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		return path, false, fmt.Errorf("config: ensure project dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644); err != nil {
		return path, false, fmt.Errorf("config: write %s: %w", path, err)
	}
	return path, true, nil
}

// Resolve makes p absolute against the project directory.
func (c *Config) Resolve(p string) string {
	return resolvePath(c.ProjectDir, p)
}

// Steps returns the configured pipeline.
func (c *Config) Steps() []string {
	return append([]string{}, c.Project.Pipeline...)
}

func (c *Config) loadProjectConfig() error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.Project.normalize(c.ProjectDir)
			return nil
		}
		return fmt.Errorf("config: read %s: %w", c.Path, err)
	}

	parsed := defaultProjectConfig()
	// yaml.v3 merges into existing maps. Start them nil so a file that sets
	// them replaces the defaults; applyDefaults restores them when omitted.
	parsed.Flatten.NameOverrides = nil
	parsed.Export.Rename = nil
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", c.Path, err)
	}

	parsed.applyDefaults()
	parsed.normalize(c.ProjectDir)
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	c.Loaded = true
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Flatten: FlattenConfig{
			GedcomFile:    "family.ged",
			OutputFile:    "parsed_genealogy.xlsx",
			BioDir:        "bio",
			Sheet:         "Sheet1",
			NameOverrides: map[string]string{"@I113@": "William"},
		},
		Export: ExportConfig{
			InputFile:  "InfoTableData.xlsx",
			OutputFile: filepath.Join("data", "infotable.json"),
			Rename:     map[string]string{"info_id": "id"},
		},
		Photos: PhotosConfig{
			InfoTable:  filepath.Join("data", "infotable.json"),
			BioDir:     "bios",
			OutputFile: filepath.Join("data", "PhotoPagesData.json"),
		},
		Pipeline: append([]string{}, KnownSteps...),
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	defaults := defaultProjectConfig()
	if pc.Flatten.NameOverrides == nil {
		pc.Flatten.NameOverrides = defaults.Flatten.NameOverrides
	}
	if pc.Export.Rename == nil {
		pc.Export.Rename = defaults.Export.Rename
	}
	if len(pc.Pipeline) == 0 {
		pc.Pipeline = append([]string{}, KnownSteps...)
	}
}

func (pc *ProjectConfig) normalize(base string) {
	pc.Flatten.GedcomFile = resolvePath(base, pc.Flatten.GedcomFile)
	pc.Flatten.OutputFile = resolvePath(base, pc.Flatten.OutputFile)
	pc.Flatten.BioDir = resolvePath(base, pc.Flatten.BioDir)
	pc.Flatten.Sheet = strings.TrimSpace(pc.Flatten.Sheet)
	overrides := make(map[string]string, len(pc.Flatten.NameOverrides))
	for id, given := range pc.Flatten.NameOverrides {
		overrides[strings.TrimSpace(id)] = strings.TrimSpace(given)
	}
	pc.Flatten.NameOverrides = overrides

	pc.Export.InputFile = resolvePath(base, pc.Export.InputFile)
	pc.Export.OutputFile = resolvePath(base, pc.Export.OutputFile)
	pc.Export.Sheet = strings.TrimSpace(pc.Export.Sheet)

	pc.Photos.InfoTable = resolvePath(base, pc.Photos.InfoTable)
	pc.Photos.BioDir = resolvePath(base, pc.Photos.BioDir)
	pc.Photos.OutputFile = resolvePath(base, pc.Photos.OutputFile)

	for i, step := range pc.Pipeline {
		pc.Pipeline[i] = strings.ToLower(strings.TrimSpace(step))
	}
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	required := []struct {
		field, value string
	}{
		{"flatten.gedcom_file", pc.Flatten.GedcomFile},
		{"flatten.output_file", pc.Flatten.OutputFile},
		{"flatten.bio_dir", pc.Flatten.BioDir},
		{"export.input_file", pc.Export.InputFile},
		{"export.output_file", pc.Export.OutputFile},
		{"photos.info_table", pc.Photos.InfoTable},
		{"photos.bio_dir", pc.Photos.BioDir},
		{"photos.output_file", pc.Photos.OutputFile},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s is required", r.field)
		}
	}
	for id := range pc.Flatten.NameOverrides {
		if id == "" {
			return fmt.Errorf("flatten.name_overrides: identifier is required")
		}
	}
	for i, step := range pc.Pipeline {
		if step == "" {
			return fmt.Errorf("pipeline[%d]: step id is required", i)
		}
	}
	return nil
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}
