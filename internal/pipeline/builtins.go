package pipeline

import (
	"fmt"

	"github.com/falkman/photopages/internal/artifact"
	"github.com/falkman/photopages/internal/config"
	"github.com/falkman/photopages/internal/export"
	"github.com/falkman/photopages/internal/flatten"
	"github.com/falkman/photopages/internal/gedcom"
	"github.com/falkman/photopages/internal/photos"
	"github.com/falkman/photopages/internal/sheet"
)

// RegisterBuiltins installs the flatten, export and photos steps in the
// order their outputs feed each other.
func RegisterBuiltins(reg *Registry) {
	reg.MustRegister(flattenStep{})
	reg.MustRegister(exportStep{})
	reg.MustRegister(photosStep{})
}

// DefaultRegistry returns a registry holding the builtin steps.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	RegisterBuiltins(reg)
	return reg
}

// People parses the configured GEDCOM file and flattens it. When sink is nil
// no biography files are written.
func People(ctx *Context, sink flatten.BiographySink) ([]flatten.Person, error) {
	cfg := ctx.Config.Project.Flatten
	doc, err := gedcom.ParseFile(cfg.GedcomFile)
	if err != nil {
		return nil, err
	}
	f := flatten.New(
		flatten.WithClock(ctx.clock()),
		flatten.WithLogger(ctx.Logger),
		flatten.WithNameOverrides(cfg.NameOverrides),
	)
	return f.Flatten(doc, sink)
}

type flattenStep struct{}

func (flattenStep) Info() Info {
	return Info{
		ID:          config.StepFlatten,
		Name:        "Flatten GEDCOM",
		Description: "Writes one spreadsheet row and one biography file per individual.",
	}
}

func (flattenStep) Run(ctx *Context) (Result, error) {
	cfg := ctx.Config.Project.Flatten
	people, err := People(ctx, artifact.NewOsStore(cfg.BioDir))
	if err != nil {
		return Result{}, err
	}
	rows := make([][]any, len(people))
	for i, p := range people {
		rows[i] = p.Cells()
	}
	if err := sheet.WriteTable(cfg.OutputFile, cfg.Sheet, flatten.Columns, rows); err != nil {
		return Result{}, fmt.Errorf("flatten: %w", err)
	}
	return Result{
		Status:  StatusCompleted,
		Count:   len(people),
		Output:  cfg.OutputFile,
		Message: fmt.Sprintf("%d people", len(people)),
	}, nil
}

type exportStep struct{}

func (exportStep) Info() Info {
	return Info{
		ID:          config.StepExport,
		Name:        "Export info table",
		Description: "Converts the info spreadsheet into a JSON array of row objects.",
	}
}

func (exportStep) Run(ctx *Context) (Result, error) {
	cfg := ctx.Config.Project.Export
	exp := &export.Exporter{
		Sheet:   cfg.Sheet,
		Renames: cfg.Rename,
		Store:   artifact.NewOsStore(ctx.Config.ProjectDir),
		Logger:  ctx.Logger,
	}
	rows, err := exp.Export(cfg.InputFile, cfg.OutputFile)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Status:  StatusCompleted,
		Count:   rows,
		Output:  cfg.OutputFile,
		Message: fmt.Sprintf("%d rows", rows),
	}, nil
}

type photosStep struct{}

func (photosStep) Info() Info {
	return Info{
		ID:          config.StepPhotos,
		Name:        "Build photo pages data",
		Description: "Filters the info table and attaches biography text for the gallery.",
	}
}

func (photosStep) Run(ctx *Context) (Result, error) {
	cfg := ctx.Config.Project.Photos
	builder := &photos.Builder{
		Store:  artifact.NewOsStore(ctx.Config.ProjectDir),
		BioDir: cfg.BioDir,
		Logger: ctx.Logger,
	}
	entries, err := builder.Build(cfg.InfoTable, cfg.OutputFile)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Status:  StatusCompleted,
		Count:   entries,
		Output:  cfg.OutputFile,
		Message: fmt.Sprintf("%d entries", entries),
	}, nil
}
