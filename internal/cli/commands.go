package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/falkman/photopages/internal/config"
	"github.com/falkman/photopages/internal/pipeline"
	"github.com/falkman/photopages/internal/tui"
)

func flattenCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flatten",
		Short: "Flatten a GEDCOM file into a person spreadsheet and biography files",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = e.action(func(cmd *cobra.Command, _ []string) error {
		if err := e.load(cmd); err != nil {
			return err
		}
		fc := &e.cfg.Project.Flatten
		e.override(cmd, "gedcom", &fc.GedcomFile)
		e.override(cmd, "output", &fc.OutputFile)
		e.override(cmd, "bio-dir", &fc.BioDir)
		e.override(cmd, "sheet", &fc.Sheet)
		return e.runSteps(cmd, []string{config.StepFlatten})
	})
	cmd.Flags().String("gedcom", "", "GEDCOM file to read")
	cmd.Flags().String("output", "", "spreadsheet to write")
	cmd.Flags().String("bio-dir", "", "directory for biography text files")
	cmd.Flags().String("sheet", "", "sheet name in the output workbook")
	return cmd
}

func exportCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Convert the info spreadsheet into a JSON array",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = e.action(func(cmd *cobra.Command, _ []string) error {
		if err := e.load(cmd); err != nil {
			return err
		}
		ec := &e.cfg.Project.Export
		e.override(cmd, "input", &ec.InputFile)
		e.override(cmd, "output", &ec.OutputFile)
		e.override(cmd, "sheet", &ec.Sheet)
		return e.runSteps(cmd, []string{config.StepExport})
	})
	cmd.Flags().String("input", "", "spreadsheet to read")
	cmd.Flags().String("output", "", "JSON file to write")
	cmd.Flags().String("sheet", "", "sheet to read (defaults to the first)")
	return cmd
}

func photosCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "photos",
		Short: "Build the photo-gallery data file from the info table and bios",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = e.action(func(cmd *cobra.Command, _ []string) error {
		if err := e.load(cmd); err != nil {
			return err
		}
		pc := &e.cfg.Project.Photos
		e.override(cmd, "info-table", &pc.InfoTable)
		e.override(cmd, "bio-dir", &pc.BioDir)
		e.override(cmd, "output", &pc.OutputFile)
		return e.runSteps(cmd, []string{config.StepPhotos})
	})
	cmd.Flags().String("info-table", "", "info table JSON to read")
	cmd.Flags().String("bio-dir", "", "directory holding bio text files")
	cmd.Flags().String("output", "", "gallery data file to write")
	return cmd
}

func runCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [step...]",
		Short: "Run the configured pipeline, or the named steps in order",
		Long:  "Run executes " + strings.Join(config.KnownSteps, ", ") + " as listed in the config pipeline. Naming steps overrides the configured list.",
	}
	cmd.RunE = e.action(func(cmd *cobra.Command, args []string) error {
		if err := e.load(cmd); err != nil {
			return err
		}
		ids := e.cfg.Steps()
		if len(args) > 0 {
			ids = make([]string, len(args))
			for i, arg := range args {
				ids[i] = strings.ToLower(strings.TrimSpace(arg))
			}
		}
		return e.runSteps(cmd, ids)
	})
	return cmd
}

func previewCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Browse the flattened people in the terminal without writing anything",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = e.action(func(cmd *cobra.Command, _ []string) error {
		if err := e.load(cmd); err != nil {
			return err
		}
		fc := &e.cfg.Project.Flatten
		e.override(cmd, "gedcom", &fc.GedcomFile)
		people, err := pipeline.People(pipeline.NewContext(cmd.Context(), e.cfg), nil)
		if err != nil {
			return err
		}
		return tui.Run(tui.NewPreview(relative(e.cfg.ProjectDir, fc.GedcomFile), people))
	})
	cmd.Flags().String("gedcom", "", "GEDCOM file to read")
	return cmd
}

func initCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default " + config.FileName + " into the project directory",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = e.action(func(cmd *cobra.Command, _ []string) error {
		dir, err := e.projectDir()
		if err != nil {
			return err
		}
		path, created, err := config.InitProjectConfig(dir)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !created {
			fmt.Fprintf(out, "%s %s\n", dimStyle.Render("exists"), pathStyle.Render(path))
			return nil
		}
		fmt.Fprintf(out, "%s %s\n", okStyle.Render("created"), pathStyle.Render(path))
		return nil
	})
	return cmd
}

// relative shortens p against base for display.
func relative(base, p string) string {
	rel, err := filepath.Rel(base, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return rel
}
