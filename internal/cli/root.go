// Package cli wires the photopages commands onto cobra.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/falkman/photopages/internal/config"
	"github.com/falkman/photopages/internal/logging"
	"github.com/falkman/photopages/internal/pipeline"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	pathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	project  string
	config   string
	logLevel string
	logJSON  bool
	logFile  string
}

// env is the per-invocation state built from globalFlags.
type env struct {
	flags  *globalFlags
	cfg    *config.Config
	logger logging.Logger
	sink   *logging.FileSink
	stderr io.Writer
}

// RootCmd returns the photopages command tree.
func RootCmd() *cobra.Command {
	flags := &globalFlags{}
	e := &env{flags: flags, stderr: os.Stderr}

	root := &cobra.Command{
		Use:           "photopages",
		Short:         "Prepare genealogy photo-gallery data from GEDCOM and spreadsheets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetErr(e.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&flags.project, "project", "", "project directory (defaults to the working directory)")
	pf.StringVar(&flags.config, "config", "", "config file (defaults to <project>/"+config.FileName+")")
	pf.StringVar(&flags.logLevel, "log-level", string(logging.InfoLevel), "log level: debug, info, warn or error")
	pf.BoolVar(&flags.logJSON, "log-json", false, "emit logs as JSON")
	pf.StringVar(&flags.logFile, "log-file", "", "also append logs to this file")

	root.AddCommand(
		flattenCmd(e),
		exportCmd(e),
		photosCmd(e),
		runCmd(e),
		previewCmd(e),
		initCmd(e),
	)
	return root
}

// projectDir returns the --project directory or the working directory.
func (e *env) projectDir() (string, error) {
	if strings.TrimSpace(e.flags.project) != "" {
		return e.flags.project, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("determine working directory: %w", err)
	}
	return wd, nil
}

// setupLogger builds the logger, teeing into --log-file when set, and
// attaches it to the command context.
func (e *env) setupLogger(cmd *cobra.Command) error {
	if e.logger != nil {
		return nil
	}
	var out io.Writer = e.stderr
	if e.flags.logFile != "" {
		sink, err := logging.OpenFileSink(e.flags.logFile)
		if err != nil {
			return err
		}
		e.sink = sink
		out = sink.Tee(out)
	}
	lc := logging.DefaultConfig()
	lc.Level = logging.ParseLevel(e.flags.logLevel)
	lc.JSON = e.flags.logJSON
	lc.Output = out
	e.logger = logging.NewLogger(lc)

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	cmd.SetContext(logging.ContextWithLogger(parent, e.logger))
	return nil
}

// load sets up logging and reads the project config.
func (e *env) load(cmd *cobra.Command) error {
	if err := e.setupLogger(cmd); err != nil {
		return err
	}
	dir, err := e.projectDir()
	if err != nil {
		return err
	}
	cfg, err := config.NewConfig(dir, e.flags.config)
	if err != nil {
		return err
	}
	e.cfg = cfg
	if cfg.Loaded {
		e.logger.Debug("loaded config", "path", cfg.Path)
	} else {
		e.logger.Debug("no config file, using defaults", "path", cfg.Path)
	}
	return nil
}

// override replaces *dst with the resolved flag value when the flag was set.
func (e *env) override(cmd *cobra.Command, name string, dst *string) {
	if !cmd.Flags().Changed(name) {
		return
	}
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return
	}
	if name == "sheet" {
		*dst = strings.TrimSpace(value)
		return
	}
	*dst = e.cfg.Resolve(value)
}

// runSteps executes ids and prints one summary line per finished step.
func (e *env) runSteps(cmd *cobra.Command, ids []string) error {
	ctx := pipeline.NewContext(cmd.Context(), e.cfg)
	results, err := pipeline.Run(ctx, pipeline.DefaultRegistry(), ids)
	for _, res := range results {
		if res.Status != pipeline.StatusCompleted {
			continue
		}
		printSummary(cmd.OutOrStdout(), e.cfg.ProjectDir, res)
	}
	return err
}

// action wraps a command body so the log file is closed on every exit path.
func (e *env) action(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if cerr := e.close(); err == nil {
			err = cerr
		}
		return err
	}
}

func (e *env) close() error {
	if e.sink == nil {
		return nil
	}
	err := e.sink.Close()
	e.sink = nil
	return err
}

func printSummary(w io.Writer, base string, res pipeline.Result) {
	verb := map[string]string{
		config.StepFlatten: "flattened",
		config.StepExport:  "exported",
		config.StepPhotos:  "built",
	}[res.Step]
	fmt.Fprintf(w, "%s %s %s %s\n",
		okStyle.Render(verb),
		res.Message,
		dimStyle.Render("→"),
		pathStyle.Render(relative(base, res.Output)),
	)
}
