// Package cmd provides the CLI commands for swatchsheet.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"runtime/pprof"
	"slices"

	"github.com/spf13/cobra"

	"github.com/wethinkt/go-swatchsheet/internal/config"
	"github.com/wethinkt/go-swatchsheet/internal/i18n"
	"github.com/wethinkt/go-swatchsheet/internal/runlog"
	"github.com/wethinkt/go-swatchsheet/internal/sheet"
)

// global flags
var (
	profileFile *os.File // held open for profiling
	logPath     string
	verbose     bool
	outputJSON  bool
)

// rootCmd is the root command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "swatchsheet",
	Short: "Generate color swatch reference sheets for SVG artwork",
	Long: `swatchsheet finds every distinct fill color in a selection of an SVG
document and adds a layer with one labeled square swatch per color.

Labels come from spot color names, from swatches defined in the document and
from the enabled swatch libraries, and fall back to "Custom Color".

Commands:
  generate  Add a swatch sheet layer to SVG files
  colors    Preview the swatches a sheet would contain
  library   List, show, import and search swatch libraries
  serve     Start the HTTP API

Examples:
  swatchsheet generate logo.svg                 # Writes logo-swatches.svg
  swatchsheet generate logo.svg --select mark   # Only the element with id "mark"
  swatchsheet colors logo.svg                   # Preview in the terminal`,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Start pprof profiling if SWATCHSHEET_PROFILE is set
		if profilePath := os.Getenv("SWATCHSHEET_PROFILE"); profilePath != "" {
			f, err := os.Create(profilePath)
			if err != nil {
				return fmt.Errorf("create profile file: %w", err)
			}
			profileFile = f

			if err := pprof.StartCPUProfile(f); err != nil {
				f.Close()
				profileFile = nil
				return fmt.Errorf("start CPU profile: %w", err)
			}
		}

		if err := runlog.Init(logPath); err != nil {
			return fmt.Errorf("open log: %w", err)
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := i18n.Init(i18n.ResolveLocale(cfg.Language)); err != nil {
			runlog.Log.Warn("Translations unavailable", "error", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		// Stop CPU profiling
		if profileFile != nil {
			pprof.StopCPUProfile()
			profileFile.Close()
			profileFile = nil
		}
		return runlog.Log.Close()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ErrorMessage returns the text to show for an error returned by Execute.
// Generation aborts are shown as their localized alert.
func ErrorMessage(err error) string {
	msg, ok := sheet.Alert(err)
	if !ok {
		return "Error: " + err.Error()
	}
	var fe *fileError
	if errors.As(err, &fe) {
		return fe.path + ": " + msg
	}
	return msg
}

// fileError attaches the input path to a per-file failure.
type fileError struct {
	path string
	err  error
}

func (e *fileError) Error() string { return e.path + ": " + e.err.Error() }
func (e *fileError) Unwrap() error { return e.err }

func init() {
	// Global flags on root
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "write debug log to file")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(colorsCmd)
	rootCmd.AddCommand(libraryCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(languageCmd)
	rootCmd.AddCommand(versionCmd)

	// Docs command (hidden unless --verbose)
	docsCmd.PersistentFlags().StringVarP(&docsOutputDir, "output", "o", "./docs", "output directory for generated docs")
	docsCmd.PersistentFlags().BoolVar(&docsEnableAutoGenTag, "enableAutoGenTag", false, "include auto-generation tag (timestamp footer) for publishing")
	docsMarkdownCmd.Flags().BoolVar(&docsHugo, "hugo", false, "generate Hugo-compatible markdown with YAML front matter")
	docsCmd.AddCommand(docsMarkdownCmd)
	docsCmd.AddCommand(docsManCmd)
	rootCmd.AddCommand(docsCmd)
	if slices.Contains(os.Args, "-v") || slices.Contains(os.Args, "--verbose") {
		// Show hidden commands in help when --verbose is used
		docsCmd.Hidden = false
	}
}
