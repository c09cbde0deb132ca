package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/wethinkt/go-swatchsheet/internal/config"
	"github.com/wethinkt/go-swatchsheet/internal/i18n"
	"github.com/wethinkt/go-swatchsheet/internal/library"
	"github.com/wethinkt/go-swatchsheet/internal/preview"
	"github.com/wethinkt/go-swatchsheet/internal/runlog"
	"github.com/wethinkt/go-swatchsheet/internal/sheet"
	"github.com/wethinkt/go-swatchsheet/internal/svgdoc"
	"github.com/wethinkt/go-swatchsheet/internal/watch"
)

// Generate command flags
var (
	genOutput    string
	genSelect    []string
	genWidth     float64
	genLibraries []string
	genLayer     string
	genWatch     bool
	genDryRun    bool
	genJobs      int
)

var generateCmd = &cobra.Command{
	Use:   "generate <file.svg>...",
	Short: "Add a swatch sheet layer to SVG files",
	Long: `Add a layer with one labeled swatch per distinct fill color to each SVG file.

By default every top-level object is selected. Use --select to limit the
selection to elements with the given ids.

Each input file.svg is written to file-swatches.svg next to it. With a single
input, -o chooses the output path ("-" for stdout). Several inputs are
processed in parallel.

Examples:
  swatchsheet generate logo.svg
  swatchsheet generate logo.svg -o - > sheet.svg
  swatchsheet generate logo.svg --select mark,type --width 600
  swatchsheet generate *.svg --library pantone-solid-coated
  swatchsheet generate logo.svg --watch`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "output file for a single input (- for stdout)")
	generateCmd.Flags().StringSliceVarP(&genSelect, "select", "s", nil, "ids of elements to select (default: all top-level objects)")
	generateCmd.Flags().Float64Var(&genWidth, "width", 0, "available width for the sheet (default: document width)")
	generateCmd.Flags().StringArrayVarP(&genLibraries, "library", "l", nil, "swatch library used to name colors (repeatable, default: from config)")
	generateCmd.Flags().StringVar(&genLayer, "layer", "", "name of the new layer (default: from config)")
	generateCmd.Flags().BoolVarP(&genWatch, "watch", "w", false, "regenerate whenever an input changes")
	generateCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "preview the sheet without writing files")
	generateCmd.Flags().IntVarP(&genJobs, "jobs", "j", runtime.NumCPU(), "number of files processed in parallel")
	generateCmd.Flags().BoolVar(&outputJSON, "json", false, "print results as JSON")
}

// sheetOptions builds generation options from the config and the command's
// flags. libs overrides cfg.Libraries when non-empty.
func sheetOptions(cfg config.Config, libs []string, width float64, layer string) (sheet.Options, error) {
	opts := sheet.OptionsFromConfig(cfg)
	if len(libs) == 0 {
		libs = cfg.Libraries
	}
	set, err := library.LoadSet(libs)
	if err != nil {
		return sheet.Options{}, err
	}
	opts.Lookup = set.Lookup
	if width > 0 {
		opts.Width = width
	}
	if layer != "" {
		opts.LayerName = layer
	}
	return opts, nil
}

// outputPath returns where the sheet for input is written.
func outputPath(input, output string) string {
	if output != "" {
		return output
	}
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "-swatches" + ext
}

// fileResult is the outcome of one input file.
type fileResult struct {
	Input   string        `json:"input"`
	Output  string        `json:"output,omitempty"`
	Layer   string        `json:"layer,omitempty"`
	Count   int           `json:"count"`
	Entries []sheet.Entry `json:"swatches"`
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if genOutput != "" && len(args) > 1 {
		return errors.New("--output can only be used with a single input file")
	}
	if genOutput == "-" && genWatch {
		return errors.New("--watch cannot write to stdout")
	}
	if genOutput == "-" && outputJSON {
		return errors.New("--json cannot be combined with writing the document to stdout")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	opts, err := sheetOptions(cfg, genLibraries, genWidth, genLayer)
	if err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	results, err := generateAll(ctx, args, opts, stdout)
	if err != nil {
		return err
	}
	if err := reportResults(stdout, results); err != nil {
		return err
	}

	if !genWatch {
		return nil
	}
	return watchInputs(ctx, cfg, args, opts, stdout)
}

// generateAll processes inputs with at most genJobs in flight. Results keep
// the order of inputs. After the first failure, files not yet started are
// skipped.
func generateAll(ctx context.Context, inputs []string, opts sheet.Options, stdout io.Writer) ([]fileResult, error) {
	results := make([]fileResult, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	jobs := genJobs
	if jobs < 1 {
		jobs = 1
	}
	g.SetLimit(jobs)

	for i, input := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := generateFile(input, opts, stdout)
			if err != nil {
				return &fileError{path: input, err: err}
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// generateFile adds a sheet to one input and writes the result.
func generateFile(input string, opts sheet.Options, stdout io.Writer) (fileResult, error) {
	f, err := os.Open(input)
	if err != nil {
		return fileResult{}, err
	}
	defer f.Close()

	doc, err := svgdoc.Parse(f, svgdoc.Options{Select: genSelect})
	if err != nil {
		return fileResult{}, err
	}

	if genDryRun {
		entries, err := sheet.Prepare(doc, opts)
		if err != nil {
			return fileResult{}, err
		}
		return fileResult{Input: input, Count: len(entries), Entries: entries}, nil
	}

	result, err := sheet.Generate(doc, opts)
	if err != nil {
		return fileResult{}, err
	}

	out := outputPath(input, genOutput)
	if err := writeDocument(doc, out, stdout); err != nil {
		return fileResult{}, err
	}
	runlog.Log.Info("Wrote sheet", "input", input, "output", out, "swatches", len(result.Entries))

	return fileResult{
		Input:   input,
		Output:  out,
		Layer:   result.Layer,
		Count:   len(result.Entries),
		Entries: result.Entries,
	}, nil
}

// writeDocument writes doc to path, or to stdout for "-". Files are written
// to a temporary sibling first and renamed into place.
func writeDocument(doc *svgdoc.Document, path string, stdout io.Writer) error {
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}

	if path == "-" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// reportResults prints a status line or preview per result. Nothing is
// printed when the document itself went to stdout.
func reportResults(stdout io.Writer, results []fileResult) error {
	display := preview.New(stdout)
	if outputJSON {
		return display.ShowJSON(results)
	}
	for _, r := range results {
		if r.Output == "-" {
			continue
		}
		if genDryRun {
			if err := display.Show(r.Input, r.Entries); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintln(stdout, i18n.Tf("generate.wrote", "Wrote %s (%s)", r.Output,
			i18n.Tn("preview.swatchCount", "{{.Count}} swatch", "{{.Count}} swatches", r.Count)))
	}
	return nil
}

// watchInputs regenerates each input when it changes, until interrupted.
func watchInputs(ctx context.Context, cfg config.Config, inputs []string, opts sheet.Options, stdout io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	w, err := watch.NewFileWatcher(inputs, cfg.Watch.DebounceDuration())
	if err != nil {
		return err
	}
	defer w.Stop()

	events, err := w.Start(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, i18n.T("generate.watching", "Watching for changes. Press Ctrl+C to stop."))

	for ev := range events {
		input := ev.Path
		runlog.Log.Info("Input changed", "path", input, "event", ev.EventType)

		res, err := generateFile(input, opts, stdout)
		if err != nil {
			// Keep watching after a failed regeneration.
			fmt.Fprintln(stdout, ErrorMessage(&fileError{path: input, err: err}))
			continue
		}
		if err := reportResults(stdout, []fileResult{res}); err != nil {
			return err
		}
	}
	return nil
}
