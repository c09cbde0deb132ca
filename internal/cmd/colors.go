package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/wethinkt/go-swatchsheet/internal/config"
	"github.com/wethinkt/go-swatchsheet/internal/preview"
	"github.com/wethinkt/go-swatchsheet/internal/sheet"
	"github.com/wethinkt/go-swatchsheet/internal/svgdoc"
)

// Colors command flags
var (
	colorsSelect    []string
	colorsLibraries []string
	colorsWidth     int
)

var colorsCmd = &cobra.Command{
	Use:   "colors <file.svg>",
	Short: "Preview the swatches a sheet would contain",
	Long: `List the distinct fill colors of the selection with their labels, in
sheet order, without modifying the file.

Examples:
  swatchsheet colors logo.svg
  swatchsheet colors logo.svg --select mark
  swatchsheet colors logo.svg --json | jq '.[].text'`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		opts, err := sheetOptions(cfg, colorsLibraries, 0, "")
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		doc, err := svgdoc.Parse(f, svgdoc.Options{Select: colorsSelect})
		if err != nil {
			return &fileError{path: args[0], err: err}
		}
		entries, err := sheet.Prepare(doc, opts)
		if err != nil {
			return &fileError{path: args[0], err: err}
		}

		display := preview.New(cmd.OutOrStdout())
		if colorsWidth > 0 {
			display = display.WithWidth(colorsWidth)
		}
		if outputJSON {
			return display.ShowJSON(entries)
		}
		return display.Show(args[0], entries)
	},
}

func init() {
	colorsCmd.Flags().StringSliceVarP(&colorsSelect, "select", "s", nil, "ids of elements to select (default: all top-level objects)")
	colorsCmd.Flags().StringArrayVarP(&colorsLibraries, "library", "l", nil, "swatch library used to name colors (repeatable, default: from config)")
	colorsCmd.Flags().IntVar(&colorsWidth, "term-width", 0, "terminal width used for the preview (default: detected)")
	colorsCmd.Flags().BoolVar(&outputJSON, "json", false, "output as JSON")
}
