package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wethinkt/go-swatchsheet/internal/config"
	"github.com/wethinkt/go-swatchsheet/internal/i18n"
	"github.com/wethinkt/go-swatchsheet/internal/library"
	"github.com/wethinkt/go-swatchsheet/internal/preview"
)

// Library command flags
var (
	importName      string
	searchMinScore  float64
	searchLibraries []string
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage swatch libraries",
	Long: `Swatch libraries name the colors on a sheet. Built-in libraries ship with
swatchsheet; user libraries live in ~/.swatchsheet/libraries as TOML or YAML
files and shadow built-in ones of the same name.

The libraries consulted during generation are set by "libraries" in
~/.swatchsheet/config.json or per run with --library.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return libraryListCmd.RunE(cmd, args)
	},
}

var libraryListCmd = &cobra.Command{
	Use:          "list",
	Short:        "List available swatch libraries",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		metas, err := library.ListAvailable()
		if err != nil {
			return err
		}
		display := preview.New(cmd.OutOrStdout())
		if outputJSON {
			return display.ShowJSON(metas)
		}
		return display.ListLibraries(metas)
	},
}

var libraryShowCmd = &cobra.Command{
	Use:          "show <name>",
	Short:        "Show the swatches of a library",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := library.LoadByName(args[0])
		if err != nil {
			return err
		}
		display := preview.New(cmd.OutOrStdout())
		if outputJSON {
			return display.ShowJSON(lib)
		}
		return display.ShowLibrary(lib)
	},
}

var libraryImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a swatch library",
	Long: `Import a swatch library into ~/.swatchsheet/libraries.

Accepted files:
  .itermcolors     iTerm2 color scheme, imported as RGB swatches
  .toml .yaml .yml swatchsheet library file, validated and stored as TOML

Examples:
  swatchsheet library import Solarized.itermcolors
  swatchsheet library import brand.yaml --name brand`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		name := importName
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}

		lib, err := importLibrary(path, name)
		if err != nil {
			return err
		}
		saved, err := library.Save(lib)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), i18n.Tf("library.imported", "Imported %s (%s) to %s", lib.Name,
			i18n.Tn("preview.swatchCount", "{{.Count}} swatch", "{{.Count}} swatches", len(lib.Names())), saved))
		return nil
	},
}

// importLibrary reads a library from path by its extension.
func importLibrary(path, name string) (library.Library, error) {
	var lib library.Library
	switch strings.ToLower(filepath.Ext(path)) {
	case ".itermcolors":
		f, err := os.Open(path)
		if err != nil {
			return lib, err
		}
		defer f.Close()
		lib, err = library.ImportIterm(f, name)
		if err != nil {
			return lib, fmt.Errorf("import %s: %w", path, err)
		}
	default:
		var err error
		lib, err = library.LoadFile(path)
		if err != nil {
			return lib, err
		}
		lib.Name = name
	}
	if len(lib.Swatches) == 0 {
		return lib, fmt.Errorf("import %s: no swatches found", path)
	}
	return lib, nil
}

var librarySearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find swatches by name",
	Long: `Fuzzy-search swatch names. Names containing the query always match;
others are ranked by Jaro-Winkler similarity and kept above --min.

By default the libraries enabled in the config are searched.

Examples:
  swatchsheet library search 186
  swatchsheet library search "reflex blue" --min 0.6
  swatchsheet library search red --library basic`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		names := searchLibraries
		if len(names) == 0 {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			names = cfg.Libraries
		}
		set, err := library.LoadSet(names)
		if err != nil {
			return err
		}

		matches := library.Search(set, strings.Join(args, " "), searchMinScore)
		out := cmd.OutOrStdout()
		if outputJSON {
			if matches == nil {
				matches = []library.Match{}
			}
			return preview.New(out).ShowJSON(matches)
		}
		if len(matches) == 0 {
			fmt.Fprintln(out, i18n.T("library.noMatches", "No matching swatches."))
			return nil
		}
		for _, m := range matches {
			fmt.Fprintf(out, "%-24s %-30s %s  %.2f\n", m.Library, m.Name, m.Hex, m.Score)
		}
		return nil
	},
}

func init() {
	libraryCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output as JSON")
	libraryImportCmd.Flags().StringVarP(&importName, "name", "n", "", "library name (default: file name)")
	librarySearchCmd.Flags().Float64Var(&searchMinScore, "min", library.DefaultMinScore, "minimum similarity score (0-1)")
	librarySearchCmd.Flags().StringArrayVarP(&searchLibraries, "library", "l", nil, "library to search (repeatable, default: from config)")

	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryShowCmd)
	libraryCmd.AddCommand(libraryImportCmd)
	libraryCmd.AddCommand(librarySearchCmd)
}
