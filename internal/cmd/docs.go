package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/wethinkt/go-swatchsheet/internal/version"
)

var (
	docsOutputDir        string
	docsEnableAutoGenTag bool
	docsHugo             bool
)

var docsCmd = &cobra.Command{
	Use:    "docs",
	Short:  "Generate documentation for swatchsheet",
	Hidden: true,
	Long: `Generate documentation for all swatchsheet commands.

Subcommands:
  markdown  Generate plain markdown (default)
  man       Generate man pages

The auto-generation tag (timestamp footer) is disabled by default for stable,
reproducible files. Use --enableAutoGenTag for publishing.

Examples:
  swatchsheet docs                       # Generate markdown docs in ./docs/
  swatchsheet docs markdown --hugo       # Hugo-compatible markdown
  swatchsheet docs man -o ./man/man1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to markdown subcommand
		return runDocsMarkdown(cmd, args)
	},
}

var docsMarkdownCmd = &cobra.Command{
	Use:   "markdown",
	Short: "Generate markdown documentation",
	Long: `Generate markdown documentation for all swatchsheet commands.

Use --hugo to add YAML front matter for the Hugo static site generator.`,
	RunE: runDocsMarkdown,
}

var docsManCmd = &cobra.Command{
	Use:   "man",
	Short: "Generate man pages",
	Long: `Generate man pages for all swatchsheet commands in roff format,
suitable for installation in /usr/local/share/man/man1.`,
	RunE: runDocsMan,
}

func runDocsMarkdown(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(docsOutputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	root := cmd.Root()
	root.DisableAutoGenTag = !docsEnableAutoGenTag

	if docsHugo {
		prepender := func(filename string) string {
			name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
			return fmt.Sprintf("---\ntitle: %q\n---\n\n", strings.ReplaceAll(name, "_", " "))
		}
		linkHandler := func(name string) string { return name }

		if err := doc.GenMarkdownTreeCustom(root, docsOutputDir, prepender, linkHandler); err != nil {
			return fmt.Errorf("generate markdown: %w", err)
		}
	} else if err := doc.GenMarkdownTree(root, docsOutputDir); err != nil {
		return fmt.Errorf("generate markdown: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated %d markdown files in %s\n", countFiles(docsOutputDir, ".md"), docsOutputDir)
	return nil
}

func runDocsMan(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(docsOutputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	root := cmd.Root()
	root.DisableAutoGenTag = !docsEnableAutoGenTag

	header := &doc.GenManHeader{
		Title:   "SWATCHSHEET",
		Section: "1",
		Source:  version.String("swatchsheet"),
		Manual:  "swatchsheet manual",
	}
	if err := doc.GenManTree(root, header, docsOutputDir); err != nil {
		return fmt.Errorf("generate man pages: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated %d man pages in %s\n", countFiles(docsOutputDir, ".1"), docsOutputDir)
	return nil
}

func countFiles(dir, ext string) int {
	matches, _ := filepath.Glob(filepath.Join(dir, "*"+ext))
	return len(matches)
}
