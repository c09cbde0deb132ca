// Command gen-libraries downloads iTerm2 color schemes and converts them to
// built-in swatchsheet libraries.
//
// Usage:
//
//	go run ./cmd/gen-libraries
package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/wethinkt/go-swatchsheet/internal/library"
)

// scheme defines an iTerm2 color scheme to import.
type scheme struct {
	itermName   string // filename in the iTerm2-Color-Schemes repo (without .itermcolors)
	libraryName string // kebab-case name of the swatch library
}

var curated = []scheme{
	{"Solarized Dark Patched", "solarized"},
	{"Nord", "nord"},
	{"Dracula", "dracula"},
}

const baseURL = "https://raw.githubusercontent.com/mbadolato/iTerm2-Color-Schemes/master/schemes/"

func main() {
	outDir := filepath.Join("internal", "library", "libraries")
	failed := 0

	for _, s := range curated {
		fmt.Printf("%-20s ", s.libraryName)
		if err := generate(s, outDir); err != nil {
			fmt.Printf("ERROR: %v\n", err)
			failed++
			continue
		}
		fmt.Printf("OK\n")
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func generate(s scheme, outDir string) error {
	url := baseURL + strings.ReplaceAll(s.itermName, " ", "%20") + ".itermcolors"

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	lib, err := library.ImportIterm(resp.Body, s.libraryName)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	lib.Description = fmt.Sprintf("%s terminal palette", s.itermName)

	data, err := library.Encode(lib)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return os.WriteFile(filepath.Join(outDir, s.libraryName+".toml"), data, 0644)
}
