// swatchsheet adds color swatch reference sheets to SVG artwork.
package main

import (
	"fmt"
	"os"

	"github.com/wethinkt/go-swatchsheet/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cmd.ErrorMessage(err))
		os.Exit(1)
	}
}
