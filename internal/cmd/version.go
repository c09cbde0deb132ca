package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wethinkt/go-swatchsheet/internal/version"
)

var (
	versionJSON bool
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.GetInfo("swatchsheet")
		if versionJSON {
			_ = json.NewEncoder(cmd.OutOrStdout()).Encode(info) // Ignore encoding error
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), version.String("swatchsheet"))
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "output as JSON")
}
