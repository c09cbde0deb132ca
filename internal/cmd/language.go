package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/wethinkt/go-swatchsheet/internal/config"
	"github.com/wethinkt/go-swatchsheet/internal/i18n"
)

var languageCmd = &cobra.Command{
	Use:   "language [lang]",
	Short: "Get or set the display language",
	Long: `Get or set the language of alerts and status messages. Use a BCP 47
tag (e.g., en, de). The SWATCHSHEET_LANG environment variable takes precedence.

Examples:
  swatchsheet language       # show current language
  swatchsheet language de    # set to German`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(args) == 0 {
			lang := i18n.ResolveLocale(cfg.Language)
			fmt.Fprintln(out, i18n.Tf("language.current", "Current language: %s", lang))
			fmt.Fprintln(out, i18n.Tf("language.available", "Available: %s", strings.Join(i18n.Locales(), ", ")))
			return nil
		}

		tag, err := language.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid language tag %q: %w", args[0], err)
		}
		lang := tag.String()
		if !i18n.Supported(lang) {
			fmt.Fprintln(out, i18n.Tf("language.fallback", "No translations for %s; English is used.", lang))
		}

		cfg.Language = lang
		if err := config.Save(cfg); err != nil {
			return err
		}
		if err := i18n.Init(lang); err != nil {
			return err
		}
		fmt.Fprintln(out, i18n.Tf("language.set", "Language set to: %s", lang))
		return nil
	},
}
