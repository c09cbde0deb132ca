package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wethinkt/go-swatchsheet/internal/config"
	"github.com/wethinkt/go-swatchsheet/internal/library"
	"github.com/wethinkt/go-swatchsheet/internal/runlog"
	"github.com/wethinkt/go-swatchsheet/internal/server"
	"github.com/wethinkt/go-swatchsheet/internal/sheet"
)

// Serve command flags
var (
	servePort int
	serveHost string
	apiToken  string // Bearer token for API server authentication
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start a local HTTP server that generates swatch sheets.

Endpoints:
  POST /api/v1/sheets              SVG body, returns the SVG with a sheet layer
  POST /api/v1/colors              SVG body, returns the planned swatches as JSON
  GET  /api/v1/libraries           available swatch libraries
  GET  /api/v1/libraries/{name}    swatches of one library
  GET  /api/v1/libraries/search?q= fuzzy swatch name search
  GET  /metrics                    Prometheus metrics

The sheet endpoints accept select, width, layer and library query params.

Authentication:
  Use --token or the SWATCHSHEET_API_TOKEN environment variable to require
  "Authorization: Bearer <token>" on /api routes.
  Generate a secure token with: swatchsheet serve token

The server logs to ~/.swatchsheet/logs/server.log unless --log is given.

Examples:
  swatchsheet serve                 # Listen on localhost:7480
  swatchsheet serve -p 8080         # Custom port
  swatchsheet serve --token xyz     # Require a bearer token`,
	SilenceUsage: true,
	RunE:         runServeHTTP,
}

var serveTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Generate a secure authentication token",
	Long: `Generate a cryptographically secure random token for API authentication.

Examples:
  swatchsheet serve token                  # Generate and print a token
  swatchsheet serve token | pbcopy         # Copy to clipboard (macOS)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := server.GenerateSecureToken()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "server port (default: from config)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "server host (default: from config)")
	serveCmd.Flags().StringVar(&apiToken, "token", "", "bearer token for API authentication (default: use SWATCHSHEET_API_TOKEN env var)")
	serveCmd.AddCommand(serveTokenCmd)
}

// defaultServerLogPath is where serve logs when --log is not given.
func defaultServerLogPath() (string, error) {
	confDir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(confDir, "logs", "server.log"), nil
}

func runServeHTTP(cmd *cobra.Command, args []string) error {
	// Log to the default server log unless --log was given
	if logPath == "" {
		path, err := defaultServerLogPath()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := runlog.Init(path); err != nil {
			return err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	srvConfig := server.DefaultConfig()
	srvConfig.Host = cfg.Server.Host
	srvConfig.Port = cfg.Server.Port
	if serveHost != "" {
		srvConfig.Host = serveHost
	}
	if cmd.Flags().Changed("port") {
		srvConfig.Port = servePort
	}
	srvConfig.Token = apiToken

	libs, err := library.LoadSet(cfg.Libraries)
	if err != nil {
		return err
	}
	opts := sheet.OptionsFromConfig(cfg)
	opts.Lookup = libs.Lookup

	runlog.Log.Info("Starting HTTP server", "port", srvConfig.Port, "host", srvConfig.Host, "libraries", len(libs))

	// Create context that cancels on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	srv := server.NewHTTPServer(srvConfig, opts, libs)
	out := cmd.OutOrStdout()
	return srv.ListenAndServe(ctx, func(addr string) {
		fmt.Fprintf(out, "swatchsheet API listening on http://%s\n", addr)
	})
}
