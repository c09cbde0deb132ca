package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
)

var logsCmd = &cobra.Command{
	Use:   "logs [file]",
	Short: "View the server log",
	Long: `Print the last lines of a swatchsheet log. Without an argument the
default server log (~/.swatchsheet/logs/server.log) is shown.

Examples:
  swatchsheet logs                 # last 50 lines of the server log
  swatchsheet logs -n 200 -f       # follow the server log
  swatchsheet logs run.log         # a log written with --log run.log`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("lines")
		follow, _ := cmd.Flags().GetBool("follow")

		logFile := ""
		if len(args) == 1 {
			logFile = args[0]
		} else {
			path, err := defaultServerLogPath()
			if err != nil {
				return err
			}
			logFile = path
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return tailLogFile(ctx, cmd.OutOrStdout(), logFile, n, follow)
	},
}

func init() {
	logsCmd.Flags().IntP("lines", "n", 50, "number of lines to show")
	logsCmd.Flags().BoolP("follow", "f", false, "follow the log for new lines")
}

// tailLogFile prints the last n lines from path to w, optionally following
// for new content until ctx is done.
func tailLogFile(ctx context.Context, w io.Writer, path string, n int, follow bool) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("log file not found: %s", path)
		}
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	lines, err := readLastLines(f, n)
	if err != nil {
		return err
	}

	for _, line := range lines {
		fmt.Fprint(w, line)
	}

	if !follow {
		return nil
	}

	// Follow mode: poll for new content
	buf := make([]byte, 4096)
	for {
		nr, err := f.Read(buf)
		if nr > 0 {
			w.Write(buf[:nr])
		}
		if err != nil && err != io.EOF {
			return err
		}
		if nr == 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(200 * time.Millisecond):
			}
		}
	}
}

// readLastLines reads the last n lines from a file, returning them as strings
// (each including its trailing newline if present). The file is left
// positioned at its end.
func readLastLines(f *os.File, n int) ([]string, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	// Split into lines, preserving newlines
	var lines []string
	start := 0
	for i, b := range data {
		if b == '\n' {
			lines = append(lines, string(data[start:i+1]))
			start = i + 1
		}
	}
	// Handle last line without trailing newline
	if start < len(data) {
		lines = append(lines, string(data[start:])+"\n")
	}

	if n >= 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}
