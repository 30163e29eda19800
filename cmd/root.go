package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	cfgpkg "github.com/KaramelBytes/tabcheck/internal/config"
	"github.com/KaramelBytes/tabcheck/internal/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "tabcheck",
	Short: "tabcheck: inspect delimited text tables for structural and data-quality problems",
	Long: `tabcheck reads comma-separated text, checks that every row matches the header,
locates null cells, infers a type per column and summarizes each column's values.
Reports are available as text, Markdown, JSON or HTML, from the command line or over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.tabcheck/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Defaults()
	}
	cfg = c

	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	logging.Setup(level, cfg.LogFormat, os.Stderr)
	slog.Debug("config loaded", "file", cfgFile, "format", cfg.OutputFormat, "workers", cfg.BatchWorkers)
}

// current returns the loaded configuration, or defaults when none was loaded.
func current() *cfgpkg.Global {
	if cfg == nil {
		return cfgpkg.Defaults()
	}
	return cfg
}

// resolveFormat picks the --format flag over output_format and rejects unknown names.
func resolveFormat(flag string) (string, error) {
	f := cfgpkg.NormalizeFormat(flag)
	if f == "" {
		f = current().OutputFormat
	}
	if !cfgpkg.ValidFormat(f) {
		return "", fmt.Errorf("unsupported --format: %s (use %s)", flag, strings.Join(cfgpkg.Formats, "|"))
	}
	return f, nil
}
