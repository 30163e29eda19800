package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/KaramelBytes/tabcheck/internal/analysis"
	"github.com/KaramelBytes/tabcheck/internal/utils"
	"github.com/spf13/cobra"
)

var (
	insFormat     string
	insOutputPath string
	insSample     bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file|->",
	Short: "Inspect one CSV file (or stdin) and print a report",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := resolveFormat(insFormat)
		if err != nil {
			return err
		}

		var name, text string
		switch {
		case insSample:
			if len(args) > 0 {
				return fmt.Errorf("--sample takes no file argument")
			}
			name, text = analysis.SampleName, analysis.SampleCSV
		case len(args) == 1:
			text, err = utils.ReadInput(args[0], cmd.InOrStdin(), current().MaxInputBytes)
			if err != nil {
				return err
			}
			name = utils.DisplayName(args[0])
		default:
			return fmt.Errorf("requires a file argument, '-' for stdin, or --sample")
		}

		start := time.Now()
		rep, err := analysis.Inspect(name, text)
		if err != nil {
			return err
		}
		slog.Debug("inspected", "name", name, "report_id", rep.ID, "rows", rep.Rows,
			"columns", len(rep.Columns), "elapsed", time.Since(start))

		out, err := rep.Render(format)
		if err != nil {
			return err
		}
		if insOutputPath != "" {
			if err := utils.SafeWriteFile(insOutputPath, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote report to %s\n", insOutputPath)
			return nil
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVarP(&insFormat, "format", "f", "", "report format: text|markdown|json|html (default from config)")
	inspectCmd.Flags().StringVarP(&insOutputPath, "output", "o", "", "optional path to write the report")
	inspectCmd.Flags().BoolVar(&insSample, "sample", false, "inspect the built-in sample table")
}
