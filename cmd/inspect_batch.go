package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KaramelBytes/tabcheck/internal/analysis"
	"github.com/KaramelBytes/tabcheck/internal/utils"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	ibFormat string
	ibOutDir string
	ibQuiet  bool
)

// batchResult holds one rendered report; results are kept in input order.
type batchResult struct {
	path string
	body []byte
}

var inspectBatchCmd = &cobra.Command{
	Use:   "inspect-batch <files...>",
	Short: "Inspect many CSV files concurrently with progress",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := resolveFormat(ibFormat)
		if err != nil {
			return err
		}
		files, err := expandInputs(args)
		if err != nil {
			return err
		}
		conf := current()

		bar := newBatchBar(cmd.ErrOrStderr(), len(files), ibQuiet)
		results := make([]batchResult, len(files))
		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(conf.BatchWorkers)
		for i, path := range files {
			i, path := i, path
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				text, err := utils.ReadInput(path, cmd.InOrStdin(), conf.MaxInputBytes)
				if err != nil {
					return err
				}
				rep, err := analysis.Inspect(utils.DisplayName(path), text)
				if err != nil {
					return err
				}
				body, err := rep.Render(format)
				if err != nil {
					return err
				}
				slog.Debug("inspected", "path", path, "report_id", rep.ID, "rows", rep.Rows)
				results[i] = batchResult{path: path, body: body}
				_ = bar.Add(1)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			if !ibQuiet {
				// end the partial progress line before the error is printed
				fmt.Fprintln(cmd.ErrOrStderr())
			}
			return err
		}
		_ = bar.Finish()

		out := cmd.OutOrStdout()
		if ibOutDir != "" {
			if err := utils.EnsureDir(ibOutDir); err != nil {
				return fmt.Errorf("create out dir: %w", err)
			}
			for _, r := range results {
				base := filepath.Base(r.path)
				base = strings.TrimSuffix(base, filepath.Ext(base))
				dest := utils.UniquePath(ibOutDir, base, ".report"+analysis.Extension(format))
				if err := utils.SafeWriteFile(dest, r.body); err != nil {
					return fmt.Errorf("write report for %s: %w", r.path, err)
				}
				if !ibQuiet {
					fmt.Fprintf(out, "✓ Wrote report for %s to %s\n", r.path, dest)
				}
			}
			return nil
		}
		for i, r := range results {
			if i > 0 {
				fmt.Fprintln(out)
			}
			if !ibQuiet {
				fmt.Fprintf(out, "[%d/%d] %s\n", i+1, len(results), r.path)
			}
			if _, err := out.Write(r.body); err != nil {
				return err
			}
		}
		return nil
	},
}

// expandInputs resolves globs, keeps literal paths that exist, and returns a
// sorted list without duplicates.
func expandInputs(args []string) ([]string, error) {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if fi, err := os.Stat(m); err == nil && fi.IsDir() {
				continue
			}
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no input files matched")
	}
	sort.Strings(files)
	return files, nil
}

func newBatchBar(w io.Writer, total int, quiet bool) *progressbar.ProgressBar {
	if quiet {
		return progressbar.DefaultSilent(int64(total))
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetDescription("[cyan][reset] Inspecting files..."),
		progressbar.OptionSetWidth(20),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
}

func init() {
	rootCmd.AddCommand(inspectBatchCmd)
	inspectBatchCmd.Flags().StringVarP(&ibFormat, "format", "f", "", "report format: text|markdown|json|html (default from config)")
	inspectBatchCmd.Flags().StringVar(&ibOutDir, "out-dir", "", "write one <name>.report.<ext> per input into this directory")
	inspectBatchCmd.Flags().BoolVar(&ibQuiet, "quiet", false, "suppress progress and non-essential output")
}
