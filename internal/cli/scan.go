package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mvp-joe/jgrab/internal/discovery"
	"github.com/mvp-joe/jgrab/internal/source"
)

var (
	scanQuiet bool
	scanJSON  bool
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Inspect every Java file under a directory",
	Long: `Scan discovers Java files using the scan.include and scan.ignore glob
patterns from .jgrab/config.yml and inspects each one.

Files with malformed dependency directives are reported, and the command
fails once every file has been processed.

Examples:
  # Scan the current directory
  jgrab scan

  # Scan a source tree and print JSON
  jgrab scan --json src/main/java
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVarP(&scanQuiet, "quiet", "q", false, "Disable progress output")
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "Print results as JSON")
}

// scanResult is the outcome of inspecting one discovered file.
type scanResult struct {
	Path    string          `json:"path"`
	Summary *source.Summary `json:"summary,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func runScan(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	return executeScan(rt, root, scanQuiet, scanJSON, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func executeScan(rt *runtime, root string, quiet, asJSON bool, stdout, stderr io.Writer) error {
	fd, err := discovery.NewFileDiscovery(root, rt.cfg.Scan.Include, rt.cfg.Scan.Ignore)
	if err != nil {
		return fmt.Errorf("invalid scan patterns: %w", err)
	}
	if rt.cfg.Scan.Gitignore {
		if err := fd.UseGitignore(); err != nil {
			return fmt.Errorf("failed to read .gitignore: %w", err)
		}
	}

	files, err := fd.DiscoverFiles()
	if err != nil {
		return fmt.Errorf("failed to discover files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no Java files found under %s", root)
	}

	progress := newScanProgress(quiet, stderr)
	progress.OnDiscoveryComplete(len(files))

	// Results keep discovery order regardless of which worker finishes first.
	results := make([]scanResult, len(files))
	var mu sync.Mutex
	failed := 0

	var g errgroup.Group
	g.SetLimit(rt.cfg.Scan.Workers)
	for i, path := range files {
		g.Go(func() error {
			result := inspectFile(rt, path)
			if rel, err := filepath.Rel(root, path); err == nil {
				result.Path = filepath.ToSlash(rel)
			}
			results[i] = result

			mu.Lock()
			defer mu.Unlock()
			if result.Error != "" {
				failed++
				rt.logger.Error("inspection failed", "path", path, "error", result.Error)
			}
			progress.OnFileProcessed()
			return nil
		})
	}
	_ = g.Wait()
	progress.OnComplete(len(files), failed)

	if err := writeScanResults(stdout, results, asJSON); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be inspected", failed, len(files))
	}
	return nil
}

func inspectFile(rt *runtime, path string) scanResult {
	result := scanResult{Path: path}

	src, err := source.NewFile(path, rt.options...)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	summary, err := source.Summarize(src)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Summary = summary
	return result
}

func writeScanResults(w io.Writer, results []scanResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tCLASS\tDEPS")
	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(tw, "%s\tERROR\t%s\n", r.Path, r.Error)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\n", r.Path, r.Summary.ClassName, len(r.Summary.Dependencies))
	}
	return tw.Flush()
}
