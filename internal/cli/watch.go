package cli

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maypok86/otter"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/jgrab/internal/source"
	"github.com/mvp-joe/jgrab/internal/watcher"
)

const watchCacheCapacity = 256

var watchJSON bool

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch <java_file>",
	Short: "Re-inspect a Java file every time it changes",
	Long: `Watch prints the metadata of a Java file, then prints it again each time the
file is saved with different content. Saves that leave the content unchanged
are not reported. Press Ctrl+C to stop.

Examples:
  jgrab watch src/main/java/com/acme/Foo.java
`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(&watchJSON, "json", false, "Print metadata as JSON")
}

func runWatch(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	return executeWatch(ctx, rt, args[0], watchJSON, cmd.OutOrStdout())
}

// fileReporter renders a file's metadata once per distinct content.
// Rendered output is cached by content hash, so reverting to an earlier
// version does not re-run extraction.
type fileReporter struct {
	rt       *runtime
	path     string
	asJSON   bool
	cache    otter.Cache[string, string]
	lastHash string
}

func newFileReporter(rt *runtime, path string, asJSON bool) (*fileReporter, error) {
	cache, err := otter.MustBuilder[string, string](watchCacheCapacity).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create watch cache: %w", err)
	}
	return &fileReporter{rt: rt, path: path, asJSON: asJSON, cache: cache}, nil
}

// report writes header and the file's metadata to w unless the content is
// unchanged since the last report. It returns whether anything was written.
func (r *fileReporter) report(w io.Writer, header string) (bool, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return false, &source.IngestionError{Origin: r.path, Err: err}
	}

	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])
	if hash == r.lastHash {
		r.rt.logger.Debug("content unchanged", "path", r.path)
		return false, nil
	}

	rendered, ok := r.cache.Get(hash)
	if !ok {
		rendered, err = r.render(data)
		if err != nil {
			return false, err
		}
		r.cache.Set(hash, rendered)
	} else {
		r.rt.logger.Debug("reusing cached metadata", "path", r.path)
	}

	r.lastHash = hash
	if _, err := io.WriteString(w, header+rendered); err != nil {
		return false, err
	}
	return true, nil
}

func (r *fileReporter) render(data []byte) (string, error) {
	summary, err := source.Summarize(source.NewFileContent(r.path, data, r.rt.options...))
	if err != nil {
		return "", fmt.Errorf("%s: %w", r.path, err)
	}

	var buf bytes.Buffer
	if err := writeSummary(&buf, summary, r.asJSON); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *fileReporter) Close() {
	r.cache.Close()
}

func executeWatch(ctx context.Context, rt *runtime, path string, asJSON bool, stdout io.Writer) error {
	reporter, err := newFileReporter(rt, path, asJSON)
	if err != nil {
		return err
	}
	defer reporter.Close()

	if _, err := reporter.report(stdout, ""); err != nil {
		var ingestErr *source.IngestionError
		if errors.As(err, &ingestErr) {
			return err
		}
		// Keep watching so the directive can be fixed in place.
		rt.logger.Error("inspection failed", "path", path, "error", err)
	}

	debounce := time.Duration(rt.cfg.Watch.DebounceMS) * time.Millisecond
	fw, err := watcher.NewFileWatcher([]string{path}, debounce, rt.logger)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	defer fw.Stop()

	if err := fw.Start(ctx, func(files []string) {
		header := fmt.Sprintf("--- %s changed at %s\n", path, time.Now().Format(time.TimeOnly))
		if _, err := reporter.report(stdout, header); err != nil {
			rt.logger.Error("inspection failed", "path", path, "error", err)
		}
	}); err != nil {
		return err
	}

	rt.logger.Info("watching for changes", "path", path)
	<-ctx.Done()
	return nil
}
