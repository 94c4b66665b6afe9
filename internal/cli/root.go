package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/jgrab/internal/config"
	"github.com/mvp-joe/jgrab/internal/logging"
	"github.com/mvp-joe/jgrab/internal/source"
)

var (
	configDir string
	verbose   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jgrab",
	Short: "JGrab - extract metadata from Java source",
	Long: `JGrab reads Java source from stdin, a file, or a literal snippet and reports
what the execution pipeline needs to know about it: whether it is a snippet or
a full compilation unit, the fully-qualified name of its public type, and the
dependencies declared in directive comments such as:

  // DEP com.acme:widget:1.2.0
  // #jgrab org.slf4j:slf4j-api:2.0.9 org.slf4j:slf4j-simple:2.0.9`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "directory containing .jgrab/config.yml (default is the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// runtime bundles what every command needs: configuration, a logger, and the
// source options derived from them.
type runtime struct {
	cfg     *config.Config
	logger  hclog.Logger
	options []source.Option
}

// loadRuntime loads configuration from --config (or the working directory).
func loadRuntime(stderr io.Writer) (*runtime, error) {
	dir := configDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}

	cfg, err := config.LoadConfigFromDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return newRuntime(cfg, verbose, stderr)
}

func newRuntime(cfg *config.Config, verbose bool, stderr io.Writer) (*runtime, error) {
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logger := logging.New(level, stderr)

	extractor, err := cfg.NewExtractor()
	if err != nil {
		return nil, err
	}
	parser, err := cfg.NewDirectiveParser()
	if err != nil {
		return nil, err
	}

	return &runtime{
		cfg:    cfg,
		logger: logger,
		options: []source.Option{
			source.WithLogger(logger),
			source.WithExtractor(extractor),
			source.WithDirectiveParser(parser),
		},
	}, nil
}
