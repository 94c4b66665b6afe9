package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/jgrab/internal/source"
)

var (
	inspectSnippet string
	inspectJSON    bool
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect [java_file]",
	Short: "Show the class name and dependencies of Java source",
	Long: `Inspect reads Java source and prints its metadata.

The source comes from, in order of precedence:
  - the -e flag (a literal snippet)
  - the java_file argument
  - standard input (read until end of stream)

A dependency directive that cannot be parsed aborts with the offending line.

Examples:
  # Inspect code piped through stdin
  cat Foo.java | jgrab inspect

  # Inspect a file and print JSON
  jgrab inspect --json src/main/java/com/acme/Foo.java

  # Inspect a snippet
  jgrab inspect -e 'System.out.println("hi");'
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVarP(&inspectSnippet, "eval", "e", "", "Java snippet to inspect instead of a file or stdin")
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Print metadata as JSON")
}

// inspectInput says where inspect reads its source from.
type inspectInput struct {
	snippet    string
	hasSnippet bool
	file       string
	stdin      io.Reader
}

func runInspect(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	in := inspectInput{
		snippet:    inspectSnippet,
		hasSnippet: cmd.Flags().Changed("eval"),
		stdin:      cmd.InOrStdin(),
	}
	if len(args) == 1 {
		in.file = args[0]
	}

	return executeInspect(rt, in, inspectJSON, cmd.OutOrStdout())
}

func executeInspect(rt *runtime, in inspectInput, asJSON bool, stdout io.Writer) error {
	src, err := openSource(rt, in)
	if err != nil {
		return err
	}

	summary, err := source.Summarize(src)
	if err != nil {
		return fmt.Errorf("%s: %w", src.Origin(), err)
	}
	rt.logger.Debug("inspected source", "origin", summary.Origin, "dependencies", len(summary.Dependencies))

	return writeSummary(stdout, summary, asJSON)
}

func openSource(rt *runtime, in inspectInput) (source.Source, error) {
	switch {
	case in.hasSnippet && in.file != "":
		return nil, errors.New("cannot inspect both a snippet (-e) and a file")
	case in.hasSnippet:
		return source.NewSnippet(in.snippet, rt.options...), nil
	case in.file != "":
		src, err := source.NewFile(in.file, rt.options...)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		src, err := source.NewStdin(in.stdin, rt.options...)
		if err != nil {
			return nil, err
		}
		return src, nil
	}
}

func writeSummary(w io.Writer, summary *source.Summary, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}
	_, err := io.WriteString(w, summary.String())
	return err
}
