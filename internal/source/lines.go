package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// IngestionError reports that source text could not be read completely.
type IngestionError struct {
	Origin string
	Err    error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("failed to read source from %s: %v", e.Origin, e.Err)
}

func (e *IngestionError) Unwrap() error {
	return e.Err
}

// ReadLines reads r to EOF and splits it into lines. Terminators (\n or \r\n)
// are stripped; all other content is kept verbatim. A terminator at the very
// end does not produce an extra empty line. On error no lines are returned.
func ReadLines(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	lines := []string{}

	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			lines = append(lines, trimTerminator(line))
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func trimTerminator(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
