package precedence

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Iron-Ham/stepwise/internal/errors"
)

// StdinPath is the path that ReadFile treats as standard input.
const StdinPath = "-"

// ReadRequirements parses one requirement per line from r. Blank lines are
// skipped. Parsing stops at the first malformed line, which is reported as a
// *errors.ParseError carrying its 1-based line number.
func ReadRequirements(r io.Reader) (*Set, error) {
	set := NewSet()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		req, err := ParseRequirement(line)
		if err != nil {
			var perr *errors.ParseError
			if errors.As(err, &perr) {
				return nil, perr.WithLine(lineNo)
			}
			return nil, err
		}
		set.Add(req)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read requirements: %w", err)
	}
	return set, nil
}

// ReadFile reads requirements from the file at path, or from stdin when
// path is "-".
func ReadFile(path string) (*Set, error) {
	if path == StdinPath {
		return ReadRequirements(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer func() { _ = f.Close() }()

	set, err := ReadRequirements(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return set, nil
}
