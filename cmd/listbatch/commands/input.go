package commands

import (
	"io"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// gatherInput collects raw batch text from file arguments, an optional glob
// pattern, or stdin when neither is given. Multiple files are concatenated;
// the parser treats all sources identically.
func gatherInput(args []string, glob string, stdin io.Reader) (string, error) {
	paths := append([]string{}, args...)

	if glob != "" {
		matches, err := doublestar.FilepathGlob(glob)
		if err != nil {
			return "", errors.Errorf("resolving input glob %q: %w", glob, err)
		}
		if len(matches) == 0 {
			return "", errors.Errorf("input glob %q matched no files", glob)
		}
		paths = append(paths, matches...)
	}

	if len(paths) == 0 {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return "", errors.Errorf("reading stdin: %w", err)
		}
		return string(raw), nil
	}

	var parts []string
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", errors.Errorf("reading input file %s: %w", path, err)
		}
		parts = append(parts, string(data))
	}

	return strings.Join(parts, "\n"), nil
}
