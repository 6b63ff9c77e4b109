// Package file reads and writes the text blocks the CLI works on. The path
// "-" (or an empty path) stands for stdin or stdout.
package file

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

const Std = "-"

func isStd(path string) bool {
	return path == "" || path == Std
}

// Read returns the contents of path, or all of stdin.
func Read(path string, stdin io.Reader) (string, error) {
	if isStd(path) {
		dat, err := io.ReadAll(stdin)
		if err != nil {
			return "", errors.Wrap(err, "reading stdin")
		}
		return string(dat), nil
	}
	dat, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", path)
	}
	return string(dat), nil
}

// Write replaces path with text, or writes it to stdout.
func Write(path string, text string, stdout io.Writer) error {
	if isStd(path) {
		_, err := io.WriteString(stdout, text)
		return errors.Wrap(err, "writing stdout")
	}
	return errors.Wrapf(os.WriteFile(path, []byte(text), 0o644), "writing %s", path)
}
