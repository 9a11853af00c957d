package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/tilegrid/pkg/errors"
)

func openInput(path string) (*os.File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// writeOutput writes data to path, or to stdout when path is empty or "-".
func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" || path == stdinName {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
