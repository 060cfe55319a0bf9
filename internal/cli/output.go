package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var pathSeparators = strings.NewReplacer("/", "_", `\`, "_")

// writeOutput writes data to name inside dir and returns the final path.
// Path separators in name are replaced, and the file only appears once it has
// been written completely.
func writeOutput(dir, name string, data []byte) (path string, err error) {
	name = pathSeparators.Replace(name)
	path = filepath.Join(dir, name)

	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
