// Package persistence reads and writes the on-disk artifacts: the serialized
// index and the dataset. Writes go to a temporary file that is renamed into
// place, so readers never observe a partial artifact.
package persistence

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gcbaptista/mfg-search/internal/logger"
)

const dirPerm = 0o750

// WriteFileAtomic calls write with a temporary file in the destination
// directory and renames it over filePath once write and close succeed.
// On any error the destination is left untouched.
func WriteFileAtomic(filePath string, write func(w io.Writer) error) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			if removeErr := os.Remove(tmpPath); removeErr != nil && !os.IsNotExist(removeErr) {
				logger.WithComponent("persistence").Warn("failed to remove temporary file",
					slog.String("path", tmpPath), slog.Any("error", removeErr))
			}
		}
	}()

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", filePath, err)
	}
	committed = true
	return nil
}

// ReadFile opens filePath and passes it to read.
// If the file does not exist, it returns an error wrapping os.ErrNotExist.
func ReadFile(filePath string, read func(r io.Reader) error) error {
	file, err := os.Open(filePath) // #nosec G304 -- filePath comes from configuration
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logger.WithComponent("persistence").Warn("failed to close file",
				slog.String("path", filePath), slog.Any("error", closeErr))
		}
	}()

	if err := read(file); err != nil {
		return fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	return nil
}
