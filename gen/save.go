package gen

import (
	"fmt"
	"os"
	"path/filepath"
)

// save writes data to destDir/destName through a temporary file in the
// same folder, so an existing icon is only replaced by a complete one.
func save(data []byte, destDir, destName string) (err error) {
	outFile, err := os.CreateTemp(destDir, "."+destName+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary destination %q: %w", destName, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", destName, defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), filepath.Join(destDir, destName)); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", destName, defErr)
			}
		}
		if err != nil {
			_ = os.Remove(outFile.Name())
		}
	}()

	if err = outFile.Chmod(0o644); err != nil {
		return fmt.Errorf("could not set mode of temporary destination %q: %w", destName, err)
	}

	if _, err = outFile.Write(data); err != nil {
		return fmt.Errorf("could not write temporary destination %q: %w", destName, err)
	}

	if err = outFile.Sync(); err != nil {
		return fmt.Errorf("could not flush temporary destination %q: %w", destName, err)
	}

	canRename = true
	return nil
}
