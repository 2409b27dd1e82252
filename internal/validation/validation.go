// Package validation checks file arguments before commands touch them.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
)

// InputFile checks that path exists and is a regular file.
func InputFile(path string) error {
	if path == "" {
		return fmt.Errorf("input file is required")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("input path is a directory: %s", path)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("input path %s is not a regular file", path)
	}
	return nil
}

// DistinctPaths rejects an output path that resolves to the input file.
func DistinctPaths(input, output string) error {
	if input == "" || output == "" {
		return nil
	}
	absIn, err := filepath.Abs(input)
	if err != nil {
		return fmt.Errorf("error resolving path %s: %w", input, err)
	}
	absOut, err := filepath.Abs(output)
	if err != nil {
		return fmt.Errorf("error resolving path %s: %w", output, err)
	}
	if absIn == absOut {
		return fmt.Errorf("output file would overwrite input file: %s", output)
	}
	return nil
}

// FilePermissions rejects files that others may write to. Rule files hold
// regular expressions that are compiled on every start.
func FilePermissions(mode os.FileMode) error {
	if mode&0002 != 0 {
		return fmt.Errorf("file permissions are too permissive: %s. Recommended 0600 or 0644", mode.String())
	}
	return nil
}
