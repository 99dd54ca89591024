package fileops

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrFileTooLarge is returned when a file exceeds the configured size limit
	ErrFileTooLarge = errors.New("file exceeds size limit")

	// ErrIsDirectory is returned when a path names a directory instead of a file
	ErrIsDirectory = errors.New("path is a directory, not a file")
)

// ValidateFileSizeLimit checks that filePath is a regular, readable-looking
// file no larger than maxSize bytes.
//
// Parameters:
//   - filePath: The file to check
//   - maxSize: The maximum size in bytes; must be positive
//
// Returns:
//   - error: nil if the file fits, otherwise an error wrapping the stat
//     failure, ErrIsDirectory or ErrFileTooLarge
//
// Usage example:
//
//	// Limit files to 10MB
//	if err := fileops.ValidateFileSizeLimit("/path/to/file.txt", 10*1024*1024); err != nil {
//	    return fmt.Errorf("file too large: %w", err)
//	}
func ValidateFileSizeLimit(filePath string, maxSize int64) error {
	if maxSize <= 0 {
		return fmt.Errorf("invalid size limit: %d", maxSize)
	}

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %w", err)
		}
		return fmt.Errorf("cannot access file: %w", err)
	}

	if fileInfo.IsDir() {
		return fmt.Errorf("%w: %s", ErrIsDirectory, filePath)
	}

	if fileInfo.Size() > maxSize {
		return fmt.Errorf("%w: file size %d bytes exceeds limit %d bytes", ErrFileTooLarge, fileInfo.Size(), maxSize)
	}

	return nil
}
