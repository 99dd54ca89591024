package fileops

import (
	"fmt"
	"io"
	"os"
)

// ReadFileLimit reads the whole file at filePath read-only.
//
// With maxSize <= 0 it behaves like os.ReadFile. Otherwise the size is checked
// with ValidateFileSizeLimit first and the read itself is capped, so a file
// that grows after the check still fails with ErrFileTooLarge instead of
// being loaded.
func ReadFileLimit(filePath string, maxSize int64) ([]byte, error) {
	if maxSize <= 0 {
		return os.ReadFile(filePath)
	}

	if err := ValidateFileSizeLimit(filePath, maxSize); err != nil {
		return nil, err
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%w: read more than %d bytes", ErrFileTooLarge, maxSize)
	}

	return data, nil
}
