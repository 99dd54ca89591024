// Package fileops provides read-only file helpers used by the search tool.
//
// # Size limits
//
// ValidateFileSizeLimit rejects directories and files over a byte ceiling
// before anything is loaded:
//
//	if err := fileops.ValidateFileSizeLimit(filePath, 10*1024*1024); err != nil {
//	    return fmt.Errorf("file size: %w", err)
//	}
//
// ReadFileLimit combines that check with a capped read. A limit of zero
// disables the ceiling and loads the whole file:
//
//	content, err := fileops.ReadFileLimit(filePath, 0)
//
// Errors wrap the underlying *fs.PathError where there is one, and the
// sentinels ErrFileTooLarge and ErrIsDirectory otherwise, so callers can
// classify them with errors.Is and errors.As.
//
// Nothing in this package writes to, creates, or locks the files it reads.
package fileops
