package search

import (
	"context"
	"strings"

	"filemcp/pkg/fileops"
)

// Executor runs searches against the local filesystem.
// It holds no per-request state and is safe for concurrent use.
type Executor struct {
	maxFileSize int64 // 0 means unlimited
}

// NewExecutor creates an Executor. maxFileSize bounds how many bytes a single
// search may load; 0 keeps the whole-file behaviour with no ceiling.
func NewExecutor(maxFileSize int64) *Executor {
	if maxFileSize < 0 {
		maxFileSize = 0
	}
	return &Executor{maxFileSize: maxFileSize}
}

// MaxFileSize returns the configured ceiling in bytes
func (e *Executor) MaxFileSize() int64 {
	return e.maxFileSize
}

// Search reads filePath and returns every line containing keyword.
// The file is opened read-only and never modified.
func (e *Executor) Search(ctx context.Context, filePath, keyword string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, classify(filePath, err)
	}

	content, err := fileops.ReadFileLimit(filePath, e.maxFileSize)
	if err != nil {
		return nil, classify(filePath, err)
	}

	// The read is not interruptible; drop the result if the caller gave up meanwhile.
	if err := ctx.Err(); err != nil {
		return nil, classify(filePath, err)
	}

	return MatchLines(string(content), keyword), nil
}

// Run validates req and searches it
func (e *Executor) Run(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return e.Search(ctx, req.FilePath, req.Keyword)
}

// MatchLines scans content in memory. Lines are split on "\n" only.
func MatchLines(content, keyword string) *Result {
	matches := []LineMatch{}
	for i, line := range strings.Split(content, "\n") {
		if strings.Contains(line, keyword) {
			matches = append(matches, LineMatch{Line: i + 1, Content: line})
		}
	}
	return NewResult(matches)
}
