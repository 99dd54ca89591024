// Package search implements the literal line search behind the
// search_in_file tool.
//
// A search reads the whole target file as text, splits it on "\n" and keeps
// every line that contains the keyword as a contiguous, case-sensitive
// substring. Line numbers are 1-based and follow file order.
//
// # Edge cases
//
//   - An empty keyword matches every line.
//   - "\r" is not stripped, so CRLF files keep a trailing "\r" in Content.
//   - A trailing "\n" produces a final empty line.
//   - An empty file has exactly one line, "".
//
// # Errors
//
// Failures are returned as *Error values classified by Kind:
//   - KindInvalidArgument: the request failed validation
//   - KindFileAccess: the file could not be opened or read
//   - KindUnknown: anything else
//
// A search returns either a complete *Result or an error, never both.
package search
