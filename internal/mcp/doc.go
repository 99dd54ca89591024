// Package mcp provides the Model Context Protocol (MCP) server for filemcp using mcp-go.
//
// The server exposes a single tool, search_in_file, which scans a text file
// for a literal keyword and returns the matching lines with their 1-based
// line numbers.
//
// # Implementation
//
// The package uses the mcp-go library (github.com/mark3labs/mcp-go) for the
// JSON-RPC 2.0 framing, the initialize handshake and tool schemas. The search
// itself lives in the internal/search package.
//
// # Tool: search_in_file
//
//	Request:
//	{
//	  "name": "search_in_file",
//	  "arguments": {"filePath": "/tmp/fruit.txt", "keyword": "apple"}
//	}
//
//	Result text content (also sent as structuredContent):
//	{"matches":[{"line":1,"content":"apple"},{"line":3,"content":"apple pie"}],"totalMatches":2}
//
// The tool declares an output schema for that object, reflected from
// search.Result.
//
// Failures come back as error results (isError: true) whose text is one of:
//   - invalid argument: <detail>
//   - Error searching file: <cause>
//   - An unknown error occurred while searching the file
//
// Zero matches is a successful result with an empty matches array.
//
// # Lifecycle
//
// Server follows an explicit Init, Run, Shutdown sequence. Start runs all
// three against os.Stdin and os.Stdout:
//
//	filemcp serve
//
// The server reads JSON-RPC requests from stdin and writes responses to
// stdout until it receives EOF or is terminated. Logs never go to stdout.
//
// # References
//
// - MCP Specification: https://modelcontextprotocol.io/specification
// - mcp-go Library: https://github.com/mark3labs/mcp-go
package mcp
