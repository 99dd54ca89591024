package mcp

import (
	"context"
	"fmt"
	"time"

	"filemcp/internal/logging"
	"filemcp/internal/search"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Tool identity advertised to clients
const (
	SearchInFileToolName        = "search_in_file"
	SearchInFileToolDescription = "Search for a specified keyword within a file and return matching lines with line numbers"

	ArgFilePath = "filePath"
	ArgKeyword  = "keyword"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SearchInFileTool returns the search_in_file tool definition. The output
// schema is reflected from search.Result.
func SearchInFileTool() mcp.Tool {
	return mcp.NewTool(SearchInFileToolName,
		mcp.WithDescription(SearchInFileToolDescription),
		mcp.WithString(ArgFilePath,
			mcp.Required(),
			mcp.Description("The path to the file to search in"),
		),
		mcp.WithString(ArgKeyword,
			mcp.Required(),
			mcp.Description("The keyword to search for"),
		),
		mcp.WithOutputSchema[search.Result](),
	)
}

// ToolRegistry owns the tool definitions and turns tool calls into searches
type ToolRegistry struct {
	logger   *logging.AppLogger
	executor *search.Executor
	timeout  time.Duration // 0 means no per-call deadline
	tools    []mcp.Tool
}

// NewToolRegistry creates a registry holding the search_in_file tool
func NewToolRegistry(logger *logging.AppLogger, executor *search.Executor, timeout time.Duration) *ToolRegistry {
	return &ToolRegistry{
		logger:   logger,
		executor: executor,
		timeout:  timeout,
		tools:    []mcp.Tool{SearchInFileTool()},
	}
}

// ListOperations returns the advertised tools. Callers get their own slice.
func (r *ToolRegistry) ListOperations() []mcp.Tool {
	tools := make([]mcp.Tool, len(r.tools))
	copy(tools, r.tools)
	return tools
}

// Register binds every tool to the mcp-go server
func (r *ToolRegistry) Register(s *server.MCPServer) {
	for _, tool := range r.tools {
		s.AddTool(tool, r.HandleCallTool)
		r.logger.Debug("Registered tool", "name", tool.Name)
	}
}

// HandleCallTool is the server.ToolHandlerFunc for search_in_file.
// Malformed arguments are rejected here and never reach the executor.
func (r *ToolRegistry) HandleCallTool(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req, err := ParseSearchRequest(request.Params.Arguments)
	if err != nil {
		r.logger.Debug("Rejected tool call", "tool", request.Params.Name, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return r.Invoke(ctx, req)
}

// Invoke runs one search and wraps the outcome in a tool result envelope.
// Search failures become error results; the returned error is reserved for
// failures to build the envelope itself.
func (r *ToolRegistry) Invoke(ctx context.Context, req search.Request) (*mcp.CallToolResult, error) {
	requestID := uuid.NewString()
	logger := r.logger.With("request_id", requestID)
	logger.LogToolCall(SearchInFileToolName, requestID)
	start := time.Now()
	defer logger.LogPerformance(SearchInFileToolName, start)

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	result, err := r.executor.Run(ctx, req)
	if err != nil {
		logger.Warn("Search failed",
			"path", req.FilePath,
			"kind", search.KindOf(err),
			"error", err,
		)
		return mcp.NewToolResultError(err.Error()), nil
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode search result: %w", err)
	}

	logger.Debug("Search completed",
		"path", req.FilePath,
		"keywordLength", len(req.Keyword),
		"totalMatches", result.TotalMatches,
	)

	// Clients without structured output support read the same JSON as text
	return mcp.NewToolResultStructured(result, string(payload)), nil
}

// ParseSearchRequest decodes raw tool arguments into a search.Request.
// Both fields are required and must be strings; the keyword may be empty.
func ParseSearchRequest(arguments any) (search.Request, error) {
	var args map[string]any
	switch a := arguments.(type) {
	case nil:
		args = map[string]any{}
	case map[string]any:
		args = a
	default:
		return search.Request{}, search.InvalidArgument("arguments must be an object, got %T", arguments)
	}

	filePath, err := requiredString(args, ArgFilePath)
	if err != nil {
		return search.Request{}, err
	}
	keyword, err := requiredString(args, ArgKeyword)
	if err != nil {
		return search.Request{}, err
	}

	req := search.Request{FilePath: filePath, Keyword: keyword}
	if err := req.Validate(); err != nil {
		return search.Request{}, err
	}
	return req, nil
}

func requiredString(args map[string]any, name string) (string, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return "", search.InvalidArgument("missing required field %q", name)
	}
	s, ok := raw.(string)
	if !ok {
		return "", search.InvalidArgument("field %q must be a string, got %T", name, raw)
	}
	return s, nil
}
