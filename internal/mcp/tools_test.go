package mcp

import (
	"context"
	stdjson "encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"filemcp/internal/logging"
	"filemcp/internal/search"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestRegistry(t *testing.T, maxFileSize int64) *ToolRegistry {
	t.Helper()

	logger, _ := logging.NewTestLogger()
	return NewToolRegistry(logger, search.NewExecutor(maxFileSize), 0)
}

func writeFruitFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fruit.txt")
	if err := os.WriteFile(path, []byte("apple\nbanana\napple pie"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	return path
}

func callRequest(args any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = SearchInFileToolName
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()

	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	switch c := res.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	default:
		t.Fatalf("unexpected content type %T", res.Content[0])
		return ""
	}
}

func TestSearchInFileTool(t *testing.T) {
	tool := SearchInFileTool()

	assert.Equal(t, "search_in_file", tool.Name)
	assert.Equal(t, SearchInFileToolDescription, tool.Description)
	assert.Equal(t, "object", tool.InputSchema.Type)
	assert.ElementsMatch(t, []string{"filePath", "keyword"}, tool.InputSchema.Required)

	for name, want := range map[string]string{
		"filePath": "The path to the file to search in",
		"keyword":  "The keyword to search for",
	} {
		prop, ok := tool.InputSchema.Properties[name].(map[string]any)
		require.True(t, ok, "property %s missing", name)
		assert.Equal(t, "string", prop["type"])
		assert.Equal(t, want, prop["description"])
	}

	out := tool.OutputSchema
	assert.Equal(t, "object", out.Type)
	assert.ElementsMatch(t, []string{"matches", "totalMatches"}, out.Required)

	total, ok := out.Properties["totalMatches"].(map[string]any)
	require.True(t, ok, "totalMatches missing from output schema")
	assert.Equal(t, "integer", total["type"])
	assert.Equal(t, "Total number of matches found", total["description"])

	matches, ok := out.Properties["matches"].(map[string]any)
	require.True(t, ok, "matches missing from output schema")
	assert.Equal(t, "array", matches["type"])

	items, ok := matches["items"].(map[string]any)
	require.True(t, ok, "matches items missing from output schema")
	itemProps, ok := items["properties"].(map[string]any)
	require.True(t, ok)
	for name, want := range map[string]string{
		"line":    "Line number where the match was found",
		"content": "Content of the line containing the match",
	} {
		prop, ok := itemProps[name].(map[string]any)
		require.True(t, ok, "match property %s missing", name)
		assert.Equal(t, want, prop["description"])
	}
}

func TestListOperations(t *testing.T) {
	registry := createTestRegistry(t, 0)

	first := registry.ListOperations()
	second := registry.ListOperations()

	require.Len(t, first, 1)
	assert.Equal(t, SearchInFileToolName, first[0].Name)
	assert.Equal(t, first, second)

	// Mutating the returned slice must not leak into the registry
	first[0].Name = "changed"
	assert.Equal(t, SearchInFileToolName, registry.ListOperations()[0].Name)
}

func TestHandleCallToolSuccess(t *testing.T) {
	registry := createTestRegistry(t, 0)
	path := writeFruitFile(t)

	res, err := registry.HandleCallTool(context.Background(), callRequest(map[string]any{
		"filePath": path,
		"keyword":  "apple",
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	assert.JSONEq(t,
		`{"matches":[{"line":1,"content":"apple"},{"line":3,"content":"apple pie"}],"totalMatches":2}`,
		resultText(t, res),
	)

	structured, ok := res.StructuredContent.(*search.Result)
	require.True(t, ok, "unexpected structured content %T", res.StructuredContent)
	assert.Equal(t, 2, structured.TotalMatches)
	assert.Equal(t, []search.LineMatch{{Line: 1, Content: "apple"}, {Line: 3, Content: "apple pie"}}, structured.Matches)
}

func TestHandleCallToolZeroMatches(t *testing.T) {
	registry := createTestRegistry(t, 0)
	path := writeFruitFile(t)

	res, err := registry.HandleCallTool(context.Background(), callRequest(map[string]any{
		"filePath": path,
		"keyword":  "cherry",
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError, "zero matches must not be reported as an error")
	assert.JSONEq(t, `{"matches":[],"totalMatches":0}`, resultText(t, res))
}

func TestHandleCallToolEmptyKeyword(t *testing.T) {
	registry := createTestRegistry(t, 0)
	path := writeFruitFile(t)

	res, err := registry.HandleCallTool(context.Background(), callRequest(map[string]any{
		"filePath": path,
		"keyword":  "",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var result search.Result
	require.NoError(t, stdjson.Unmarshal([]byte(resultText(t, res)), &result))
	assert.Equal(t, 3, result.TotalMatches)
	for i, m := range result.Matches {
		assert.Equal(t, i+1, m.Line)
	}
}

func TestHandleCallToolFileAccessError(t *testing.T) {
	registry := createTestRegistry(t, 0)

	res, err := registry.HandleCallTool(context.Background(), callRequest(map[string]any{
		"filePath": "/no/such/file.txt",
		"keyword":  "x",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	text := resultText(t, res)
	assert.True(t, strings.HasPrefix(text, "Error searching file: "), text)
	assert.NotContains(t, text, "totalMatches")
}

func TestHandleCallToolBlankPath(t *testing.T) {
	registry := createTestRegistry(t, 0)

	res, err := registry.HandleCallTool(context.Background(), callRequest(map[string]any{
		"filePath": filepath.Join(t.TempDir(), "   "),
		"keyword":  "a",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Nil(t, res.StructuredContent)

	text := resultText(t, res)
	assert.True(t, strings.HasPrefix(text, "Error searching file: "), text)
}

func TestHandleCallToolInvalidArguments(t *testing.T) {
	registry := createTestRegistry(t, 0)
	path := writeFruitFile(t)

	tests := []struct {
		name    string
		args    any
		wantMsg string
	}{
		{name: "no arguments", args: nil, wantMsg: `missing required field "filePath"`},
		{name: "missing keyword", args: map[string]any{"filePath": path}, wantMsg: `missing required field "keyword"`},
		{name: "missing filePath", args: map[string]any{"keyword": "apple"}, wantMsg: `missing required field "filePath"`},
		{name: "keyword wrong type", args: map[string]any{"filePath": path, "keyword": 42}, wantMsg: `field "keyword" must be a string`},
		{name: "filePath wrong type", args: map[string]any{"filePath": true, "keyword": "a"}, wantMsg: `field "filePath" must be a string`},
		{name: "null keyword", args: map[string]any{"filePath": path, "keyword": nil}, wantMsg: `missing required field "keyword"`},
		{name: "empty filePath", args: map[string]any{"filePath": "", "keyword": "a"}, wantMsg: "filePath must not be empty"},
		{name: "arguments not an object", args: []any{"a", "b"}, wantMsg: "arguments must be an object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := registry.HandleCallTool(context.Background(), callRequest(tt.args))
			require.NoError(t, err)
			assert.True(t, res.IsError)

			text := resultText(t, res)
			assert.True(t, strings.HasPrefix(text, "invalid argument: "), text)
			assert.Contains(t, text, tt.wantMsg)
		})
	}
}

func TestParseSearchRequest(t *testing.T) {
	req, err := ParseSearchRequest(map[string]any{"filePath": "/tmp/a.txt", "keyword": ""})
	require.NoError(t, err)
	assert.Equal(t, search.Request{FilePath: "/tmp/a.txt", Keyword: ""}, req)

	_, err = ParseSearchRequest(map[string]any{"filePath": "/tmp/a.txt"})
	assert.True(t, search.IsInvalidArgument(err))

	req, err = ParseSearchRequest(map[string]any{"filePath": "   ", "keyword": "a"})
	require.NoError(t, err)
	assert.Equal(t, "   ", req.FilePath)
}

func TestInvokeTimeout(t *testing.T) {
	logger, _ := logging.NewTestLogger()
	registry := NewToolRegistry(logger, search.NewExecutor(0), time.Nanosecond)
	path := writeFruitFile(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := registry.Invoke(ctx, search.Request{FilePath: path, Keyword: "apple"})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "An unknown error occurred while searching the file", resultText(t, res))
}

func TestInvokeLogsRequestID(t *testing.T) {
	logger, buf := logging.NewTestLogger()
	registry := NewToolRegistry(logger, search.NewExecutor(0), 0)
	path := writeFruitFile(t)

	_, err := registry.Invoke(context.Background(), search.Request{FilePath: path, Keyword: "apple"})
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "request_id")
	assert.Contains(t, output, "Search completed")
	assert.Contains(t, output, "totalMatches=2")
}
