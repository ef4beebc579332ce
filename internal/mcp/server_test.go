package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mailsift/mailsift/internal/store"
	"github.com/mailsift/mailsift/internal/textdoc"
)

func setupTestArchive(t *testing.T) store.Archive {
	t.Helper()
	a, err := store.Open(store.Config{DBPath: ":memory:"})
	if err != nil {
		t.Fatalf("opening test archive: %v", err)
	}
	t.Cleanup(func() { a.Close() })

	ctx := context.Background()
	records := []*textdoc.MessageRecord{
		{
			ID: "m1", Format: textdoc.FormatTraditional,
			Sender: "jeevacation@gmail.com", Recipient: "reid@example.com",
			Recipients: []string{"reid@example.com"}, SubjectClean: "Dinner",
			Timestamp: 1529070433, Body: "Can you make it Thursday evening?",
			SourceDocument: "doc_001.txt", DuplicateSources: []string{"doc_001.txt"},
			TargetSender: true,
		},
		{
			ID: "m2", Format: textdoc.FormatTraditional,
			Sender: "reid@example.com", Recipient: "jeevacation@gmail.com",
			Recipients: []string{"jeevacation@gmail.com"}, SubjectRaw: "Re: Dinner",
			SubjectClean: "Dinner", ReplyDepth: 1,
			Timestamp: 1529074033, Body: "Thursday works for me.",
			SourceDocument: "doc_002.txt", DuplicateSources: []string{"doc_002.txt"},
		},
	}
	if _, err := a.SaveRecords(ctx, records); err != nil {
		t.Fatalf("seeding records: %v", err)
	}

	threads := []*textdoc.Thread{{
		ID:             "thread_0",
		Subject:        "Dinner",
		Participants:   []string{"jeevacation@gmail.com", "reid@example.com"},
		Emails:         records,
		FirstTimestamp: 1529070433,
		LastTimestamp:  1529074033,
		HasTarget:      true,
	}}
	if err := a.SaveThreads(ctx, threads); err != nil {
		t.Fatalf("seeding threads: %v", err)
	}
	return a
}

func TestNewServer(t *testing.T) {
	a := setupTestArchive(t)
	srv := NewServer(ServerConfig{Archive: a})
	if srv == nil {
		t.Fatal("NewServer returned nil")
	}
}

// callTool invokes an MCP tool through the JSON-RPC surface, the way a
// client would.
func callTool(t *testing.T, srv *server.MCPServer, name string, args map[string]interface{}) *mcplib.CallToolResult {
	t.Helper()

	result := srv.HandleMessage(context.Background(), mustMarshal(t, map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "tools/call",
		"params": map[string]interface{}{
			"name":      name,
			"arguments": args,
		},
	}))

	respBytes, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}

	var resp struct {
		Result struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
			IsError bool `json:"isError"`
		} `json:"result"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		t.Fatalf("unmarshal response: %v\nraw: %s", err, string(respBytes))
	}
	if resp.Error != nil {
		t.Fatalf("JSON-RPC error: %d %s", resp.Error.Code, resp.Error.Message)
	}

	callResult := &mcplib.CallToolResult{IsError: resp.Result.IsError}
	for _, c := range resp.Result.Content {
		if c.Type == "text" {
			callResult.Content = append(callResult.Content, mcplib.NewTextContent(c.Text))
		}
	}
	return callResult
}

func mustMarshal(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func getTextContent(t *testing.T, result *mcplib.CallToolResult) string {
	t.Helper()
	for _, c := range result.Content {
		if tc, ok := c.(mcplib.TextContent); ok {
			return tc.Text
		}
	}
	t.Fatal("no text content in result")
	return ""
}

func TestSearchTool(t *testing.T) {
	a := setupTestArchive(t)
	srv := NewServer(ServerConfig{Archive: a})

	result := callTool(t, srv, "mailsift_search", map[string]interface{}{"query": "thursday"})
	if result.IsError {
		t.Fatalf("search tool errored: %s", getTextContent(t, result))
	}
	text := getTextContent(t, result)
	if !strings.Contains(text, "m1") || !strings.Contains(text, "m2") {
		t.Errorf("search result missing expected hits: %s", text)
	}
}

func TestSearchToolMissingQuery(t *testing.T) {
	a := setupTestArchive(t)
	srv := NewServer(ServerConfig{Archive: a})

	result := callTool(t, srv, "mailsift_search", map[string]interface{}{})
	if !result.IsError {
		t.Fatal("search without query should error")
	}
}

func TestMessageTool(t *testing.T) {
	a := setupTestArchive(t)
	srv := NewServer(ServerConfig{Archive: a})

	result := callTool(t, srv, "mailsift_message", map[string]interface{}{"id": "m1"})
	if result.IsError {
		t.Fatalf("message tool errored: %s", getTextContent(t, result))
	}
	text := getTextContent(t, result)
	if !strings.Contains(text, "jeevacation@gmail.com") {
		t.Errorf("message result missing sender: %s", text)
	}

	result = callTool(t, srv, "mailsift_message", map[string]interface{}{"id": "missing"})
	if !result.IsError {
		t.Fatal("lookup of missing message should error")
	}
}

func TestThreadTool(t *testing.T) {
	a := setupTestArchive(t)
	srv := NewServer(ServerConfig{Archive: a})

	result := callTool(t, srv, "mailsift_thread", map[string]interface{}{"id": "thread_0"})
	if result.IsError {
		t.Fatalf("thread tool errored: %s", getTextContent(t, result))
	}
	var thread textdoc.Thread
	if err := json.Unmarshal([]byte(getTextContent(t, result)), &thread); err != nil {
		t.Fatalf("unmarshal thread: %v", err)
	}
	if len(thread.Emails) != 2 {
		t.Errorf("thread has %d emails, want 2", len(thread.Emails))
	}
}

func TestThreadsTool(t *testing.T) {
	a := setupTestArchive(t)
	srv := NewServer(ServerConfig{Archive: a})

	result := callTool(t, srv, "mailsift_threads", map[string]interface{}{"limit": 5})
	if result.IsError {
		t.Fatalf("threads tool errored: %s", getTextContent(t, result))
	}
	var threads []*textdoc.Thread
	if err := json.Unmarshal([]byte(getTextContent(t, result)), &threads); err != nil {
		t.Fatalf("unmarshal threads: %v", err)
	}
	if len(threads) != 1 || threads[0].ID != "thread_0" {
		t.Errorf("threads = %v, want one thread_0", threads)
	}
}

func TestStatsTool(t *testing.T) {
	a := setupTestArchive(t)
	srv := NewServer(ServerConfig{Archive: a})

	result := callTool(t, srv, "mailsift_stats", map[string]interface{}{})
	if result.IsError {
		t.Fatalf("stats tool errored: %s", getTextContent(t, result))
	}
	var stats store.ArchiveStats
	if err := json.Unmarshal([]byte(getTextContent(t, result)), &stats); err != nil {
		t.Fatalf("unmarshal stats: %v", err)
	}
	if stats.MessageCount != 2 {
		t.Errorf("MessageCount = %d, want 2", stats.MessageCount)
	}
	if stats.ThreadCount != 1 {
		t.Errorf("ThreadCount = %d, want 1", stats.ThreadCount)
	}
}
