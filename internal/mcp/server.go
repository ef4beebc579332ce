// Package mcp exposes the conversation archive over the Model Context
// Protocol.
//
// It publishes full-text search, message and thread lookup, and corpus
// statistics as MCP tools, plus archive statistics and recent messages as
// MCP resources. Supports stdio transport and optional HTTP+SSE for remote
// access.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mailsift/mailsift/internal/store"
)

// ServerConfig holds configuration for the MCP server.
type ServerConfig struct {
	Archive store.Archive
	Version string
}

// dbMu serializes tool calls that touch the database. The mcp-go library
// dispatches handlers concurrently via goroutines, and SQLite supports only
// one writer at a time even in WAL mode.
var dbMu sync.Mutex

// NewServer creates a configured MCP server with all archive tools and
// resources registered.
func NewServer(cfg ServerConfig) *server.MCPServer {
	ver := cfg.Version
	if ver == "" {
		ver = "dev"
	}

	s := server.NewMCPServer(
		"mailsift",
		ver,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(true, false),
	)

	registerSearchTool(s, cfg.Archive)
	registerMessageTool(s, cfg.Archive)
	registerThreadTool(s, cfg.Archive)
	registerThreadsTool(s, cfg.Archive)
	registerStatsTool(s, cfg.Archive)

	registerStatsResource(s, cfg.Archive)
	registerRecentResource(s, cfg.Archive)

	return s
}

// ServeStdio runs the server over stdin/stdout until the client disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func registerSearchTool(s *server.MCPServer, archive store.Archive) {
	tool := mcp.NewTool("mailsift_search",
		mcp.WithDescription("Full-text search over reconstructed messages (subjects, bodies, correspondents). Returns BM25-ranked results with snippets."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("FTS5 query string"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results (default: 10, max: 50)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		query, err := req.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError("query is required"), nil
		}

		limit := 10
		if limitVal, err := req.RequireFloat("limit"); err == nil && int(limitVal) > 0 {
			limit = int(limitVal)
			if limit > 50 {
				limit = 50
			}
		}

		results, err := archive.Search(ctx, query, limit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("search error: %v", err)), nil
		}

		data, _ := json.MarshalIndent(results, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerMessageTool(s *server.MCPServer, archive store.Archive) {
	tool := mcp.NewTool("mailsift_message",
		mcp.WithDescription("Fetch a single reconstructed message by its content ID, including duplicate-source provenance."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Message content ID"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		id, err := req.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError("id is required"), nil
		}

		record, err := archive.GetMessage(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("lookup error: %v", err)), nil
		}
		if record == nil {
			return mcp.NewToolResultError(fmt.Sprintf("no message with id %q", id)), nil
		}

		data, _ := json.MarshalIndent(record, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerThreadTool(s *server.MCPServer, archive store.Archive) {
	tool := mcp.NewTool("mailsift_thread",
		mcp.WithDescription("Fetch a conversation thread by ID with its member messages in chronological order."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Thread ID, e.g. thread_12"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		id, err := req.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError("id is required"), nil
		}

		thread, err := archive.GetThread(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("lookup error: %v", err)), nil
		}
		if thread == nil {
			return mcp.NewToolResultError(fmt.Sprintf("no thread with id %q", id)), nil
		}

		data, _ := json.MarshalIndent(thread, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerThreadsTool(s *server.MCPServer, archive store.Archive) {
	tool := mcp.NewTool("mailsift_threads",
		mcp.WithDescription("List conversation threads ordered by most recent activity. Member messages are omitted; use mailsift_thread for full conversations."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of threads (default: 20, max: 100)"),
		),
		mcp.WithNumber("offset",
			mcp.Description("Pagination offset (default: 0)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		limit := 20
		if limitVal, err := req.RequireFloat("limit"); err == nil && int(limitVal) > 0 {
			limit = int(limitVal)
			if limit > 100 {
				limit = 100
			}
		}
		offset := 0
		if offsetVal, err := req.RequireFloat("offset"); err == nil && int(offsetVal) > 0 {
			offset = int(offsetVal)
		}

		threads, err := archive.ListThreads(ctx, limit, offset)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("listing error: %v", err)), nil
		}

		data, _ := json.MarshalIndent(threads, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerStatsTool(s *server.MCPServer, archive store.Archive) {
	tool := mcp.NewTool("mailsift_stats",
		mcp.WithDescription("Archive statistics: message and thread counts, per-format breakdown, duplicate and embedded counts, corpus date range."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		stats, err := archive.Stats(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("stats error: %v", err)), nil
		}

		data, _ := json.MarshalIndent(stats, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerStatsResource(s *server.MCPServer, archive store.Archive) {
	resource := mcp.NewResource(
		"mailsift://stats",
		"Archive Statistics",
		mcp.WithResourceDescription("Message and thread counts, format breakdown, and corpus date range."),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(resource, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		stats, err := archive.Stats(ctx)
		if err != nil {
			return nil, fmt.Errorf("reading stats resource: %w", err)
		}

		data, _ := json.MarshalIndent(stats, "", "  ")
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: req.Params.URI, MIMEType: "application/json", Text: string(data)},
		}, nil
	})
}

func registerRecentResource(s *server.MCPServer, archive store.Archive) {
	resource := mcp.NewResource(
		"mailsift://messages/recent",
		"Recent Messages",
		mcp.WithResourceDescription("The 20 most recent dated messages in the archive."),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(resource, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		dbMu.Lock()
		defer dbMu.Unlock()

		records, err := archive.ListMessages(ctx, store.ListOpts{Limit: 20})
		if err != nil {
			return nil, fmt.Errorf("reading recent resource: %w", err)
		}

		payload := map[string]interface{}{
			"messages": records,
			"count":    len(records),
		}
		data, _ := json.MarshalIndent(payload, "", "  ")
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: req.Params.URI, MIMEType: "application/json", Text: string(data)},
		}, nil
	})
}
