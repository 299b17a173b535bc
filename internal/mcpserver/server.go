// Package mcpserver exposes the STRING bridge as Model Context Protocol
// tools using the official MCP Go SDK.
package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"string-mcp/internal/stringdb"
)

// Name and Version identify the server during the MCP handshake.
const (
	Name    = "string-mcp"
	Version = "0.2.0"
)

// Server wraps an MCP SDK server with the STRING tools registered.
type Server struct {
	server *mcp.Server
}

// New builds a Server with every bridge operation registered as a tool.
func New(bridge *stringdb.Client) *Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    Name,
		Version: Version,
	}, nil)

	for _, t := range Tools(bridge) {
		server.AddTool(&mcp.Tool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		}, toSDKHandler(t.Handler))
	}

	return &Server{server: server}
}

// Run serves MCP requests over stdio until the client disconnects or the
// context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.run(ctx, &mcp.StdioTransport{})
}

// run starts the server on the given transport; tests call it with an
// in-memory transport.
func (s *Server) run(ctx context.Context, transport mcp.Transport) error {
	return s.server.Run(ctx, transport)
}

// toSDKHandler adapts a Handler to the SDK signature. Bridge errors become
// tool-level error results rather than protocol failures.
func toSDKHandler(h Handler) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.Params.Arguments
		if args == nil {
			args = json.RawMessage("{}")
		}
		content, err := h(ctx, args)
		if err != nil {
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: "Error: " + err.Error()}},
				IsError: true,
			}, nil
		}
		return &mcp.CallToolResult{Content: content}, nil
	}
}
