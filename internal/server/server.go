// Package server provides the HTTP handlers and routing for the tool
// surface: tool discovery and tool invocation over plain HTTP, backed by
// the same registry as the stdio MCP server.
package server

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"string-mcp/internal/mcpserver"
	"string-mcp/internal/stringdb"
)

// Config contains server configuration values such as port, auth token,
// and the bridge settings.
type Config struct {
	Port   string
	Token  string
	String stringdb.Config
}

// Server contains the configured router and the tool registry.
type Server struct {
	cfg    Config
	router *chi.Mux
	tools  []mcpserver.Tool
	byName map[string]mcpserver.Tool
}

// New constructs a Server with middleware and routes configured. The
// bridge may be shared with a stdio server; it holds no mutable state.
func New(cfg Config, bridge *stringdb.Client) *Server {
	s := &Server{
		cfg:    cfg,
		router: chi.NewRouter(),
		byName: make(map[string]mcpserver.Tool),
	}
	s.tools = mcpserver.Tools(bridge)
	for _, t := range s.tools {
		s.byName[t.Name] = t
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Get("/health", s.handleHealth)

	s.router.Route("/mcp", func(r chi.Router) {
		r.Use(s.auth)
		r.Get("/tools", s.handleListTools)
		r.Post("/call", s.handleCall)
	})

	return s
}

// Router exposes the root HTTP handler for the server.
func (s *Server) Router() http.Handler { return s.router }

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.Token == "" {
			next.ServeHTTP(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+s.cfg.Token {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleListTools(w http.ResponseWriter, _ *http.Request) {
	tools := make([]Tool, 0, len(s.tools))
	for _, t := range s.tools {
		tools = append(tools, Tool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"tools": tools})
}

func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	var req CallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	tool, ok := s.byName[req.Name]
	if !ok {
		http.Error(w, "unknown tool", http.StatusNotFound)
		return
	}

	content, err := tool.Handler(r.Context(), req.Args)
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		// Bridge failures are tool-level errors, not HTTP failures: the
		// request itself was handled.
		_ = json.NewEncoder(w).Encode(CallResponse{
			IsError: true,
			Content: []ContentBlock{{Type: "text", Text: "Error: " + err.Error()}},
		})
		return
	}
	_ = json.NewEncoder(w).Encode(CallResponse{
		IsError: false,
		Content: toBlocks(content),
	})
}

// toBlocks converts MCP content into the HTTP wire representation. Image
// bytes are base64-encoded.
func toBlocks(content []mcp.Content) []ContentBlock {
	blocks := make([]ContentBlock, 0, len(content))
	for _, c := range content {
		switch v := c.(type) {
		case *mcp.TextContent:
			blocks = append(blocks, ContentBlock{Type: "text", Text: v.Text})
		case *mcp.ImageContent:
			blocks = append(blocks, ContentBlock{
				Type:     "image",
				Data:     base64.StdEncoding.EncodeToString(v.Data),
				MIMEType: v.MIMEType,
			})
		}
	}
	return blocks
}
