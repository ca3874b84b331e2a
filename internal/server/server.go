package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ironsheep/image-draw-mcp/internal/imaging"
)

// ServerName is reported in the initialize handshake.
const ServerName = "image-draw-mcp"

// Config holds server settings resolved by the caller.
type Config struct {
	// Version is reported as serverInfo.version. Empty means "dev".
	Version string

	// Debug logs every request and tool call to the standard logger.
	Debug bool
}

// Server handles MCP protocol communication
type Server struct {
	cache   *imaging.ImageCache
	version string
	debug   bool
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// JSON-RPC error codes used by the server.
const (
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeToolFailed     = -32000
)

// New creates a new MCP server instance
func New(cfg Config) *Server {
	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	return &Server{
		cache:   imaging.NewImageCache(),
		version: version,
		debug:   cfg.Debug,
	}
}

// Run serves requests on the process's stdin and stdout.
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// maxRequestLine caps one JSON-RPC message; a draw_shapes call carries its
// whole shape list on a single line.
const maxRequestLine = 4 << 20

// Serve handles one JSON-RPC message per line of r, in order, writing each
// reply as a line of w. Notifications get no reply. It returns when r is
// exhausted.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	in := bufio.NewScanner(r)
	in.Buffer(make([]byte, 0, 64<<10), maxRequestLine)
	out := json.NewEncoder(w)

	for in.Scan() {
		msg := in.Bytes()
		if len(msg) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			log.Printf("dropping malformed message: %v", err)
			continue
		}
		if s.debug {
			log.Printf("-> %s (id=%v)", req.Method, req.ID)
		}

		resp := s.handleRequest(&req)
		if resp == nil {
			continue
		}
		if err := out.Encode(resp); err != nil {
			log.Printf("writing reply to %s: %v", req.Method, err)
		}
	}

	if err := in.Err(); err != nil {
		return fmt.Errorf("reading requests: %w", err)
	}
	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return s.errorResponse(req.ID, codeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method), "")
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    ServerName,
				"version": s.version,
			},
		},
	}
}
