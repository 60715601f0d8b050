package adk

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/user/codeaudit/pkg/jsonutil"
	"github.com/user/codeaudit/pkg/logging"
)

// Server exposes a Registry over the Model Context Protocol.
type Server struct {
	mcp      *mcp.Server
	registry *Registry
}

// NewServer creates an MCP server with every tool in registry attached.
func NewServer(version string, registry *Registry) *Server {
	s := &Server{
		registry: registry,
		mcp: mcp.NewServer(
			&mcp.Implementation{
				Name:    "codeaudit",
				Title:   "Codebase Security Audit",
				Version: version,
			},
			&mcp.ServerOptions{
				Instructions: GetInstructions(),
			},
		),
	}
	for _, t := range registry.Tools() {
		s.addTool(t)
	}
	return s
}

// MCPServer returns the underlying server, mainly for tests.
func (s *Server) MCPServer() *mcp.Server { return s.mcp }

// RunStdio serves a single session over stdin/stdout until ctx is done or
// the client disconnects.
func (s *Server) RunStdio(ctx context.Context) error {
	logging.Infof("serving %d tools over stdio", len(s.registry.Tools()))
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) addTool(t Tool) {
	schema := t.Schema()
	if schema == nil {
		schema = map[string]interface{}{"type": "object"}
	}
	s.mcp.AddTool(
		&mcp.Tool{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: schema,
		},
		s.handler(t),
	)
}

func (s *Server) handler(t Tool) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := map[string]interface{}{}
		if raw := req.Params.Arguments; len(raw) > 0 {
			if err := jsonutil.Unmarshal(raw, &args); err != nil {
				return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
			}
		}

		logging.Debugf("Executing tool: %s with args: %v", t.Name(), args)
		out, err := s.registry.Call(ctx, t.Name(), args, func(msg string) {
			logging.Debugf("[%s] %s", t.Name(), msg)
		})
		if err != nil {
			logging.Errorf("tool %s failed: %v", t.Name(), err)
			return errorResult(fmt.Sprintf("Error executing tool: %v", err)), nil
		}
		if IsErrorText(out) {
			return errorResult(out), nil
		}
		return textResult(out), nil
	}
}

// IsErrorText reports whether a tool result follows the "Error: ..."
// convention tools use for failures the caller can correct.
func IsErrorText(out string) bool {
	return strings.HasPrefix(out, "Error:")
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// errorResult marks the result as a tool failure rather than a protocol
// error, so the client sees the message.
func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		IsError: true,
	}
}
