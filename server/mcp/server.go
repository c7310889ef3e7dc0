package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/lakefield/deepresearch/pkg/tool"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server mounts the configured tools on a streamable HTTP MCP server
// so an agent host can discover and invoke them.
type Server struct {
	http.Handler

	tools []tool.Provider

	server *mcp.Server
}

func New(name string, tools []tool.Provider) (*Server, error) {
	serverImpl := &mcp.Implementation{
		Name: name,
	}

	serverOpts := &mcp.ServerOptions{
		KeepAlive: time.Second * 30,
	}

	server := mcp.NewServer(serverImpl, serverOpts)

	handlerOpts := &mcp.StreamableHTTPOptions{
		Stateless: true,
	}

	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, handlerOpts)

	s := &Server{
		Handler: handler,

		server: server,
		tools:  tools,
	}

	if err := s.mountTools(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Server) mountTools() error {
	ctx := context.Background()

	var resultErr error

	for _, p := range s.tools {
		tools, err := p.Tools(ctx)

		if err != nil {
			resultErr = errors.Join(resultErr, err)
			continue
		}

		for _, t := range tools {
			data, _ := json.Marshal(tool.NormalizeSchema(t.Parameters))

			schema := new(jsonschema.Schema)

			if err := schema.UnmarshalJSON(data); err != nil {
				resultErr = errors.Join(resultErr, err)
				continue
			}

			s.server.AddTool(&mcp.Tool{
				Name:        t.Name,
				Description: t.Description,

				InputSchema: schema,
			}, handler(p, t.Name))
		}
	}

	return resultErr
}

func handler(p tool.Provider, name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args map[string]any

		if len(req.Params.Arguments) > 0 {
			json.Unmarshal(req.Params.Arguments, &args)
		}

		result, err := p.Execute(ctx, name, args)

		if err != nil {
			return nil, err
		}

		switch v := result.(type) {
		case string:
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					&mcp.TextContent{
						Text: v,
					},
				},
			}, nil

		default:
			data, _ := json.Marshal(v)

			return &mcp.CallToolResult{
				Content: []mcp.Content{
					&mcp.TextContent{
						Text: string(data),
					},
				},
			}, nil
		}
	}
}
