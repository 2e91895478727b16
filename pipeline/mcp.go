// CLAUDE:SUMMARY Registers the five docproc MCP tools (process, translate, summarize, keypoints, compare).
package pipeline

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterMCP registers the document processing tools on an MCP server.
func (p *Pipeline) RegisterMCP(srv *mcp.Server) {
	p.registerProcessTool(srv)
	p.registerTranslateTool(srv)
	p.registerSummarizeTool(srv)
	p.registerKeypointsTool(srv)
	p.registerCompareTool(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

type toolEndpoint func(ctx context.Context, req any) (any, error)
type toolDecoder func(req *mcp.CallToolRequest) (any, error)

// registerTool wires one tool: decode arguments, run the endpoint, answer
// with the JSON-encoded result as text content. Endpoint failures become
// tool errors, not protocol errors.
func registerTool(srv *mcp.Server, tool *mcp.Tool, endpoint toolEndpoint, decode toolDecoder) {
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		r, err := decode(req)
		if err != nil {
			return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		out, err := endpoint(ctx, r)
		if err != nil {
			return toolError(err.Error()), nil
		}
		data, err := json.Marshal(out)
		if err != nil {
			return nil, err
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		}, nil
	})
}

func toolError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}

// --- process ---

type processReq struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

func (p *Pipeline) registerProcessTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "docproc_process",
		Description: "Extract text, tables, and language from a document. The filename extension decides the format.",
		InputSchema: inputSchema(map[string]any{
			"filename": map[string]any{"type": "string", "description": "Document filename with extension"},
			"content":  map[string]any{"type": "string", "description": "Base64-encoded document payload"},
		}, []string{"filename", "content"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*processReq)
		data, err := base64.StdEncoding.DecodeString(r.Content)
		if err != nil {
			return nil, fmt.Errorf("content is not valid base64: %w", err)
		}
		res, err := p.Process(ctx, data, r.Filename)
		if err != nil {
			return nil, fmt.Errorf("%s", sanitizeError(p.logger, err))
		}
		return res, nil
	}

	registerTool(srv, tool, endpoint, func(req *mcp.CallToolRequest) (any, error) {
		var r processReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &r, nil
	})
}

// --- translate ---

type translateReq struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"target_language"`
}

func (p *Pipeline) registerTranslateTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "docproc_translate",
		Description: "Translate text to a target language, given by ISO 639-1 code or English name.",
		InputSchema: inputSchema(map[string]any{
			"text":            map[string]any{"type": "string", "description": "Text to translate"},
			"target_language": map[string]any{"type": "string", "description": "Target language, e.g. \"es\" or \"Spanish\""},
		}, []string{"text", "target_language"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*translateReq)
		return p.Translate(ctx, r.Text, r.TargetLanguage), nil
	}

	registerTool(srv, tool, endpoint, func(req *mcp.CallToolRequest) (any, error) {
		var r translateReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &r, nil
	})
}

// --- summarize ---

type textReq struct {
	Text string `json:"text"`
}

func (p *Pipeline) registerSummarizeTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "docproc_summarize",
		Description: "Produce a deterministic extractive summary of the text.",
		InputSchema: inputSchema(map[string]any{
			"text": map[string]any{"type": "string", "description": "Text to summarize"},
		}, []string{"text"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*textReq)
		return p.Summarize(ctx, r.Text), nil
	}

	registerTool(srv, tool, endpoint, decodeTextReq)
}

func (p *Pipeline) registerKeypointsTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "docproc_keypoints",
		Description: "Extract the text's key points from list structure or by statistical scoring.",
		InputSchema: inputSchema(map[string]any{
			"text": map[string]any{"type": "string", "description": "Text to analyze"},
		}, []string{"text"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*textReq)
		return p.BulletPoints(ctx, r.Text), nil
	}

	registerTool(srv, tool, endpoint, decodeTextReq)
}

func decodeTextReq(req *mcp.CallToolRequest) (any, error) {
	var r textReq
	if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// --- compare ---

type compareReq struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

func (p *Pipeline) registerCompareTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "docproc_compare",
		Description: "Compare two texts line by line and report similarity and changed lines.",
		InputSchema: inputSchema(map[string]any{
			"left":  map[string]any{"type": "string", "description": "First text"},
			"right": map[string]any{"type": "string", "description": "Second text"},
		}, []string{"left", "right"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*compareReq)
		return p.Compare(ctx, r.Left, r.Right), nil
	}

	registerTool(srv, tool, endpoint, func(req *mcp.CallToolRequest) (any, error) {
		var r compareReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &r, nil
	})
}
