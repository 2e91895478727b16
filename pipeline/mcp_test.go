package pipeline

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var testMCPImpl = &mcp.Implementation{Name: "docproc-test", Version: "0.1.0"}

func mcpSession(t *testing.T) *mcp.ClientSession {
	t.Helper()
	p := newTestPipeline(t)
	srv := mcp.NewServer(testMCPImpl, nil)
	p.RegisterMCP(srv)

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() { _ = srv.Run(ctx, serverT) }()

	client := mcp.NewClient(testMCPImpl, nil)
	session, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func mcpCallTool(t *testing.T, session *mcp.ClientSession, name string, args any) string {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	if err := result.GetError(); err != nil {
		t.Fatalf("CallTool(%s) tool error: %v", name, err)
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("CallTool(%s): expected TextContent", name)
	}
	return tc.Text
}

func TestMCP_Process(t *testing.T) {
	session := mcpSession(t)

	payload := base64.StdEncoding.EncodeToString([]byte("The parties agree to the terms written below."))
	text := mcpCallTool(t, session, "docproc_process", map[string]any{
		"filename": "agreement.txt",
		"content":  payload,
	})

	var resp ProcessResult
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Method != "text" {
		t.Errorf("method = %q, want text", resp.Method)
	}
	if resp.Text == "" {
		t.Error("empty text")
	}
}

func TestMCP_ProcessBadBase64(t *testing.T) {
	session := mcpSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "docproc_process",
		Arguments: map[string]any{
			"filename": "agreement.txt",
			"content":  "%%% not base64 %%%",
		},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error for invalid base64")
	}
}

func TestMCP_Summarize(t *testing.T) {
	session := mcpSession(t)

	text := mcpCallTool(t, session, "docproc_summarize", map[string]any{
		"text": "The first sentence sets out the purpose of the agreement in detail. " +
			"The second sentence explains the obligations each party accepts. " +
			"The third sentence covers payment schedules and penalties for delay. " +
			"The fourth sentence describes how disputes between parties are resolved.",
	})

	var env Envelope
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !env.Success {
		t.Errorf("envelope error: %s", env.Error)
	}
}

func TestMCP_Keypoints(t *testing.T) {
	session := mcpSession(t)

	text := mcpCallTool(t, session, "docproc_keypoints", map[string]any{
		"text": "- deliver the report by friday\n- approve the revised budget\n- schedule the quarterly review",
	})

	var env struct {
		Success bool `json:"success"`
		Payload struct {
			Points []string `json:"points"`
			Source string   `json:"source"`
		} `json:"payload"`
	}
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !env.Success {
		t.Fatal("expected success")
	}
	if len(env.Payload.Points) != 3 {
		t.Errorf("points = %v", env.Payload.Points)
	}
	if env.Payload.Source != "structural" {
		t.Errorf("source = %q", env.Payload.Source)
	}
}

func TestMCP_Compare(t *testing.T) {
	session := mcpSession(t)

	text := mcpCallTool(t, session, "docproc_compare", map[string]any{
		"left":  "rent is due monthly\nthe deposit is nine hundred",
		"right": "rent is due monthly\nthe deposit is one thousand",
	})

	var env struct {
		Success bool `json:"success"`
		Payload struct {
			Similarity   float64 `json:"similarity"`
			ChangedLines int     `json:"changed_lines"`
		} `json:"payload"`
	}
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !env.Success {
		t.Fatal("expected success")
	}
	if env.Payload.ChangedLines != 1 {
		t.Errorf("changed lines = %d, want 1", env.Payload.ChangedLines)
	}
	if env.Payload.Similarity <= 0 || env.Payload.Similarity >= 1 {
		t.Errorf("similarity = %f, want in (0,1)", env.Payload.Similarity)
	}
}
