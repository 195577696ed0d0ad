package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
)

const protocolVersion = "2024-11-05"

// JSON-RPC 2.0 error codes.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

// maxLineBytes bounds a single request line.
const maxLineBytes = 1 << 20

// Server answers MCP requests over line-delimited JSON-RPC 2.0.
type Server struct {
	tools  []toolDef
	byName map[string]int
	opts   Options
	log    *zap.Logger
}

type toolHandler func(ctx context.Context, args json.RawMessage) (any, error)

type toolDef struct {
	Name        string
	Description string
	InputSchema json.RawMessage
	Handler     toolHandler
}

type request struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method"`
	Params  json.RawMessage  `json:"params,omitempty"`
}

type response struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Result  any              `json:"result,omitempty"`
	Error   *rpcError        `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string { return fmt.Sprintf("jsonrpc %d: %s", e.Code, e.Message) }

type toolsCallResult struct {
	Content []mcpContent `json:"content"`
	IsError bool         `json:"isError"`
}

type mcpContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func textResult(text string, isError bool) toolsCallResult {
	return toolsCallResult{Content: []mcpContent{{Type: "text", Text: text}}, IsError: isError}
}

// NewServer returns a Server with the directory tools registered.
func NewServer(opts Options) *Server {
	s := &Server{opts: opts.withDefaults(), byName: make(map[string]int)}
	s.log = s.opts.Log
	addTools(s)
	return s
}

func (s *Server) registerTool(def toolDef) {
	s.byName[def.Name] = len(s.tools)
	s.tools = append(s.tools, def)
}

// Run serves requests read from r until r is exhausted or ctx is done.
// Responses are written to w one per line. Notifications get no reply.
func (s *Server) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	lines := make(chan []byte)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		for sc.Scan() {
			line := append([]byte(nil), sc.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				readErr <- nil
				return
			}
		}
		readErr <- sc.Err()
	}()

	enc := json.NewEncoder(w)
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-readErr
			}
			resp, reply := s.handle(ctx, line)
			if !reply {
				continue
			}
			if err := enc.Encode(resp); err != nil {
				return fmt.Errorf("writing response: %w", err)
			}
		}
	}
}

// handle decodes one request line. The bool is false for notifications.
func (s *Server) handle(ctx context.Context, line []byte) (response, bool) {
	var req request
	if err := json.Unmarshal(line, &req); err != nil {
		return response{JSONRPC: "2.0", Error: &rpcError{Code: codeParseError, Message: "Parse error"}}, true
	}
	if req.ID == nil {
		return response{}, false
	}

	resp := response{JSONRPC: "2.0", ID: req.ID}
	if req.Method == "" {
		resp.Error = &rpcError{Code: codeInvalidRequest, Message: "Invalid request"}
		return resp, true
	}

	var err *rpcError
	switch req.Method {
	case "initialize":
		resp.Result = s.initialize()
	case "ping":
		resp.Result = struct{}{}
	case "tools/list":
		resp.Result = s.listTools()
	case "tools/call":
		resp.Result, err = s.callTool(ctx, req.Params)
	default:
		err = &rpcError{Code: codeMethodNotFound, Message: "Method not found"}
	}
	resp.Error = err
	return resp, true
}

func (s *Server) initialize() map[string]any {
	return map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities":    map[string]any{"tools": map[string]any{}},
		"serverInfo":      map[string]any{"name": "gymdesk", "version": s.opts.Version},
	}
}

type toolListEntry struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

func (s *Server) listTools() map[string]any {
	entries := make([]toolListEntry, len(s.tools))
	for i, t := range s.tools {
		entries[i] = toolListEntry{Name: t.Name, Description: t.Description, InputSchema: t.InputSchema}
	}
	return map[string]any{"tools": entries}
}

// callTool runs a tool. Tool failures are reported in the result with
// isError set; only malformed params produce a protocol error.
func (s *Server) callTool(ctx context.Context, raw json.RawMessage) (any, *rpcError) {
	var params struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments,omitempty"`
	}
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, &rpcError{Code: codeInvalidParams, Message: "Invalid params"}
	}

	idx, ok := s.byName[params.Name]
	if !ok {
		return textResult("unknown tool: "+params.Name, true), nil
	}
	tool := s.tools[idx]

	args := params.Arguments
	if len(args) == 0 {
		args = json.RawMessage(`{}`)
	}

	start := time.Now()
	out, err := tool.Handler(ctx, args)
	log := s.log.With(zap.String("tool", tool.Name), zap.Duration("took", time.Since(start)))
	if err != nil {
		log.Debug("tool failed", zap.Error(err))
		return textResult(err.Error(), true), nil
	}

	data, err := json.Marshal(out)
	if err != nil {
		return textResult(err.Error(), true), nil
	}
	log.Debug("tool call")
	return textResult(string(data), false), nil
}
