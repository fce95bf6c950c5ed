package mcpserver

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"html-reader/internal/contentreader"
	"html-reader/internal/domain/config"
	"html-reader/internal/domain/data"

	"go.uber.org/zap"
)

const (
	protocolVersion = "2024-11-05"
	serverName      = "html-reader"
	toolName        = "fetch_web_content"
)

// JSON-RPC error codes. The -32000 range carries the fetch failure taxonomy
// so callers can distinguish failure classes without parsing messages.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeNetworkError   = -32001
	codeTimeoutError   = -32002
	codeHTTPError      = -32003
	codeContentParse   = -32004
)

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type toolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

type toolCallResult struct {
	Content *data.FetchResult `json:"content"`
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
}

type Server struct {
	Logger *zap.SugaredLogger
	Reader contentreader.ContentReader
}

func NewServer(logger *zap.SugaredLogger, reader contentreader.ContentReader) *Server {
	return &Server{
		Logger: logger,
		Reader: reader,
	}
}

// Serve reads line-delimited JSON-RPC messages from in until EOF. Protocol
// output goes to out only; logging is on stderr via zap.
func (srv *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	encoder := json.NewEncoder(out)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		response := srv.handleMessage(ctx, line)
		if response == nil {
			continue
		}

		if err := encoder.Encode(response); err != nil {
			return err
		}
	}

	return scanner.Err()
}

// handleMessage returns nil for notifications, which get no reply.
func (srv *Server) handleMessage(ctx context.Context, raw []byte) *rpcResponse {
	var request rpcRequest
	if err := json.Unmarshal(raw, &request); err != nil {
		srv.Logger.Warnw("Failed to decode message", "err", err)
		return errorResponse(nil, codeParseError, "Parse error: "+err.Error())
	}

	if len(request.ID) == 0 || string(request.ID) == "null" {
		srv.Logger.Debugw("Ignoring notification", "method", request.Method)
		return nil
	}

	switch request.Method {
	case "initialize":
		return srv.handleInitialize(request)
	case "tools/list":
		return srv.handleToolsList(request)
	case "tools/call":
		return srv.handleToolsCall(ctx, request)
	default:
		srv.Logger.Warnw("Unknown method", "method", request.Method)
		return errorResponse(request.ID, codeMethodNotFound, fmt.Sprintf("Method not found: %s", request.Method))
	}
}

func (srv *Server) handleInitialize(request rpcRequest) *rpcResponse {
	return &rpcResponse{
		JSONRPC: "2.0",
		ID:      request.ID,
		Result: map[string]any{
			"protocolVersion": protocolVersion,
			"capabilities": map[string]any{
				"tools": map[string]any{},
			},
			"serverInfo": map[string]any{
				"name":    serverName,
				"version": config.Version,
			},
		},
	}
}

func (srv *Server) handleToolsList(request rpcRequest) *rpcResponse {
	tool := map[string]any{
		"name":        toolName,
		"description": "Fetch and extract content from web pages. Supports HTML parsing and text extraction.",
		"inputSchema": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"url": map[string]any{
					"type":        "string",
					"description": "The URL to fetch content from",
				},
				"extract_text_only": map[string]any{
					"type":        "boolean",
					"description": "Whether to extract only text content (default: true)",
					"default":     config.DefaultExtractTextOnly,
				},
				"follow_redirects": map[string]any{
					"type":        "boolean",
					"description": "Whether to follow HTTP redirects (default: true)",
					"default":     config.DefaultFollowRedirects,
				},
				"timeout_seconds": map[string]any{
					"type":        "integer",
					"description": "Request timeout in seconds (default: 30, max: 300)",
					"default":     config.DefaultTimeoutSeconds,
					"minimum":     config.MinTimeoutSeconds,
					"maximum":     config.MaxTimeoutSeconds,
				},
				"user_agent": map[string]any{
					"type":        "string",
					"description": "Custom User-Agent header (optional)",
				},
			},
			"required": []string{"url"},
		},
	}

	return &rpcResponse{
		JSONRPC: "2.0",
		ID:      request.ID,
		Result: map[string]any{
			"tools": []any{tool},
		},
	}
}

func (srv *Server) handleToolsCall(ctx context.Context, request rpcRequest) *rpcResponse {
	var params toolCallParams
	if err := json.Unmarshal(request.Params, &params); err != nil {
		return errorResponse(request.ID, codeInvalidParams, "Invalid params: "+err.Error())
	}

	if params.Name != toolName {
		return errorResponse(request.ID, codeMethodNotFound, fmt.Sprintf("Unknown tool: %s", params.Name))
	}

	if len(params.Arguments) == 0 {
		return errorResponse(request.ID, codeInvalidParams, "Missing arguments")
	}

	var fetchRequest data.FetchRequest
	if err := json.Unmarshal(params.Arguments, &fetchRequest); err != nil {
		return errorResponse(request.ID, codeInvalidParams, "Invalid arguments: "+err.Error())
	}

	result, err := srv.Reader.FetchWebContent(ctx, &fetchRequest)
	if err != nil {
		code, message := mapError(err)
		return errorResponse(request.ID, code, message)
	}

	return &rpcResponse{
		JSONRPC: "2.0",
		ID:      request.ID,
		Result: toolCallResult{
			Content: result,
			Success: true,
			Message: "Content fetched successfully",
		},
	}
}

func mapError(err error) (int, string) {
	fetchErr, ok := data.AsFetchError(err)
	if !ok {
		return codeNetworkError, err.Error()
	}

	switch fetchErr.Kind {
	case data.ErrKindInvalidURL:
		return codeInvalidParams, "Invalid parameters: " + fetchErr.Message
	case data.ErrKindTimeout:
		return codeTimeoutError, fetchErr.Error()
	case data.ErrKindHTTP:
		return codeHTTPError, fetchErr.Error()
	case data.ErrKindParse:
		return codeContentParse, fetchErr.Error()
	default:
		return codeNetworkError, fetchErr.Error()
	}
}

func errorResponse(id json.RawMessage, code int, message string) *rpcResponse {
	if id == nil {
		id = json.RawMessage("null")
	}

	return &rpcResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &rpcError{Code: code, Message: message},
	}
}
