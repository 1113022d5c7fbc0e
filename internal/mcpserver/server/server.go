package server

import (
	"context"
	"encoding/json"

	"github.com/rangelab/rangebridge/internal/mcpserver/tools"
	"github.com/rs/zerolog/log"
)

const (
	serverName      = "rangebridge"
	serverVersion   = "0.2.0"
	protocolVersion = "2024-11-05"
)

// Server is the protocol core shared by both transports: it turns raw
// JSON-RPC messages into dispatched tool calls and back
type Server struct {
	dispatcher *Dispatcher
}

// NewServer wraps a dispatcher in the JSON-RPC protocol surface
func NewServer(dispatcher *Dispatcher) *Server {
	return &Server{dispatcher: dispatcher}
}

// Dispatcher returns the underlying dispatcher
func (s *Server) Dispatcher() *Dispatcher {
	return s.dispatcher
}

// HandleMessage processes one raw JSON-RPC message and returns the response,
// or nil for notifications
func (s *Server) HandleMessage(ctx context.Context, data []byte) *JSONRPCResponse {
	var req JSONRPCRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return errorResponse(nil, ParseError, "invalid JSON: "+err.Error())
	}

	if req.JSONRPC != "2.0" {
		return errorResponse(req.ID, InvalidRequest, "invalid jsonrpc version")
	}

	log.Debug().Str("method", req.Method).Msg("handling request")

	switch req.Method {
	case "initialize":
		return resultResponse(req.ID, map[string]any{
			"protocolVersion": protocolVersion,
			"capabilities": map[string]any{
				"tools": map[string]any{},
			},
			"serverInfo": map[string]any{
				"name":    serverName,
				"version": serverVersion,
			},
			"instructions": s.instructions(),
		})

	case "notifications/initialized":
		return nil

	case "ping":
		return resultResponse(req.ID, map[string]any{"status": "ok"})

	case "tools/list":
		return resultResponse(req.ID, map[string]any{
			"tools": s.dispatcher.Registry().List(),
		})

	case "tools/call":
		var inv tools.Invocation
		if err := json.Unmarshal(req.Params, &inv); err != nil || inv.Name == "" {
			return errorResponse(req.ID, InvalidParams, "invalid tool call parameters")
		}
		result := s.dispatcher.Dispatch(ctx, inv)
		if req.IsNotification() {
			return nil
		}
		return resultResponse(req.ID, result)

	default:
		if req.IsNotification() {
			return nil
		}
		return errorResponse(req.ID, MethodNotFound, "method not found: "+req.Method)
	}
}
