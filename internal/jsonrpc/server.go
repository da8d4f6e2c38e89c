package jsonrpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Server handles JSON-RPC 2.0 requests over a Transport.
type Server struct {
	registry *MethodRegistry
	logger   *slog.Logger
}

// NewServer creates a JSON-RPC server with the given method registry.
func NewServer(registry *MethodRegistry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{registry: registry, logger: logger}
}

// ServeTransport reads requests from the transport and writes responses.
// It runs until the transport's reader returns io.EOF, a read error occurs,
// or ctx is canceled. Requests are handled one at a time in arrival order.
func (s *Server) ServeTransport(ctx context.Context, t *Transport) {
	for {
		if ctx.Err() != nil {
			return
		}

		req, rawJSON, err := t.ReadRequest()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			s.logger.Debug("read error", "error", err)
			resp := &Response{
				JSONRPC: "2.0",
				Error:   ErrParseError(err.Error()),
				ID:      json.RawMessage("null"),
			}
			if writeErr := t.WriteResponse(resp); writeErr != nil {
				s.logger.Debug("write error", "error", writeErr)
			}
			return
		}

		// Notifications (no "id" key) MUST NOT receive a response.
		isNotification := !hasIDField(rawJSON)

		resp := s.dispatch(ctx, req)
		if isNotification {
			continue
		}

		if writeErr := t.WriteResponse(resp); writeErr != nil {
			s.logger.Debug("write error", "error", writeErr)
			return
		}
	}
}

// dispatch validates the request envelope and runs the matching handler.
func (s *Server) dispatch(ctx context.Context, req *Request) *Response {
	resp := &Response{JSONRPC: "2.0", ID: req.ID}

	if req.JSONRPC != "2.0" {
		resp.Error = ErrInvalidRequest("jsonrpc field must be \"2.0\"")
		return resp
	}

	handler := s.registry.Lookup(req.Method)
	if handler == nil {
		resp.Error = ErrMethodNotFound(req.Method)
		return resp
	}

	start := time.Now()
	result, rpcErr := s.call(ctx, handler, req.Params)
	s.logger.Debug("handled request", "method", req.Method,
		"duration", time.Since(start), "failed", rpcErr != nil)

	if rpcErr != nil {
		resp.Error = rpcErr
	} else {
		resp.Result = result
	}
	return resp
}

// call runs a handler, turning a panic into an internal error so one bad
// request cannot take the connection down.
func (s *Server) call(ctx context.Context, h Handler, params json.RawMessage) (result any, rpcErr *Error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("handler panicked", "panic", r)
			result, rpcErr = nil, ErrInternalError(fmt.Sprint(r))
		}
	}()
	return h(ctx, params)
}

// hasIDField checks whether the raw JSON contains an "id" key at the top level.
func hasIDField(raw []byte) bool {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return false
	}
	_, exists := obj["id"]
	return exists
}

// ServeStdio runs the server on stdin/stdout.
func (s *Server) ServeStdio(ctx context.Context, stdin io.Reader, stdout io.Writer) {
	s.ServeTransport(ctx, NewTransport(stdin, stdout))
}
