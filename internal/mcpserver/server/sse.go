package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const maxMessageBody = 1024 * 1024

// sseSession is one connected SSE client. The outbox buffers responses
// between a POST /message dispatch and the event stream writer.
type sseSession struct {
	id     string
	outbox chan *JSONRPCResponse
}

// SSETransport exposes the protocol over HTTP: GET /sse for the
// server-to-client event stream, POST /message for tool calls.
type SSETransport struct {
	server        *Server
	port          int
	shutdownGrace time.Duration

	mu         sync.RWMutex
	sessions   map[string]*sseSession
	listenAddr string
}

// NewSSETransport binds the protocol core to an HTTP listener on port
func NewSSETransport(server *Server, port int, shutdownGrace time.Duration) *SSETransport {
	return &SSETransport{
		server:        server,
		port:          port,
		shutdownGrace: shutdownGrace,
		sessions:      make(map[string]*sseSession),
	}
}

// Run serves until ctx is cancelled (graceful shutdown, nil return) or the
// listener fails (fatal transport error)
func (t *SSETransport) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", t.port))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	t.mu.Lock()
	t.listenAddr = ln.Addr().String()
	t.mu.Unlock()

	httpServer := &http.Server{
		Handler:     t.routes(),
		ReadTimeout: 30 * time.Second,
		// Request contexts derive from the run context, so cancellation
		// reaches open event streams and Shutdown does not stall waiting
		// for connected clients to hang up on their own.
		BaseContext: func(net.Listener) context.Context { return ctx },
		// WriteTimeout is omitted: SSE streams stay open indefinitely
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Msg("SSE transport listening")
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), t.shutdownGrace)
		defer cancel()
		log.Info().Msg("SSE transport shutting down")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// addr reports the bound listen address once Run has opened the listener
func (t *SSETransport) addr() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.listenAddr
}

func (t *SSETransport) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/sse", t.handleSSE)
	r.Post("/message", t.handleMessage)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

// handleSSE establishes the event stream. The opening endpoint event tells
// the client where to POST its messages.
func (t *SSETransport) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	session := &sseSession{
		id:     uuid.New().String(),
		outbox: make(chan *JSONRPCResponse, 16),
	}

	t.mu.Lock()
	t.sessions[session.id] = session
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		delete(t.sessions, session.id)
		t.mu.Unlock()
		log.Info().Str("sessionId", session.id).Msg("SSE session closed")
	}()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache, no-transform")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	fmt.Fprintf(w, "event: endpoint\ndata: /message?session_id=%s\n\n", session.id)
	flusher.Flush()

	log.Info().Str("sessionId", session.id).Msg("SSE session established")

	eventID := 0
	for {
		select {
		case <-r.Context().Done():
			return
		case resp := <-session.outbox:
			data, err := json.Marshal(resp)
			if err != nil {
				log.Error().Err(err).Msg("failed to encode SSE event")
				continue
			}
			eventID++
			fmt.Fprintf(w, "event: message\nid: %d\ndata: %s\n\n", eventID, data)
			flusher.Flush()
		}
	}
}

// handleMessage accepts one tool call, dispatches it, and pushes the
// response onto the session's event stream
func (t *SSETransport) handleMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		http.Error(w, "missing session_id", http.StatusBadRequest)
		return
	}

	t.mu.RLock()
	session, ok := t.sessions[sessionID]
	t.mu.RUnlock()
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxMessageBody))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	resp := t.server.HandleMessage(r.Context(), body)
	if resp != nil {
		select {
		case session.outbox <- resp:
		default:
			// A backlogged stream means the response would be lost; tell
			// the client instead of acknowledging a delivery that never
			// happens.
			log.Warn().Str("sessionId", sessionID).Msg("session outbox full, rejecting message")
			http.Error(w, "session stream backlogged", http.StatusServiceUnavailable)
			return
		}
	}

	w.WriteHeader(http.StatusAccepted)
}
