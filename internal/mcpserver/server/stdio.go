package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog/log"
)

// StdioTransport frames JSON-RPC messages as newline-delimited JSON over a
// reader/writer pair, normally the process's stdin/stdout. One logical
// session for the process lifetime.
type StdioTransport struct {
	server *Server
	in     io.Reader
	out    io.Writer
}

// NewStdioTransport binds the protocol core to a stream pair
func NewStdioTransport(server *Server, in io.Reader, out io.Writer) *StdioTransport {
	return &StdioTransport{server: server, in: in, out: out}
}

// Run reads requests until the input closes or ctx is cancelled. Each
// request dispatches on its own goroutine so a blocking job wait does not
// stall other calls; the output encoder is serialized.
func (t *StdioTransport) Run(ctx context.Context) error {
	var writeMu sync.Mutex
	encoder := json.NewEncoder(t.out)

	write := func(resp *JSONRPCResponse) {
		if resp == nil {
			return
		}
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := encoder.Encode(resp); err != nil {
			log.Error().Err(err).Msg("failed to write response")
		}
	}

	done := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(t.in)
		scanner.Buffer(make([]byte, 64*1024), 10*1024*1024)

		var wg sync.WaitGroup
		for scanner.Scan() {
			line := make([]byte, len(scanner.Bytes()))
			copy(line, scanner.Bytes())
			if len(line) == 0 {
				continue
			}

			wg.Add(1)
			go func() {
				defer wg.Done()
				write(t.server.HandleMessage(ctx, line))
			}()
		}
		wg.Wait()

		if err := scanner.Err(); err != nil {
			done <- fmt.Errorf("stdin read error: %w", err)
			return
		}
		done <- nil
	}()

	select {
	case <-ctx.Done():
		// Abandoned in-flight calls are acceptable; the protocol is
		// request/response, not durable messaging.
		log.Info().Msg("stdio transport shutting down")
		return nil
	case err := <-done:
		return err
	}
}
