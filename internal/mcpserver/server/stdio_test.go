package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"
)

func TestStdioTransport_RequestResponse(t *testing.T) {
	srv := newTestServer(t)

	in := strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}` + "\n")
	var out bytes.Buffer
	transport := NewStdioTransport(srv, in, &out)

	if err := transport.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var resp JSONRPCResponse
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v (output: %s)", err, out.String())
	}
	if resp.Error != nil {
		t.Fatalf("unexpected error response: %+v", resp.Error)
	}
	if string(resp.ID) != "1" {
		t.Errorf("expected id 1, got %s", resp.ID)
	}
}

func TestStdioTransport_MalformedLineDoesNotKillSession(t *testing.T) {
	srv := newTestServer(t)

	input := `{not json}` + "\n" + `{"jsonrpc":"2.0","id":2,"method":"ping"}` + "\n"
	var out bytes.Buffer
	transport := NewStdioTransport(srv, strings.NewReader(input), &out)

	if err := transport.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Both lines get responses: a parse error and the ping result
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 responses, got %d: %s", len(lines), out.String())
	}

	sawParseError := false
	sawPing := false
	for _, line := range lines {
		var resp JSONRPCResponse
		if err := json.Unmarshal([]byte(line), &resp); err != nil {
			t.Fatalf("bad response line: %v", err)
		}
		if resp.Error != nil && resp.Error.Code == ParseError {
			sawParseError = true
		}
		if resp.Error == nil && string(resp.ID) == "2" {
			sawPing = true
		}
	}
	if !sawParseError || !sawPing {
		t.Errorf("expected a parse error and a ping response: %s", out.String())
	}
}

func TestStdioTransport_CancellationStopsCleanly(t *testing.T) {
	srv := newTestServer(t)

	// A reader that never delivers data and never closes
	blocked := make(chan struct{})
	transport := NewStdioTransport(srv, blockingReader{blocked}, &bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- transport.Run(ctx)
	}()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("cancellation must be a clean shutdown, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("transport did not stop after cancellation")
	}
	close(blocked)
}

type blockingReader struct {
	unblock chan struct{}
}

func (r blockingReader) Read(p []byte) (int, error) {
	<-r.unblock
	return 0, io.EOF
}
