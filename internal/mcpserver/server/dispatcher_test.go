package server

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rangelab/rangebridge/internal/mcpserver/client"
	"github.com/rangelab/rangebridge/internal/mcpserver/creds"
	"github.com/rangelab/rangebridge/internal/mcpserver/tools"
)

// gateAPI implements just enough of RangeAPI to exercise the dispatcher;
// unimplemented methods panic via the embedded nil interface
type gateAPI struct {
	client.RangeAPI

	auth  bool
	calls int
}

func (g *gateAPI) IsAuthenticated() bool { return g.auth }

func (g *gateAPI) ListRanges(context.Context) ([]client.Range, error) {
	g.calls++
	return nil, nil
}

func (g *gateAPI) Login(_ context.Context, email, password string) (*client.LoginResult, error) {
	g.calls++
	return &client.LoginResult{AuthToken: "tok"}, nil
}

func resultText(r *tools.Result) string {
	var parts []string
	for _, block := range r.Content {
		parts = append(parts, block.Text)
	}
	return strings.Join(parts, "\n")
}

// newTestDispatcher builds a dispatcher whose factory yields an
// authenticated adapter iff the store holds a non-zero credential
func newTestDispatcher(t *testing.T) (*Dispatcher, *creds.Store, *[]*gateAPI) {
	t.Helper()

	registry := tools.NewRegistry()
	tools.RegisterAll(registry)

	store := creds.NewStore(filepath.Join(t.TempDir(), "credentials.json"))

	var built []*gateAPI
	factory := func(c creds.Credentials) client.RangeAPI {
		api := &gateAPI{auth: !c.IsZero()}
		built = append(built, api)
		return api
	}

	d, err := NewDispatcher(registry, store, factory, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("NewDispatcher failed: %v", err)
	}
	return d, store, &built
}

func TestDispatch_UnknownTool(t *testing.T) {
	d, _, _ := newTestDispatcher(t)

	result := d.Dispatch(context.Background(), tools.Invocation{Name: "launch_missiles"})

	if !result.IsError {
		t.Fatal("unknown tool must yield an error result, never a transport fault")
	}
	if !strings.Contains(resultText(result), "Unknown tool: launch_missiles") {
		t.Errorf("unexpected message: %s", resultText(result))
	}
}

func TestDispatch_AuthGateRejectsWithoutCredential(t *testing.T) {
	d, _, built := newTestDispatcher(t)

	result := d.Dispatch(context.Background(), tools.Invocation{
		Name: "deploy_range",
		Arguments: map[string]any{
			"name": "lab1", "blueprint_id": 3, "region": "us_east_1",
		},
	})

	if !result.IsError {
		t.Fatal("expected auth error result")
	}
	if !strings.Contains(resultText(result), "Not authenticated") {
		t.Errorf("expected auth guidance, got: %s", resultText(result))
	}
	for _, api := range *built {
		if api.calls != 0 {
			t.Errorf("expected zero backend calls, got %d", api.calls)
		}
	}
}

func TestDispatch_LoginBypassesGate(t *testing.T) {
	d, store, _ := newTestDispatcher(t)

	result := d.Dispatch(context.Background(), tools.Invocation{
		Name: "login",
		Arguments: map[string]any{
			"email": "user@example.com", "password": "hunter2",
		},
	})

	if result.IsError {
		t.Fatalf("login should not be gated: %s", resultText(result))
	}

	saved, err := store.Load()
	if err != nil || saved.AuthToken != "tok" {
		t.Errorf("login should persist the credential: %+v, %v", saved, err)
	}
}

func TestDispatch_ReconcilesFreshCredential(t *testing.T) {
	d, store, built := newTestDispatcher(t)

	// Simulate a login performed by a separate CLI invocation
	if err := store.Save(creds.Credentials{AuthToken: "fresh-token"}); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	result := d.Dispatch(context.Background(), tools.Invocation{Name: "list_ranges"})

	if result.IsError {
		t.Fatalf("expected reconciliation to authenticate the call: %s", resultText(result))
	}
	if len(*built) != 2 {
		t.Fatalf("expected a rebuilt adapter, factory ran %d times", len(*built))
	}
	if (*built)[1].calls != 1 {
		t.Errorf("rebuilt adapter should have served the call, got %d calls", (*built)[1].calls)
	}
}

func TestDispatch_ReconciliationHappensOncePerCall(t *testing.T) {
	d, _, built := newTestDispatcher(t)

	// No newer credential is discoverable; two calls, each reconciles once
	d.Dispatch(context.Background(), tools.Invocation{Name: "list_ranges"})
	d.Dispatch(context.Background(), tools.Invocation{Name: "list_ranges"})

	// Credentials never changed, so the factory only ran at construction
	if len(*built) != 1 {
		t.Errorf("unchanged credentials must not rebuild the adapter, factory ran %d times", len(*built))
	}
}

func TestDispatch_HandlerPanicIsContained(t *testing.T) {
	registry := tools.NewRegistry()
	registry.MustRegister(tools.Definition{Name: "boom", Public: true}, func(context.Context, *tools.Context, tools.Args) *tools.Result {
		panic("kaboom")
	})

	store := creds.NewStore(filepath.Join(t.TempDir(), "credentials.json"))
	d, err := NewDispatcher(registry, store, func(c creds.Credentials) client.RangeAPI {
		return &gateAPI{}
	}, time.Millisecond)
	if err != nil {
		t.Fatalf("NewDispatcher failed: %v", err)
	}

	result := d.Dispatch(context.Background(), tools.Invocation{Name: "boom"})
	if result == nil || !result.IsError {
		t.Fatal("a panicking handler must still produce a well-formed error result")
	}
}
