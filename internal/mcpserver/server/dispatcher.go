package server

import (
	"context"
	"sync"
	"time"

	"github.com/rangelab/rangebridge/internal/mcpserver/client"
	"github.com/rangelab/rangebridge/internal/mcpserver/creds"
	"github.com/rangelab/rangebridge/internal/mcpserver/jobs"
	"github.com/rangelab/rangebridge/internal/mcpserver/tools"
	"github.com/rs/zerolog/log"
)

// APIFactory builds a backend adapter bound to one credential pair. The
// reconciler calls it whenever credentials change on disk.
type APIFactory func(creds.Credentials) client.RangeAPI

// Dispatcher routes tool invocations to registered handlers, enforcing the
// authentication gate and credential reconciliation in front of every
// non-public tool.
type Dispatcher struct {
	registry     *tools.Registry
	store        *creds.Store
	buildAPI     APIFactory
	pollInterval time.Duration

	// The active adapter and the credentials it was built from. Guarded so
	// a reconciliation swap never hands a concurrent call a half-updated
	// adapter.
	mu          sync.RWMutex
	api         client.RangeAPI
	credentials creds.Credentials
}

// NewDispatcher constructs a dispatcher with the initial credentials read
// from the store
func NewDispatcher(registry *tools.Registry, store *creds.Store, buildAPI APIFactory, pollInterval time.Duration) (*Dispatcher, error) {
	current, err := store.Load()
	if err != nil {
		return nil, err
	}

	return &Dispatcher{
		registry:     registry,
		store:        store,
		buildAPI:     buildAPI,
		pollInterval: pollInterval,
		api:          buildAPI(current),
		credentials:  current,
	}, nil
}

// Registry exposes the tool catalog for tools/list
func (d *Dispatcher) Registry() *tools.Registry {
	return d.registry
}

// Dispatch routes one invocation to its handler. Every path returns a
// well-formed result; handler failures never escape as errors or panics.
func (d *Dispatcher) Dispatch(ctx context.Context, inv tools.Invocation) (result *tools.Result) {
	def, handler, ok := d.registry.Lookup(inv.Name)
	if !ok {
		return tools.ErrorResult("Unknown tool: %s", inv.Name)
	}

	logger := log.With().Str("tool", inv.Name).Logger()

	api := d.snapshot()
	if !def.Public {
		api, ok = d.ensureAuthenticated(api)
		if !ok {
			return tools.ErrorResult("Not authenticated. Use the login tool with your email and password, or log in via the CLI, then retry.")
		}
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("tool handler panicked")
			result = tools.ErrorResult("Internal error while executing %s", inv.Name)
		}
	}()

	tc := &tools.Context{
		API:     api,
		Tracker: jobs.NewTracker(api, d.pollInterval),
		Store:   d.store,
		Logger:  logger,
	}

	result = handler(ctx, tc, tools.Args(inv.Arguments))

	if result.IsError {
		logger.Debug().Msg("tool call returned error result")
	}
	return result
}

// snapshot returns the active adapter under the read lock
func (d *Dispatcher) snapshot() client.RangeAPI {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.api
}

// ensureAuthenticated is the auth gate. If the current adapter is not
// authenticated it re-reads the credential store once; a changed credential
// is swapped in atomically and authentication re-checked. At most one
// reconciliation per call; a call still unauthenticated afterwards is
// rejected and the next call tries again.
func (d *Dispatcher) ensureAuthenticated(api client.RangeAPI) (client.RangeAPI, bool) {
	if api.IsAuthenticated() {
		return api, true
	}

	fresh, err := d.store.Load()
	if err != nil {
		log.Warn().Err(err).Msg("failed to re-read credential store")
		return api, false
	}

	d.mu.Lock()
	if !fresh.Equal(d.credentials) {
		d.api = d.buildAPI(fresh)
		d.credentials = fresh
		log.Info().Str("identity", client.DecodeIdentity(fresh.AuthToken).Role()).Msg("credentials reloaded")
	}
	api = d.api
	d.mu.Unlock()

	return api, api.IsAuthenticated()
}

// Identity describes who the currently loaded credential belongs to
func (d *Dispatcher) Identity() client.Identity {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return client.DecodeIdentity(d.credentials.AuthToken)
}
