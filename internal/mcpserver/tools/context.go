package tools

import (
	"github.com/rangelab/rangebridge/internal/mcpserver/client"
	"github.com/rangelab/rangebridge/internal/mcpserver/creds"
	"github.com/rangelab/rangebridge/internal/mcpserver/jobs"
	"github.com/rs/zerolog"
)

// Context carries per-invocation dependencies into handlers. The dispatcher
// builds one per call with a snapshot of the current backend adapter, so a
// concurrent credential reload never hands a handler a half-updated client.
type Context struct {
	API     client.RangeAPI
	Tracker *jobs.Tracker
	Store   *creds.Store
	Logger  zerolog.Logger
}
