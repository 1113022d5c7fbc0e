// Package jobs tracks asynchronous backend work (deploy/destroy) by polling
// the job record until it reaches a terminal state or a deadline passes.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rangelab/rangebridge/internal/mcpserver/client"
	"github.com/rs/zerolog/log"
)

// DefaultPollInterval is the cadence for a blocking wait. Callers that poll
// on their own slower schedule pass their cadence to NewTracker instead.
const DefaultPollInterval = 2 * time.Second

// ErrTimeout indicates the polling deadline passed before the job reached a
// terminal state. Distinct from failure: the job outcome is still unknown.
var ErrTimeout = errors.New("timed out waiting for job completion")

// FailedError carries a terminally failed job and its backend error message
type FailedError struct {
	Job *client.Job
}

func (e *FailedError) Error() string {
	if e.Job.ErrorMessage != "" {
		return fmt.Sprintf("job %s failed: %s", e.Job.ID, e.Job.ErrorMessage)
	}
	return fmt.Sprintf("job %s failed", e.Job.ID)
}

// TimeoutError wraps ErrTimeout with the last-seen job state, when any poll
// succeeded before the deadline
type TimeoutError struct {
	JobID   string
	LastJob *client.Job
}

func (e *TimeoutError) Error() string {
	if e.LastJob != nil {
		return fmt.Sprintf("timed out waiting for job %s (last status: %s)", e.JobID, e.LastJob.Status)
	}
	return fmt.Sprintf("timed out waiting for job %s", e.JobID)
}

func (e *TimeoutError) Unwrap() error { return ErrTimeout }

// Tracker polls a RangeAPI for job state
type Tracker struct {
	api      client.RangeAPI
	interval time.Duration
}

// NewTracker creates a tracker with the given poll interval. A zero or
// negative interval falls back to DefaultPollInterval.
func NewTracker(api client.RangeAPI, interval time.Duration) *Tracker {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Tracker{api: api, interval: interval}
}

// WaitForCompletion blocks until the job reaches a terminal state, the
// timeout elapses, or ctx is cancelled. Only the calling handler suspends;
// other tool calls keep dispatching.
//
// Returns the job on completion. A failed job returns the job alongside a
// *FailedError. Past the deadline it returns a *TimeoutError carrying the
// last-seen job. Unrecognized status values fail fast rather than looping.
func (t *Tracker) WaitForCompletion(ctx context.Context, jobID string, timeout time.Duration) (*client.Job, error) {
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	var lastJob *client.Job

	for {
		job, err := t.api.GetJob(ctx, jobID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch job %s: %w", jobID, err)
		}
		lastJob = job

		switch job.Status {
		case client.JobStatusComplete:
			log.Debug().Str("jobId", jobID).Msg("job completed")
			return job, nil
		case client.JobStatusFailed:
			return job, &FailedError{Job: job}
		case client.JobStatusQueued, client.JobStatusInProgress:
			// keep polling
		default:
			return nil, fmt.Errorf("job %s reported unrecognized status %q", jobID, job.Status)
		}

		if time.Now().After(deadline) {
			return lastJob, &TimeoutError{JobID: jobID, LastJob: lastJob}
		}

		select {
		case <-ctx.Done():
			return lastJob, ctx.Err()
		case <-ticker.C:
		}
	}
}

// IsComplete is the non-blocking point-in-time check: true iff the job is
// terminal (complete or failed)
func (t *Tracker) IsComplete(ctx context.Context, jobID string) (bool, error) {
	job, err := t.api.GetJob(ctx, jobID)
	if err != nil {
		return false, err
	}
	return job.Terminal(), nil
}

// Status returns the job's current status string
func (t *Tracker) Status(ctx context.Context, jobID string) (string, error) {
	job, err := t.api.GetJob(ctx, jobID)
	if err != nil {
		return "", err
	}
	return job.Status, nil
}
