package tools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rangelab/rangebridge/internal/mcpserver/client"
	"github.com/rangelab/rangebridge/internal/mcpserver/jobs"
)

const defaultWaitTimeout = 10 * time.Minute

// HandleCheckJobStatus reports the current state of an asynchronous job.
// With wait=true the handler blocks (polling) until the job is terminal or
// timeout_seconds elapses; other tool calls keep dispatching meanwhile.
func HandleCheckJobStatus(ctx context.Context, tc *Context, args Args) *Result {
	jobID, err := args.RequireString("job_id")
	if err != nil {
		return ErrorResult("%s", err)
	}
	wait, werr := args.OptionalBool("wait")
	if werr != nil {
		return ErrorResult("%s", werr)
	}

	if wait {
		timeoutSecs, err := args.OptionalInt("timeout_seconds", int(defaultWaitTimeout.Seconds()))
		if err != nil {
			return ErrorResult("%s", err)
		}
		return waitForJob(ctx, tc, jobID, time.Duration(timeoutSecs)*time.Second)
	}

	job, err := tc.API.GetJob(ctx, jobID)
	if err != nil {
		return FailureResult("Check job status", err)
	}
	return renderJob(job)
}

func waitForJob(ctx context.Context, tc *Context, jobID string, timeout time.Duration) *Result {
	job, err := tc.Tracker.WaitForCompletion(ctx, jobID, timeout)
	if err != nil {
		var failed *jobs.FailedError
		if errors.As(err, &failed) {
			return renderJob(failed.Job)
		}
		var timedOut *jobs.TimeoutError
		if errors.As(err, &timedOut) {
			// Timed out is "still unknown", surfaced distinctly from failed
			r := ErrorResult("Timed out after %s waiting for job %s; it may still complete.", timeout, jobID)
			if timedOut.LastJob != nil {
				return TimeoutResultWithJob(r, timedOut.LastJob)
			}
			return r
		}
		return FailureResult("Check job status", err)
	}
	return renderJob(job)
}

// TimeoutResultWithJob appends the last-seen job state to a timeout result
func TimeoutResultWithJob(r *Result, job *client.Job) *Result {
	detail := TextResult(fmt.Sprintf("Last observed status: %s", job.Status), job)
	r.Content = append(r.Content, detail.Content...)
	return r
}

func renderJob(job *client.Job) *Result {
	switch job.Status {
	case client.JobStatusComplete:
		return TextResult(fmt.Sprintf("Job %s completed successfully", job.ID), job)
	case client.JobStatusFailed:
		msg := job.ErrorMessage
		if msg == "" {
			msg = "no error message reported"
		}
		r := ErrorResult("Job %s failed: %s", job.ID, msg)
		detail := TextResult("Job record", job)
		r.Content = append(r.Content, detail.Content...)
		return r
	default:
		return TextResult(fmt.Sprintf("Job %s is %s", job.ID, job.Status), job)
	}
}

// HandleListJobs lists jobs, optionally filtered by status
func HandleListJobs(ctx context.Context, tc *Context, args Args) *Result {
	status, err := args.OptionalString("status")
	if err != nil {
		return ErrorResult("%s", err)
	}
	switch status {
	case "", client.JobStatusQueued, client.JobStatusInProgress, client.JobStatusComplete, client.JobStatusFailed:
	default:
		return ErrorResult("parameter %q must be one of queued, in_progress, complete, failed", "status")
	}

	list, err := tc.API.ListJobs(ctx, status)
	if err != nil {
		return FailureResult("List jobs", err)
	}
	if list == nil {
		list = []client.Job{}
	}
	return TextResult(fmt.Sprintf("Found %d jobs", len(list)), list)
}
