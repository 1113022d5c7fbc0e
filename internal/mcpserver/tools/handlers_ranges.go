package tools

import (
	"context"
	"fmt"

	"github.com/rangelab/rangebridge/internal/mcpserver/client"
)

// HandleListRanges lists all deployed ranges visible to the current user
func HandleListRanges(ctx context.Context, tc *Context, args Args) *Result {
	ranges, err := tc.API.ListRanges(ctx)
	if err != nil {
		return FailureResult("List ranges", err)
	}
	if ranges == nil {
		ranges = []client.Range{}
	}
	return TextResult(fmt.Sprintf("Found %d deployed ranges", len(ranges)), ranges)
}

// HandleGetRangeDetails fetches one range by id
func HandleGetRangeDetails(ctx context.Context, tc *Context, args Args) *Result {
	rangeID, err := args.RequireInt("range_id")
	if err != nil {
		return ErrorResult("%s", err)
	}

	r, err := tc.API.GetRange(ctx, rangeID)
	if client.IsNotFound(err) {
		return ErrorResult("Range %d not found. Use list_ranges to see the deployed ranges.", rangeID)
	}
	if err != nil {
		return FailureResult("Get range details", err)
	}
	return TextResult(fmt.Sprintf("Range %d (%s) is %s in %s", r.ID, r.Name, r.State, r.Region), r)
}

// HandleGetRangeKey fetches the access key for a deployed range
func HandleGetRangeKey(ctx context.Context, tc *Context, args Args) *Result {
	rangeID, err := args.RequireInt("range_id")
	if err != nil {
		return ErrorResult("%s", err)
	}

	key, err := tc.API.GetRangeKey(ctx, rangeID)
	if err != nil {
		return FailureResult("Get range key", err)
	}
	return TextResult(fmt.Sprintf("Access key for range %d", rangeID), map[string]string{"key": key})
}

// HandleDeployRange submits a new range deployment and returns the tracking job
func HandleDeployRange(ctx context.Context, tc *Context, args Args) *Result {
	name, err := args.RequireString("name")
	if err != nil {
		return ErrorResult("%s", err)
	}
	blueprintID, err := args.RequireInt("blueprint_id")
	if err != nil {
		return ErrorResult("%s", err)
	}
	region, err := args.RequireString("region")
	if err != nil {
		return ErrorResult("%s", err)
	}
	description, err := args.OptionalString("description")
	if err != nil {
		return ErrorResult("%s", err)
	}

	job, err := tc.API.DeployRange(ctx, client.DeployRequest{
		Name:        name,
		BlueprintID: blueprintID,
		Region:      region,
		Description: description,
	})
	if err != nil {
		return FailureResult("Deploy range", err)
	}

	tc.Logger.Info().Str("jobId", job.ID).Str("name", name).Int("blueprintId", blueprintID).Msg("range deployment submitted")
	return TextResult(fmt.Sprintf("Deployment of range %q submitted as job %s. Use check_job_status to track progress.", name, job.ID), job)
}

// HandleDestroyRange tears down a deployed range. Requires confirm=true.
func HandleDestroyRange(ctx context.Context, tc *Context, args Args) *Result {
	rangeID, err := args.RequireInt("range_id")
	if err != nil {
		return ErrorResult("%s", err)
	}
	if err := args.RequireConfirm(); err != nil {
		return ErrorResult("%s", err)
	}

	job, err := tc.API.DeleteRange(ctx, rangeID)
	if err != nil {
		return FailureResult("Destroy range", err)
	}

	tc.Logger.Info().Str("jobId", job.ID).Int("rangeId", rangeID).Msg("range destroy submitted")
	return TextResult(fmt.Sprintf("Destroy of range %d submitted as job %s. Use check_job_status to track progress.", rangeID, job.ID), job)
}
