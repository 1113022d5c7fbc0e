package tools

import (
	"context"
	"fmt"

	"github.com/rangelab/rangebridge/internal/mcpserver/client"
)

// HandleListBlueprints lists all blueprints visible to the current user
func HandleListBlueprints(ctx context.Context, tc *Context, args Args) *Result {
	blueprints, err := tc.API.ListBlueprintRanges(ctx)
	if err != nil {
		return FailureResult("List blueprints", err)
	}
	if blueprints == nil {
		blueprints = []client.Blueprint{}
	}
	return TextResult(fmt.Sprintf("Found %d blueprints", len(blueprints)), blueprints)
}

// HandleGetBlueprintDetails fetches one blueprint by id
func HandleGetBlueprintDetails(ctx context.Context, tc *Context, args Args) *Result {
	blueprintID, err := args.RequireInt("blueprint_id")
	if err != nil {
		return ErrorResult("%s", err)
	}

	b, err := tc.API.GetBlueprintRange(ctx, blueprintID)
	if client.IsNotFound(err) {
		return ErrorResult("Blueprint %d not found. Use list_blueprints to see the available blueprints.", blueprintID)
	}
	if err != nil {
		return FailureResult("Get blueprint details", err)
	}
	return TextResult(fmt.Sprintf("Blueprint %d (%s)", b.ID, b.Name), b)
}

// HandleCreateBlueprint uploads a new blueprint definition
func HandleCreateBlueprint(ctx context.Context, tc *Context, args Args) *Result {
	blueprint, err := args.RequireObject("blueprint")
	if err != nil {
		return ErrorResult("%s", err)
	}

	created, err := tc.API.CreateBlueprintRange(ctx, blueprint)
	if err != nil {
		return FailureResult("Create blueprint", err)
	}
	return TextResult(fmt.Sprintf("Created blueprint %d (%s)", created.ID, created.Name), created)
}

// HandleDeleteBlueprint removes a blueprint. Requires confirm=true.
func HandleDeleteBlueprint(ctx context.Context, tc *Context, args Args) *Result {
	blueprintID, err := args.RequireInt("blueprint_id")
	if err != nil {
		return ErrorResult("%s", err)
	}
	if err := args.RequireConfirm(); err != nil {
		return ErrorResult("%s", err)
	}

	if err := tc.API.DeleteBlueprintRange(ctx, blueprintID); err != nil {
		return FailureResult("Delete blueprint", err)
	}

	tc.Logger.Info().Int("blueprintId", blueprintID).Msg("blueprint deleted")
	return TextResult(fmt.Sprintf("Deleted blueprint %d", blueprintID), nil)
}
