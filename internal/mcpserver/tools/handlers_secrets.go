package tools

import (
	"context"

	"github.com/rangelab/rangebridge/internal/mcpserver/client"
)

// HandleUpdateAWSSecrets replaces the stored AWS credential pair on the
// backend. Requires confirm=true since it overwrites working credentials.
func HandleUpdateAWSSecrets(ctx context.Context, tc *Context, args Args) *Result {
	accessKey, err := args.RequireString("aws_access_key")
	if err != nil {
		return ErrorResult("%s", err)
	}
	secretKey, err := args.RequireString("aws_secret_key")
	if err != nil {
		return ErrorResult("%s", err)
	}
	if err := args.RequireConfirm(); err != nil {
		return ErrorResult("%s", err)
	}

	if err := tc.API.UpdateAWSSecrets(ctx, accessKey, secretKey); err != nil {
		return FailureResult("Update AWS secrets", err)
	}

	tc.Logger.Info().Msg("AWS secrets updated")
	return TextResult("AWS secrets updated.", nil)
}

// HandleUpdateAzureSecrets replaces the stored Azure service principal on
// the backend. Requires confirm=true.
func HandleUpdateAzureSecrets(ctx context.Context, tc *Context, args Args) *Result {
	clientID, err := args.RequireString("azure_client_id")
	if err != nil {
		return ErrorResult("%s", err)
	}
	clientSecret, err := args.RequireString("azure_client_secret")
	if err != nil {
		return ErrorResult("%s", err)
	}
	tenantID, err := args.RequireString("azure_tenant_id")
	if err != nil {
		return ErrorResult("%s", err)
	}
	subscriptionID, err := args.RequireString("azure_subscription_id")
	if err != nil {
		return ErrorResult("%s", err)
	}
	if err := args.RequireConfirm(); err != nil {
		return ErrorResult("%s", err)
	}

	secrets := client.AzureSecrets{
		ClientID:       clientID,
		ClientSecret:   clientSecret,
		TenantID:       tenantID,
		SubscriptionID: subscriptionID,
	}
	if err := tc.API.UpdateAzureSecrets(ctx, secrets); err != nil {
		return FailureResult("Update Azure secrets", err)
	}

	tc.Logger.Info().Msg("Azure secrets updated")
	return TextResult("Azure secrets updated.", nil)
}
