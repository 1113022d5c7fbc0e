package tools

import (
	"context"
	"fmt"

	"github.com/rangelab/rangebridge/internal/mcpserver/client"
	"github.com/rangelab/rangebridge/internal/mcpserver/creds"
)

// HandleLogin exchanges email/password for a bearer credential and writes it
// to the credential store. The only tool that bypasses the auth gate.
func HandleLogin(ctx context.Context, tc *Context, args Args) *Result {
	email, err := args.RequireString("email")
	if err != nil {
		return ErrorResult("%s", err)
	}
	password, err := args.RequireString("password")
	if err != nil {
		return ErrorResult("%s", err)
	}

	result, err := tc.API.Login(ctx, email, password)
	if err != nil {
		return FailureResult("Login", err)
	}

	if err := tc.Store.Save(creds.Credentials{
		AuthToken:     result.AuthToken,
		EncryptionKey: result.EncryptionKey,
	}); err != nil {
		return FailureResult("Login", err)
	}

	tc.Logger.Info().Str("email", email).Msg("logged in")

	summary := fmt.Sprintf("Logged in as %s. The new credential takes effect on the next tool call.", email)
	if result.User != nil && result.User.Admin {
		summary = fmt.Sprintf("Logged in as %s (administrator). The new credential takes effect on the next tool call.", email)
	}
	return TextResult(summary, result.User)
}

// HandleLogout invalidates the current credential on the backend and clears
// the store. Requires confirm=true.
func HandleLogout(ctx context.Context, tc *Context, args Args) *Result {
	if err := args.RequireConfirm(); err != nil {
		return ErrorResult("%s", err)
	}

	if err := tc.API.Logout(ctx); err != nil {
		return FailureResult("Logout", err)
	}

	if err := tc.Store.Save(creds.Credentials{}); err != nil {
		return FailureResult("Logout", err)
	}

	tc.Logger.Info().Msg("logged out")
	return TextResult("Logged out. Stored credentials cleared.", nil)
}

// HandleGetUserInfo resolves the identity behind the current credential
func HandleGetUserInfo(ctx context.Context, tc *Context, args Args) *Result {
	user, err := tc.API.GetUserInfo(ctx)
	if client.IsUnauthorized(err) {
		return ErrorResult("The stored credential was rejected by the backend. Use the login tool to re-authenticate.")
	}
	if err != nil {
		return FailureResult("Get user info", err)
	}

	role := "standard user"
	if user.Admin {
		role = "administrator"
	}
	return TextResult(fmt.Sprintf("Authenticated as %s (%s)", user.Email, role), user)
}
