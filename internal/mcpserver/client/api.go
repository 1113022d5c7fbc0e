package client

import "context"

// RangeAPI is the backend management API surface the bridge consumes. The
// backend itself (range/blueprint/job storage, cloud orchestration) is an
// external collaborator; each operation is a single synchronous
// request/response returning a typed value or an *APIError.
type RangeAPI interface {
	// Authentication
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context) error
	IsAuthenticated() bool
	GetUserInfo(ctx context.Context) (*User, error)

	// Ranges
	ListRanges(ctx context.Context) ([]Range, error)
	GetRange(ctx context.Context, id int) (*Range, error)
	GetRangeKey(ctx context.Context, id int) (string, error)
	DeployRange(ctx context.Context, req DeployRequest) (*Job, error)
	DeleteRange(ctx context.Context, id int) (*Job, error)

	// Blueprints
	ListBlueprintRanges(ctx context.Context) ([]Blueprint, error)
	GetBlueprintRange(ctx context.Context, id int) (*Blueprint, error)
	CreateBlueprintRange(ctx context.Context, blueprint map[string]any) (*Blueprint, error)
	DeleteBlueprintRange(ctx context.Context, id int) error

	// Cloud provider secrets
	UpdateAWSSecrets(ctx context.Context, accessKey, secretKey string) error
	UpdateAzureSecrets(ctx context.Context, secrets AzureSecrets) error

	// Jobs
	GetJob(ctx context.Context, id string) (*Job, error)
	ListJobs(ctx context.Context, statusFilter string) ([]Job, error)
}
