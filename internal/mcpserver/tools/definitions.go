package tools

// RegisterAll registers the full tool catalog with the registry. Called once
// at startup; a duplicate name panics and aborts the process.
func RegisterAll(r *Registry) {
	registerRangeTools(r)
	registerBlueprintTools(r)
	registerJobTools(r)
	registerAuthTools(r)
	registerSecretsTools(r)
}

func registerRangeTools(r *Registry) {
	r.MustRegister(Definition{
		Name:        "list_ranges",
		Description: "List all deployed cyber ranges visible to the current user",
		InputSchema: BuildSchema(map[string]any{}, nil),
	}, HandleListRanges)

	r.MustRegister(Definition{
		Name:        "get_range_details",
		Description: "Retrieve details of a deployed range by id",
		InputSchema: BuildSchema(map[string]any{
			"range_id": IntegerSchema("Numeric id of the range"),
		}, []string{"range_id"}),
	}, HandleGetRangeDetails)

	r.MustRegister(Definition{
		Name:        "get_range_key",
		Description: "Retrieve the access key for a deployed range",
		InputSchema: BuildSchema(map[string]any{
			"range_id": IntegerSchema("Numeric id of the range"),
		}, []string{"range_id"}),
	}, HandleGetRangeKey)

	r.MustRegister(Definition{
		Name:        "deploy_range",
		Description: "Deploy a new range from a blueprint. Returns a job id to track with check_job_status.",
		InputSchema: BuildSchema(map[string]any{
			"name":         StringSchema("Name for the new range"),
			"blueprint_id": IntegerSchema("Numeric id of the blueprint to deploy from"),
			"region":       StringSchema("Cloud region to deploy into, e.g. us_east_1"),
			"description":  StringSchema("Optional description of the range"),
		}, []string{"name", "blueprint_id", "region"}),
	}, HandleDeployRange)

	r.MustRegister(Definition{
		Name:        "destroy_range",
		Description: "Tear down a deployed range. Destructive: requires confirm=true. Returns a job id.",
		InputSchema: BuildSchema(map[string]any{
			"range_id": IntegerSchema("Numeric id of the range to destroy"),
			"confirm":  ConfirmSchema(),
		}, []string{"range_id", "confirm"}),
	}, HandleDestroyRange)
}

func registerBlueprintTools(r *Registry) {
	r.MustRegister(Definition{
		Name:        "list_blueprints",
		Description: "List all range blueprints visible to the current user",
		InputSchema: BuildSchema(map[string]any{}, nil),
	}, HandleListBlueprints)

	r.MustRegister(Definition{
		Name:        "get_blueprint_details",
		Description: "Retrieve details of a blueprint by id",
		InputSchema: BuildSchema(map[string]any{
			"blueprint_id": IntegerSchema("Numeric id of the blueprint"),
		}, []string{"blueprint_id"}),
	}, HandleGetBlueprintDetails)

	r.MustRegister(Definition{
		Name:        "create_blueprint",
		Description: "Upload a new range blueprint definition",
		InputSchema: BuildSchema(map[string]any{
			"blueprint": ObjectSchema("Blueprint definition object"),
		}, []string{"blueprint"}),
	}, HandleCreateBlueprint)

	r.MustRegister(Definition{
		Name:        "delete_blueprint",
		Description: "Delete a blueprint. Destructive: requires confirm=true.",
		InputSchema: BuildSchema(map[string]any{
			"blueprint_id": IntegerSchema("Numeric id of the blueprint to delete"),
			"confirm":      ConfirmSchema(),
		}, []string{"blueprint_id", "confirm"}),
	}, HandleDeleteBlueprint)
}

func registerJobTools(r *Registry) {
	r.MustRegister(Definition{
		Name:        "check_job_status",
		Description: "Check the status of an asynchronous deploy/destroy job. Pass wait=true to block until the job finishes or times out.",
		InputSchema: BuildSchema(map[string]any{
			"job_id":          StringSchema("Identifier of the job to check"),
			"wait":            BooleanSchema("Block until the job reaches a terminal state"),
			"timeout_seconds": IntegerSchema("Maximum seconds to wait when wait=true (default 600)"),
		}, []string{"job_id"}),
	}, HandleCheckJobStatus)

	r.MustRegister(Definition{
		Name:        "list_jobs",
		Description: "List asynchronous jobs, optionally filtered by status",
		InputSchema: BuildSchema(map[string]any{
			"status": EnumSchema("Filter by job status", []string{"queued", "in_progress", "complete", "failed"}),
		}, nil),
	}, HandleListJobs)
}

func registerAuthTools(r *Registry) {
	r.MustRegister(Definition{
		Name:        "login",
		Description: "Authenticate with the range backend using email and password",
		InputSchema: BuildSchema(map[string]any{
			"email":    StringSchema("Account email address"),
			"password": StringSchema("Account password"),
		}, []string{"email", "password"}),
		Public: true,
	}, HandleLogin)

	r.MustRegister(Definition{
		Name:        "logout",
		Description: "Invalidate the current credential and clear it from disk. Requires confirm=true.",
		InputSchema: BuildSchema(map[string]any{
			"confirm": ConfirmSchema(),
		}, []string{"confirm"}),
	}, HandleLogout)

	r.MustRegister(Definition{
		Name:        "get_user_info",
		Description: "Show the identity and role behind the current credential",
		InputSchema: BuildSchema(map[string]any{}, nil),
	}, HandleGetUserInfo)
}

func registerSecretsTools(r *Registry) {
	r.MustRegister(Definition{
		Name:        "update_aws_secrets",
		Description: "Replace the stored AWS credentials used for deployments. Destructive: requires confirm=true.",
		InputSchema: BuildSchema(map[string]any{
			"aws_access_key": StringSchema("AWS access key id"),
			"aws_secret_key": StringSchema("AWS secret access key"),
			"confirm":        ConfirmSchema(),
		}, []string{"aws_access_key", "aws_secret_key", "confirm"}),
	}, HandleUpdateAWSSecrets)

	r.MustRegister(Definition{
		Name:        "update_azure_secrets",
		Description: "Replace the stored Azure service principal used for deployments. Destructive: requires confirm=true.",
		InputSchema: BuildSchema(map[string]any{
			"azure_client_id":       StringSchema("Azure client id"),
			"azure_client_secret":   StringSchema("Azure client secret"),
			"azure_tenant_id":       StringSchema("Azure tenant id"),
			"azure_subscription_id": StringSchema("Azure subscription id"),
			"confirm":               ConfirmSchema(),
		}, []string{"azure_client_id", "azure_client_secret", "azure_tenant_id", "azure_subscription_id", "confirm"}),
	}, HandleUpdateAzureSecrets)
}
