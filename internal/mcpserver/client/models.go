package client

import (
	"encoding/json"
	"time"
)

// Job status values reported by the backend. Lifecycle is monotonic:
// queued -> in_progress -> {complete|failed}.
const (
	JobStatusQueued     = "queued"
	JobStatusInProgress = "in_progress"
	JobStatusComplete   = "complete"
	JobStatusFailed     = "failed"
)

// Job is an asynchronous unit of backend work (deploy/destroy), tracked by
// polling. The backend owns and mutates it; the bridge only reads.
type Job struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Status       string          `json:"status"`
	EnqueueTime  time.Time       `json:"enqueueTime"`
	StartTime    *time.Time      `json:"startTime,omitempty"`
	FinishTime   *time.Time      `json:"finishTime,omitempty"`
	Result       json.RawMessage `json:"result,omitempty"`
	ErrorMessage string          `json:"errorMessage,omitempty"`
}

// Terminal reports whether the job has reached a final state
func (j *Job) Terminal() bool {
	return j.Status == JobStatusComplete || j.Status == JobStatusFailed
}

// Range is a deployed cyber-training environment. Opaque to the bridge
// beyond identity and display fields.
type Range struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	BlueprintID int       `json:"blueprintId"`
	Region      string    `json:"region"`
	State       string    `json:"state"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Blueprint is a declarative template a range is deployed from
type Blueprint struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Provider    string          `json:"provider,omitempty"`
	Spec        json.RawMessage `json:"spec,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// User is the identity the backend resolves for the current credential
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Admin bool   `json:"admin"`
}

// DeployRequest submits a new range deployment
type DeployRequest struct {
	Name        string `json:"name"`
	BlueprintID int    `json:"blueprintId"`
	Region      string `json:"region"`
	Description string `json:"description,omitempty"`
}

// LoginResult carries the credential material issued by a successful login
type LoginResult struct {
	AuthToken     string `json:"authToken"`
	EncryptionKey string `json:"encryptionKey,omitempty"`
	User          *User  `json:"user,omitempty"`
}

// AzureSecrets is the Azure service principal credential set
type AzureSecrets struct {
	ClientID       string `json:"clientId"`
	ClientSecret   string `json:"clientSecret"`
	TenantID       string `json:"tenantId"`
	SubscriptionID string `json:"subscriptionId"`
}
