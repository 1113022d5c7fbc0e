package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rangelab/rangebridge/internal/mcpserver/config"
	"github.com/rangelab/rangebridge/internal/mcpserver/creds"
)

func TestNewHTTPClient_UsesConfiguredRequestTimeout(t *testing.T) {
	c := NewHTTPClient("http://localhost", creds.Credentials{})
	if c.httpClient.Timeout != config.RequestTimeout() {
		t.Errorf("client timeout %v does not match the configured request timeout %v", c.httpClient.Timeout, config.RequestTimeout())
	}
}

func TestHTTPClient_InjectsBearerAndCorrelation(t *testing.T) {
	var gotAuth, gotCorrelation string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotCorrelation = r.Header.Get("X-Correlation-ID")
		json.NewEncoder(w).Encode([]Range{})
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL, creds.Credentials{AuthToken: "tok123"})
	if _, err := c.ListRanges(context.Background()); err != nil {
		t.Fatalf("ListRanges failed: %v", err)
	}

	if gotAuth != "Bearer tok123" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
	if gotCorrelation == "" {
		t.Error("expected a correlation id header")
	}
}

func TestHTTPClient_AnonymousOmitsBearer(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(&LoginResult{AuthToken: "issued"})
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL, creds.Credentials{})
	result, err := c.Login(context.Background(), "user@example.com", "pw")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("anonymous client must not send a bearer header, got %q", gotAuth)
	}
	if result.AuthToken != "issued" {
		t.Errorf("unexpected login result: %+v", result)
	}
}

func TestHTTPClient_APIErrorCarriesStatusAndMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"message": "admin only"})
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL, creds.Credentials{AuthToken: "tok"})
	_, err := c.GetUserInfo(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != 403 || apiErr.Message != "admin only" {
		t.Errorf("unexpected error: %+v", apiErr)
	}
}

func TestHTTPClient_DeployAndDeleteReturnJobs(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/ranges/deploy":
			var req DeployRequest
			json.NewDecoder(r.Body).Decode(&req)
			if req.Name != "lab1" || req.BlueprintID != 3 {
				t.Errorf("unexpected deploy request: %+v", req)
			}
			json.NewEncoder(w).Encode(&Job{ID: "dep-1", Status: JobStatusQueued})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/v1/ranges/7":
			json.NewEncoder(w).Encode(&Job{ID: "del-1", Status: JobStatusQueued})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL, creds.Credentials{AuthToken: "tok"})

	job, err := c.DeployRange(context.Background(), DeployRequest{Name: "lab1", BlueprintID: 3, Region: "us_east_1"})
	if err != nil || job.ID != "dep-1" {
		t.Errorf("DeployRange: %+v, %v", job, err)
	}

	job, err = c.DeleteRange(context.Background(), 7)
	if err != nil || job.ID != "del-1" {
		t.Errorf("DeleteRange: %+v, %v", job, err)
	}
}

func TestHTTPClient_ListJobsFilter(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]Job{})
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL, creds.Credentials{AuthToken: "tok"})
	if _, err := c.ListJobs(context.Background(), JobStatusInProgress); err != nil {
		t.Fatalf("ListJobs failed: %v", err)
	}
	if gotQuery != "status=in_progress" {
		t.Errorf("unexpected query %q", gotQuery)
	}
}
