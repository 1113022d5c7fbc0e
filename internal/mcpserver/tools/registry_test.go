package tools

import (
	"context"
	"testing"
)

func noopHandler(ctx context.Context, tc *Context, args Args) *Result {
	return TextResult("ok", nil)
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(Definition{Name: "list_ranges"}, noopHandler); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if err := r.Register(Definition{Name: "list_ranges"}, noopHandler); err == nil {
		t.Fatal("duplicate name must be a registration error")
	}
}

func TestRegistry_EmptyNameAndNilHandler(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(Definition{Name: ""}, noopHandler); err == nil {
		t.Error("empty name must fail")
	}
	if err := r.Register(Definition{Name: "x"}, nil); err == nil {
		t.Error("nil handler must fail")
	}
}

func TestRegistry_ListPreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	names := []string{"charlie", "alpha", "bravo"}
	for _, name := range names {
		if err := r.Register(Definition{Name: name}, noopHandler); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	list := r.List()
	if len(list) != len(names) {
		t.Fatalf("expected %d descriptors, got %d", len(names), len(list))
	}
	for i, name := range names {
		if list[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, list[i].Name)
		}
	}
}

func TestRegistry_LookupMiss(t *testing.T) {
	r := NewRegistry()
	if _, _, ok := r.Lookup("nope"); ok {
		t.Error("unknown name must be a lookup miss")
	}
}

func TestRegisterAll_CatalogComplete(t *testing.T) {
	r := NewRegistry()
	RegisterAll(r)

	expected := []string{
		"list_ranges", "get_range_details", "get_range_key",
		"list_blueprints", "get_blueprint_details",
		"check_job_status", "list_jobs", "get_user_info",
		"deploy_range", "destroy_range",
		"create_blueprint", "delete_blueprint",
		"update_aws_secrets", "update_azure_secrets",
		"login", "logout",
	}

	for _, name := range expected {
		def, _, ok := r.Lookup(name)
		if !ok {
			t.Errorf("catalog is missing %s", name)
			continue
		}
		if def.InputSchema == nil {
			t.Errorf("%s has no input schema", name)
		}
	}

	// Only login bypasses the auth gate
	for _, desc := range r.List() {
		def, _, _ := r.Lookup(desc.Name)
		if def.Public != (desc.Name == "login") {
			t.Errorf("%s: unexpected Public=%v", desc.Name, def.Public)
		}
	}
}
