package tools

import (
	"errors"
	"testing"
)

func TestArgs_RequireInt_Coercions(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  int
	}{
		{"native int", 42, 42},
		{"float", 42.0, 42},
		{"float truncates toward zero", 42.9, 42},
		{"negative float truncates toward zero", -42.9, -42},
		{"numeric string", "42", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := Args{"range_id": tt.value}
			got, err := args.RequireInt("range_id")
			if err != nil {
				t.Fatalf("RequireInt failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestArgs_RequireInt_Failures(t *testing.T) {
	tests := []struct {
		name string
		args Args
	}{
		{"missing", Args{}},
		{"nil value", Args{"range_id": nil}},
		{"non-numeric string", Args{"range_id": "seven"}},
		{"boolean", Args{"range_id": true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.args.RequireInt("range_id")
			if err == nil {
				t.Fatal("expected error")
			}
			var argErr *ArgError
			if !errors.As(err, &argErr) {
				t.Fatalf("expected *ArgError, got %T", err)
			}
			if argErr.Name != "range_id" {
				t.Errorf("error should name the parameter, got %q", argErr.Name)
			}
		})
	}
}

func TestArgs_RequireBool_Coercions(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"native true", true, true},
		{"native false", false, false},
		{"string true", "true", true},
		{"string false", "false", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := Args{"confirm": tt.value}
			got, err := args.RequireBool("confirm")
			if err != nil {
				t.Fatalf("RequireBool failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestArgs_RequireString(t *testing.T) {
	args := Args{"name": "lab1", "empty": "", "number": 7}

	if s, err := args.RequireString("name"); err != nil || s != "lab1" {
		t.Errorf("got %q, %v", s, err)
	}
	if _, err := args.RequireString("empty"); err == nil {
		t.Error("empty string should fail")
	}
	if _, err := args.RequireString("number"); err == nil {
		t.Error("non-string should fail")
	}
	if _, err := args.RequireString("absent"); err == nil {
		t.Error("missing should fail")
	}
}

func TestArgs_OptionalString(t *testing.T) {
	args := Args{"description": "a lab"}

	if s, err := args.OptionalString("description"); err != nil || s != "a lab" {
		t.Errorf("got %q, %v", s, err)
	}
	if s, err := args.OptionalString("absent"); err != nil || s != "" {
		t.Errorf("absent optional should yield empty, got %q, %v", s, err)
	}
}

func TestArgs_RequireConfirm(t *testing.T) {
	if err := (Args{"confirm": true}).RequireConfirm(); err != nil {
		t.Errorf("confirm=true should pass: %v", err)
	}
	if err := (Args{"confirm": "true"}).RequireConfirm(); err != nil {
		t.Errorf("confirm=\"true\" should pass: %v", err)
	}
	if err := (Args{"confirm": false}).RequireConfirm(); err == nil {
		t.Error("confirm=false must be a validation failure")
	}
	if err := (Args{}).RequireConfirm(); err == nil {
		t.Error("absent confirm must be a validation failure")
	}
}
