package creds

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileYieldsAnonymous(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "credentials.json"))

	c, err := store.Load()
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if !c.IsZero() {
		t.Errorf("expected zero credentials, got %+v", c)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.json")
	store := NewStore(path)

	want := Credentials{AuthToken: "token-abc", EncryptionKey: "key-xyz"}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", got, want)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("credentials file permissions = %o, want 600", perm)
	}
}

func TestSave_ZeroCredentialsClearsStore(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "credentials.json"))

	if err := store.Save(Credentials{AuthToken: "token"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save(Credentials{}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	c, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !c.IsZero() {
		t.Errorf("expected cleared credentials, got %+v", c)
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, []byte(`{not json`), 0o600); err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}

	if _, err := NewStore(path).Load(); err == nil {
		t.Error("expected an error for corrupt credentials file")
	}
}

func TestCredentialsEqual(t *testing.T) {
	a := Credentials{AuthToken: "t", EncryptionKey: "k"}
	if !a.Equal(a) {
		t.Error("identical credentials should be equal")
	}
	if a.Equal(Credentials{AuthToken: "t"}) {
		t.Error("differing encryption key should not be equal")
	}
	if a.Equal(Credentials{AuthToken: "other", EncryptionKey: "k"}) {
		t.Error("differing token should not be equal")
	}
}
