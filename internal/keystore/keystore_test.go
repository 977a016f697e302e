package keystore

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "credentials.yaml"), "")
}

func TestSetGetDelete(t *testing.T) {
	s := tempStore(t)
	ctx := context.Background()

	got, err := s.Get(ctx, "MISTRAL_API_KEY")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("empty store should return empty string, got %q", got)
	}

	if err := s.Set("MISTRAL_API_KEY", "sk-123"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err = s.Get(ctx, "MISTRAL_API_KEY")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "sk-123" {
		t.Errorf("got %q, want %q", got, "sk-123")
	}

	if err := s.Delete("MISTRAL_API_KEY"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, _ = s.Get(ctx, "MISTRAL_API_KEY")
	if got != "" {
		t.Errorf("deleted key should be gone, got %q", got)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	s := tempStore(t)
	if err := s.Set("GROQ_API_KEY", "from-file"); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GROQ_API_KEY", "from-env")

	got, err := s.Get(context.Background(), "GROQ_API_KEY")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "from-env" {
		t.Errorf("got %q, want env value", got)
	}
}

func TestGetReadsFresh(t *testing.T) {
	s := tempStore(t)
	ctx := context.Background()

	if err := s.Set("OPENAI_API_KEY", "first"); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Get(ctx, "OPENAI_API_KEY"); got != "first" {
		t.Fatalf("got %q", got)
	}

	// a second store writing the same file is picked up by the next Get
	other := New(s.Path(), "")
	if err := other.Set("OPENAI_API_KEY", "rotated"); err != nil {
		t.Fatal(err)
	}

	if got, _ := s.Get(ctx, "OPENAI_API_KEY"); got != "rotated" {
		t.Errorf("credential change should take effect on the next read, got %q", got)
	}
}

func TestNames(t *testing.T) {
	s := tempStore(t)
	for _, k := range []string{"GROQ_API_KEY", "ANTHROPIC_API_KEY", "MISTRAL_API_KEY"} {
		if err := s.Set(k, "v"); err != nil {
			t.Fatal(err)
		}
	}

	names, err := s.Names()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"ANTHROPIC_API_KEY", "GROQ_API_KEY", "MISTRAL_API_KEY"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("got %v, want %v", names, want)
	}
}

func TestStoreFilePermissions(t *testing.T) {
	s := tempStore(t)
	if err := s.Set("GEMINI_API_KEY", "secret"); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("store file permissions = %o, want 0600", perm)
	}
}
