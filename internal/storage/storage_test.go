package storage

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestScriptFilename(t *testing.T) {
	tests := []struct {
		name       string
		topic      string
		providerID string
		want       string
	}{
		{
			name:       "simpleTopic",
			topic:      "golang concurrency",
			providerID: "mistral",
			want:       "golang-concurrency-mistral.txt",
		},
		{
			name:       "specialCharacters",
			topic:      "What is AI? (part 2!)",
			providerID: "openai",
			want:       "what-is-ai-part-2-openai.txt",
		},
		{
			name:       "leadingTrailingNoise",
			topic:      "  --Space Facts--  ",
			providerID: "gemini",
			want:       "space-facts-gemini.txt",
		},
		{
			name:       "emptyTopic",
			topic:      "",
			providerID: "groq",
			want:       "script-groq.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScriptFilename(tt.topic, tt.providerID); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestImageFilename(t *testing.T) {
	if got := ImageFilename("Main Point!", 1); got != "main-point-02.png" {
		t.Errorf("got %q, want %q", got, "main-point-02.png")
	}
	if got := ImageFilename("", 0); got != "script-01.png" {
		t.Errorf("got %q, want %q", got, "script-01.png")
	}
}

func TestLocalStorageSaveScript(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(filepath.Join(dir, "out"))

	path, err := s.SaveScript(context.Background(), "topic-openai.txt", []byte("the script"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("artifact not written: %v", err)
	}
	if string(data) != "the script" {
		t.Errorf("got %q", data)
	}
}

func TestLocalStorageList(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir)
	ctx := context.Background()

	names, err := s.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if names != nil {
		t.Errorf("empty dir should list nothing, got %v", names)
	}

	if _, err := s.SaveScript(ctx, "b-topic-groq.txt", []byte("b")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SaveImage(ctx, "a-topic-1.png", []byte("a")); err != nil {
		t.Fatal(err)
	}

	names, err = s.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"a-topic-1.png", "b-topic-groq.txt"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("got %v, want %v", names, want)
	}
}

func TestLocalStorageListMissingDir(t *testing.T) {
	s := NewLocalStorage(filepath.Join(t.TempDir(), "never-created"))

	names, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("missing output dir should not error: %v", err)
	}
	if names != nil {
		t.Errorf("got %v, want nil", names)
	}
}
