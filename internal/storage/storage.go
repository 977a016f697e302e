package storage

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Store persists generated artifacts and returns the written location.
type Store interface {
	SaveScript(ctx context.Context, filename string, content []byte) (string, error)
	SaveImage(ctx context.Context, filename string, data []byte) (string, error)
	List(ctx context.Context) ([]string, error)
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9]+`)

// ScriptFilename builds the artifact name from a sanitized topic and
// the provider identifier.
func ScriptFilename(topic, providerID string) string {
	return sanitize(topic) + "-" + sanitize(providerID) + ".txt"
}

// ImageFilename builds the artifact name for a storyboard image from
// its topic title and position.
func ImageFilename(title string, index int) string {
	return fmt.Sprintf("%s-%02d.png", sanitize(title), index+1)
}

func sanitize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = unsafeChars.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "script"
	}
	return s
}
