package storyboard

import (
	"regexp"
	"strings"
)

const (
	maxTopics             = 20
	maxFallbackParagraphs = 6
)

var (
	headingPattern  = regexp.MustCompile(`^#{1,6}\s+(.+)$`)
	numberedPattern = regexp.MustCompile(`^\d+[.)]\s+(.+)$`)
	labeledPattern  = regexp.MustCompile(`(?i)^(?:topic|section|chapter|part)\s*\d*\s*[:.\-]\s*(.+)$`)
)

// ExtractTopics parses a generated script into an ordered list of
// section titles. Heuristics are tried in priority order: markdown
// headings, numbered list items, labeled lines, and finally the first
// sentence of up to six paragraphs. The result is deduplicated by exact
// match and capped at twenty entries.
func ExtractTopics(script string) []string {
	lines := strings.Split(script, "\n")

	for _, pattern := range []*regexp.Regexp{headingPattern, numberedPattern, labeledPattern} {
		if topics := matchLines(lines, pattern); len(topics) > 0 {
			return topics
		}
	}

	return fallbackTopics(script)
}

func matchLines(lines []string, pattern *regexp.Regexp) []string {
	var topics []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		matches := pattern.FindStringSubmatch(line)
		if matches == nil {
			continue
		}
		if title := cleanTitle(matches[len(matches)-1]); title != "" {
			topics = append(topics, title)
		}
	}
	return dedupe(topics)
}

func fallbackTopics(script string) []string {
	paragraphs := splitParagraphs(script)
	if len(paragraphs) > maxFallbackParagraphs {
		paragraphs = paragraphs[:maxFallbackParagraphs]
	}

	var topics []string
	for _, p := range paragraphs {
		if title := cleanTitle(firstSentence(p)); title != "" {
			topics = append(topics, title)
		}
	}
	return dedupe(topics)
}

func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block != "" {
			paragraphs = append(paragraphs, block)
		}
	}
	return paragraphs
}

func firstSentence(paragraph string) string {
	if i := strings.IndexAny(paragraph, ".!?"); i >= 0 {
		return paragraph[:i]
	}
	if i := strings.Index(paragraph, "\n"); i >= 0 {
		return paragraph[:i]
	}
	return paragraph
}

func cleanTitle(title string) string {
	title = strings.ReplaceAll(title, "*", "")
	title = strings.ReplaceAll(title, "_", "")
	title = strings.ReplaceAll(title, "~", "")
	return strings.TrimSpace(title)
}

func dedupe(topics []string) []string {
	seen := make(map[string]bool, len(topics))
	out := make([]string, 0, len(topics))
	for _, t := range topics {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
		if len(out) == maxTopics {
			break
		}
	}
	return out
}
