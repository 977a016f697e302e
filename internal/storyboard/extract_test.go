package storyboard

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestExtractTopics(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   []string
	}{
		{
			name:   "numberedList",
			script: "1. Intro\n2. Main Point\n3. Outro",
			want:   []string{"Intro", "Main Point", "Outro"},
		},
		{
			name:   "markdownHeadings",
			script: "# The Hook\nSome text here.\n## Why It Matters\nMore text.\n### Wrapping Up",
			want:   []string{"The Hook", "Why It Matters", "Wrapping Up"},
		},
		{
			name:   "headingsTakePriorityOverNumbers",
			script: "# Overview\n1. should be ignored\n## Details",
			want:   []string{"Overview", "Details"},
		},
		{
			name:   "labeledLines",
			script: "Topic: Getting Started\nsome body text\nSection 2: Deep Dive\nChapter 3 - Conclusions",
			want:   []string{"Getting Started", "Deep Dive", "Conclusions"},
		},
		{
			name:   "parenthesizedNumbers",
			script: "1) First\n2) Second",
			want:   []string{"First", "Second"},
		},
		{
			name:   "formattingStripped",
			script: "1. **Bold Intro**\n2. _Quiet Middle_",
			want:   []string{"Bold Intro", "Quiet Middle"},
		},
		{
			name:   "duplicatesRemoved",
			script: "1. Intro\n2. Intro\n3. Outro",
			want:   []string{"Intro", "Outro"},
		},
		{
			name:   "fallbackFirstSentences",
			script: "The ocean covers most of the planet. It is vast.\n\nWhales sing across entire basins! Few hear them.",
			want:   []string{"The ocean covers most of the planet", "Whales sing across entire basins"},
		},
		{
			name:   "emptyScript",
			script: "",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTopics(tt.script)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractTopicsCap(t *testing.T) {
	var sb strings.Builder
	for i := 1; i <= 30; i++ {
		fmt.Fprintf(&sb, "%d. Topic number %d\n", i, i)
	}

	got := ExtractTopics(sb.String())
	if len(got) != maxTopics {
		t.Fatalf("expected %d topics, got %d", maxTopics, len(got))
	}
	if got[0] != "Topic number 1" || got[maxTopics-1] != fmt.Sprintf("Topic number %d", maxTopics) {
		t.Errorf("cap should keep the first %d topics in order, got first=%q last=%q",
			maxTopics, got[0], got[len(got)-1])
	}
}

func TestExtractTopicsFallbackParagraphLimit(t *testing.T) {
	var sb strings.Builder
	for i := 1; i <= 10; i++ {
		fmt.Fprintf(&sb, "Paragraph %d starts here. And continues.\n\n", i)
	}

	got := ExtractTopics(sb.String())
	if len(got) != maxFallbackParagraphs {
		t.Fatalf("expected %d fallback topics, got %d", maxFallbackParagraphs, len(got))
	}
}

func TestExtractTopicsDeterministic(t *testing.T) {
	script := "# One\ntext\n# Two\nmore\n# Three"

	first := ExtractTopics(script)
	second := ExtractTopics(script)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical input produced different topic lists: %v vs %v", first, second)
	}
}
