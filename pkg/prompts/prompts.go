package prompts

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"
)

const defaultPromptsPath = "prompts.yaml"

const (
	defaultAudience       = "general"
	defaultAdditionalInfo = "none"
)

const defaultScriptTemplate = `Write a complete video script about "{{.Topic}}".

Duration: {{.Duration}}
Style: {{.Style}}{{if .StyleKeywords}} (keywords: {{.StyleKeywords}}){{end}}
Language: {{.Language}}
Target audience: {{.Audience}}
Additional instructions: {{.AdditionalInfo}}

Structure the script in six parts and label every section with an approximate
timing:
1. Hook - grab attention in the first seconds
2. Introduction - present the topic and what the viewer will learn
3. Body Sections - the main content, split into clearly titled sections
4. Call-to-action - ask the viewer to like, subscribe or comment
5. Conclusion - recap the key points
6. Outro - closing words and a teaser for the next video`

const defaultImageTemplate = `Create a vivid, high-quality illustration for a video section titled "{{.Topic}}".{{if .Style}} Match a {{.Style}} visual style.{{end}} No text or captions in the image.`

type Prompts struct {
	Script string `yaml:"script"`
	Image  string `yaml:"image"`
}

// ScriptParams carries every form field the script prompt embeds.
// Topic, Duration and Style are expected to be non-empty.
type ScriptParams struct {
	Topic          string
	Duration       string
	Style          string
	StyleKeywords  string
	Language       string
	Audience       string
	AdditionalInfo string
}

type ImageParams struct {
	Topic string
	Style string
}

// Default returns the built-in prompt set.
func Default() *Prompts {
	return &Prompts{
		Script: defaultScriptTemplate,
		Image:  defaultImageTemplate,
	}
}

// Load reads prompts.yaml from the working directory when present,
// falling back to the built-in templates.
func Load() (*Prompts, error) {
	if _, err := os.Stat(defaultPromptsPath); err != nil {
		return Default(), nil
	}
	return LoadFrom(defaultPromptsPath)
}

func LoadFrom(path string) (*Prompts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompts file: %w", err)
	}

	p := Default()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse prompts file: %w", err)
	}

	return p, nil
}

// RenderScript produces the instruction string for a text provider.
// Empty Audience and AdditionalInfo fall back to their defaults, so the
// output is deterministic for any well-formed set of params.
func (p *Prompts) RenderScript(params ScriptParams) (string, error) {
	if params.Audience == "" {
		params.Audience = defaultAudience
	}
	if params.AdditionalInfo == "" {
		params.AdditionalInfo = defaultAdditionalInfo
	}
	return render(p.Script, params)
}

// RenderImage produces the instruction string for an image provider from
// a topic item's current prompt text.
func (p *Prompts) RenderImage(params ImageParams) (string, error) {
	return render(p.Image, params)
}

func render(tmpl string, data any) (string, error) {
	t, err := template.New("prompt").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}
