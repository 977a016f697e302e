package provider

import "errors"

// Failure modes shared by the text and image dispatchers.
var (
	// ErrMissingCredential means no API key was found for the provider;
	// the caller is expected to prompt for one before dispatching again.
	ErrMissingCredential = errors.New("missing api key")

	// ErrUnexpectedResponse means the provider returned a 2xx body that
	// does not contain the generated content at the expected path.
	ErrUnexpectedResponse = errors.New("unexpected response shape")

	// ErrNotSupported is returned by catalog entries whose adapter is a
	// declared stub.
	ErrNotSupported = errors.New("integration coming soon")

	// ErrUnsupportedProvider means the requested id is not in the catalog
	// at all. Dispatchers return it before building any adapter.
	ErrUnsupportedProvider = errors.New("unsupported provider")
)

type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// Descriptor is an immutable catalog entry for a generation provider.
type Descriptor struct {
	ID      string
	Name    string
	Icon    string
	Kind    Kind
	BaseURL string
	KeyName string
	KeyURL  string
}

// catalog is fixed at process start. Order is the order providers are
// offered in the UI.
var catalog = []Descriptor{
	{
		ID:      "gemini",
		Name:    "Google Gemini",
		Icon:    "✦",
		Kind:    KindText,
		BaseURL: "https://generativelanguage.googleapis.com/v1beta",
		KeyName: "GEMINI_API_KEY",
		KeyURL:  "https://aistudio.google.com/apikey",
	},
	{
		ID:      "openai",
		Name:    "OpenAI",
		Icon:    "◎",
		Kind:    KindText,
		BaseURL: "https://api.openai.com/v1",
		KeyName: "OPENAI_API_KEY",
		KeyURL:  "https://platform.openai.com/api-keys",
	},
	{
		ID:      "anthropic",
		Name:    "Anthropic Claude",
		Icon:    "✳",
		Kind:    KindText,
		BaseURL: "https://api.anthropic.com/v1",
		KeyName: "ANTHROPIC_API_KEY",
		KeyURL:  "https://console.anthropic.com/settings/keys",
	},
	{
		ID:      "mistral",
		Name:    "Mistral AI",
		Icon:    "◈",
		Kind:    KindText,
		BaseURL: "https://api.mistral.ai/v1",
		KeyName: "MISTRAL_API_KEY",
		KeyURL:  "https://console.mistral.ai/api-keys",
	},
	{
		ID:      "groq",
		Name:    "Groq",
		Icon:    "⚡",
		Kind:    KindText,
		BaseURL: "https://api.groq.com/openai/v1",
		KeyName: "GROQ_API_KEY",
		KeyURL:  "https://console.groq.com/keys",
	},
	{
		ID:      "openai-images",
		Name:    "OpenAI Images",
		Icon:    "▣",
		Kind:    KindImage,
		BaseURL: "https://api.openai.com/v1",
		KeyName: "OPENAI_API_KEY",
		KeyURL:  "https://platform.openai.com/api-keys",
	},
	{
		ID:      "stability",
		Name:    "Stability AI",
		Icon:    "◌",
		Kind:    KindImage,
		BaseURL: "https://api.stability.ai",
		KeyName: "STABILITY_API_KEY",
		KeyURL:  "https://platform.stability.ai/account/keys",
	},
}

// All returns the full ordered catalog.
func All() []Descriptor {
	out := make([]Descriptor, len(catalog))
	copy(out, catalog)
	return out
}

// Text returns the text-generation providers in catalog order.
func Text() []Descriptor {
	return byKind(KindText)
}

// Image returns the image-generation providers in catalog order.
func Image() []Descriptor {
	return byKind(KindImage)
}

func byKind(kind Kind) []Descriptor {
	var out []Descriptor
	for _, d := range catalog {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// Lookup returns the descriptor for id. Lookup is total for every
// identifier the UI can produce; a miss is a configuration error.
func Lookup(id string) (Descriptor, bool) {
	for _, d := range catalog {
		if d.ID == id {
			return d, true
		}
	}
	return Descriptor{}, false
}
