package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"scriptforge/internal/imagegen"
	"scriptforge/internal/keystore"
	"scriptforge/internal/llm"
	"scriptforge/internal/provider"
	"scriptforge/internal/storage"
	"scriptforge/internal/storyboard"
	"scriptforge/pkg/config"
	"scriptforge/pkg/prompts"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a script through an interactive form",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

type generateInput struct {
	params     prompts.ScriptParams
	providerID string
}

func runGenerate(ctx context.Context) error {
	cfg := config.Load()
	p, err := prompts.Load()
	if err != nil {
		return fmt.Errorf("load prompts: %w", err)
	}
	ks := keystore.New(keystore.DefaultPath(), cfg.Secrets.Project)

	input, err := collectGenerateInput()
	if err != nil {
		return err
	}

	desc, ok := provider.Lookup(input.providerID)
	if !ok {
		return fmt.Errorf("%w %q", provider.ErrUnsupportedProvider, input.providerID)
	}
	apiKey, err := ensureCredential(ctx, ks, desc)
	if err != nil {
		return err
	}

	dispatcher := llm.NewDispatcher(p, cfg.TextModels())

	var script string
	var genErr error
	runWithSpinner(fmt.Sprintf("Generating script with %s...", desc.Name), func() {
		script, genErr = dispatcher.Generate(ctx, input.providerID, input.params, apiKey)
	})
	if genErr != nil {
		fmt.Println(errorStyle.Render(fmt.Sprintf("Generation failed: %v", genErr)))
		fmt.Println(infoStyle.Render(fmt.Sprintf("Check your %s key with 'scriptforge keys' or try another provider.", desc.Name)))
		return genErr
	}

	fmt.Println(titleStyle.Render("Generated Script"))
	fmt.Println(script)

	local, gcs := buildStores(ctx, cfg)
	if gcs != nil {
		defer gcs.Close()
	}
	saveScript(ctx, local, gcs, script, input.params.Topic, input.providerID)

	return maybeStoryboard(ctx, cfg, p, ks, script)
}

func collectGenerateInput() (generateInput, error) {
	in := generateInput{
		params: prompts.ScriptParams{
			Duration: "1-2 minutes",
			Style:    "educational",
			Language: "en",
		},
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Topic").
				Placeholder("The history of coffee").
				Value(&in.params.Topic).
				Validate(requireValue("topic")),
			huh.NewSelect[string]().
				Title("Duration").
				Options(
					huh.NewOption("Under 1 minute", "under 1 minute"),
					huh.NewOption("1-2 minutes", "1-2 minutes"),
					huh.NewOption("3-5 minutes", "3-5 minutes"),
					huh.NewOption("5-10 minutes", "5-10 minutes"),
					huh.NewOption("10+ minutes", "10+ minutes"),
				).
				Value(&in.params.Duration),
			huh.NewSelect[string]().
				Title("Style").
				Options(
					huh.NewOption("Educational", "educational"),
					huh.NewOption("Entertaining", "entertaining"),
					huh.NewOption("Documentary", "documentary"),
					huh.NewOption("Tutorial", "tutorial"),
					huh.NewOption("Vlog", "vlog"),
					huh.NewOption("Storytelling", "storytelling"),
				).
				Value(&in.params.Style),
			huh.NewInput().
				Title("Style keywords").
				Placeholder("upbeat, conversational").
				Value(&in.params.StyleKeywords),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Language").
				Options(
					huh.NewOption("English", "en"),
					huh.NewOption("Spanish", "es"),
					huh.NewOption("French", "fr"),
					huh.NewOption("German", "de"),
					huh.NewOption("Portuguese", "pt"),
					huh.NewOption("Hindi", "hi"),
					huh.NewOption("Japanese", "ja"),
				).
				Value(&in.params.Language),
			huh.NewInput().
				Title("Target audience (optional)").
				Placeholder("general").
				Value(&in.params.Audience),
			huh.NewInput().
				Title("Additional instructions (optional)").
				Value(&in.params.AdditionalInfo),
			huh.NewSelect[string]().
				Title("Provider").
				Options(providerOptions(provider.Text())...).
				Value(&in.providerID),
		),
	)

	if err := form.Run(); err != nil {
		return generateInput{}, err
	}
	return in, nil
}

func requireValue(name string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func saveScript(ctx context.Context, local *storage.LocalStorage, gcs *storage.GCSStorage, script, topic, providerID string) {
	filename := storage.ScriptFilename(topic, providerID)
	path, err := local.SaveScript(ctx, filename, []byte(script))
	if err != nil {
		slog.Warn("Failed to save script", "error", err)
		return
	}
	fmt.Println(successStyle.Render("Script saved to " + path))

	if gcs != nil {
		url, err := gcs.SaveScript(ctx, filename, []byte(script))
		if err != nil {
			slog.Warn("Failed to mirror script to GCS", "error", err)
			return
		}
		fmt.Println(infoStyle.Render("Mirrored to " + url))
	}
}

func maybeStoryboard(ctx context.Context, cfg *config.Config, p *prompts.Prompts, ks *keystore.Store, script string) error {
	var wantImages bool
	err := huh.NewConfirm().
		Title("Generate images for the script topics?").
		Value(&wantImages).
		Run()
	if err != nil || !wantImages {
		return err
	}

	var imageProviderID string
	err = huh.NewSelect[string]().
		Title("Image provider").
		Options(providerOptions(provider.Image())...).
		Value(&imageProviderID).
		Run()
	if err != nil {
		return err
	}

	desc, ok := provider.Lookup(imageProviderID)
	if !ok {
		return fmt.Errorf("%w %q", provider.ErrUnsupportedProvider, imageProviderID)
	}
	if imageProviderID != "stability" {
		if _, err := ensureCredential(ctx, ks, desc); err != nil {
			return err
		}
	}

	dispatcher := imagegen.NewDispatcher(imagegen.Options{
		Model: cfg.Image.Model,
		Size:  cfg.Image.Size,
	})
	gen := imageGenerator(p, ks, dispatcher, imageProviderID, "photorealistic")
	board := storyboard.NewBoard(script, gen)

	if len(board.Items()) == 0 {
		fmt.Println(warnStyle.Render("No topics found in the script."))
		return nil
	}

	runWithSpinner(fmt.Sprintf("Generating %d images with %s...", len(board.Items()), desc.Name), func() {
		board.GenerateAll(ctx)
	})

	local, gcs := buildStores(ctx, cfg)
	if gcs != nil {
		defer gcs.Close()
	}
	reportStoryboard(ctx, board, local, gcs, true)
	return nil
}
