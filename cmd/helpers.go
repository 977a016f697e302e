package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/huh"

	"scriptforge/internal/imagegen"
	"scriptforge/internal/keystore"
	"scriptforge/internal/provider"
	"scriptforge/internal/storage"
	"scriptforge/internal/storyboard"
	"scriptforge/pkg/config"
	"scriptforge/pkg/prompts"
)

func providerOptions(descs []provider.Descriptor) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(descs))
	for _, d := range descs {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s %s", d.Icon, d.Name), d.ID))
	}
	return opts
}

// ensureCredential resolves the key for a provider, prompting for one
// and saving it when the store has no entry yet.
func ensureCredential(ctx context.Context, ks *keystore.Store, desc provider.Descriptor) (string, error) {
	key, err := ks.Get(ctx, desc.KeyName)
	if err != nil {
		return "", err
	}
	if key != "" {
		return key, nil
	}

	fmt.Println(warnStyle.Render(fmt.Sprintf("No API key stored for %s. Get one at %s", desc.Name, desc.KeyURL)))
	return promptAndStoreKey(ks, desc)
}

// promptAndStoreKey asks for a key interactively and persists it.
func promptAndStoreKey(ks *keystore.Store, desc provider.Descriptor) (string, error) {
	var entered string
	err := huh.NewInput().
		Title(fmt.Sprintf("%s API key", desc.Name)).
		EchoMode(huh.EchoModePassword).
		Value(&entered).
		Run()
	if err != nil {
		return "", err
	}
	if entered == "" {
		return "", fmt.Errorf("%s: %w", desc.ID, provider.ErrMissingCredential)
	}

	if err := ks.Set(desc.KeyName, entered); err != nil {
		return "", err
	}
	return entered, nil
}

func buildStores(ctx context.Context, cfg *config.Config) (*storage.LocalStorage, *storage.GCSStorage) {
	local := storage.NewLocalStorage(cfg.Output.Dir)
	if !cfg.GCS.Enabled || cfg.GCS.Bucket == "" {
		return local, nil
	}

	gcs, err := storage.NewGCSStorage(ctx, cfg.GCS.Bucket, cfg.GCS.Prefix)
	if err != nil {
		slog.Warn("GCS mirror unavailable, keeping artifacts local only", "error", err)
		return local, nil
	}
	return local, gcs
}

// imageGenerator builds the dispatch the storyboard drives: it renders
// the image prompt from the item's current prompt text and reads the
// credential fresh from the keystore on every call.
func imageGenerator(p *prompts.Prompts, ks *keystore.Store, d *imagegen.Dispatcher, providerID, style string) storyboard.GeneratorFunc {
	return func(ctx context.Context, prompt string) (string, error) {
		rendered, err := p.RenderImage(prompts.ImageParams{Topic: prompt, Style: style})
		if err != nil {
			return "", fmt.Errorf("render prompt: %w", err)
		}

		desc, ok := provider.Lookup(providerID)
		if !ok {
			return "", fmt.Errorf("%w %q", provider.ErrUnsupportedProvider, providerID)
		}

		key, err := ks.Get(ctx, desc.KeyName)
		if err != nil {
			return "", err
		}

		return d.Generate(ctx, providerID, rendered, key)
	}
}

// reportStoryboard prints the per-item outcome and optionally downloads
// the generated images next to the script artifact.
func reportStoryboard(ctx context.Context, board *storyboard.Board, local *storage.LocalStorage, gcs *storage.GCSStorage, download bool) {
	for i, item := range board.Items() {
		switch {
		case item.ImageURL != "":
			fmt.Println(successStyle.Render(fmt.Sprintf("✓ %s", item.Title)))
			fmt.Println(infoStyle.Render("  " + item.ImageURL))
			if download {
				saveImage(ctx, local, gcs, item, i)
			}
		case item.Err != "":
			fmt.Println(errorStyle.Render(fmt.Sprintf("✗ %s: %s", item.Title, item.Err)))
		default:
			fmt.Println(warnStyle.Render(fmt.Sprintf("- %s (skipped)", item.Title)))
		}
	}
}

func saveImage(ctx context.Context, local *storage.LocalStorage, gcs *storage.GCSStorage, item storyboard.Item, index int) {
	data, err := imagegen.Download(ctx, item.ImageURL)
	if err != nil {
		slog.Warn("Failed to download image", "title", item.Title, "error", err)
		return
	}

	filename := storage.ImageFilename(item.Title, index)
	path, err := local.SaveImage(ctx, filename, data)
	if err != nil {
		slog.Warn("Failed to save image", "title", item.Title, "error", err)
		return
	}
	fmt.Println(infoStyle.Render("  saved " + path))

	if gcs != nil {
		if url, err := gcs.SaveImage(ctx, filename, data); err != nil {
			slog.Warn("Failed to mirror image to GCS", "title", item.Title, "error", err)
		} else {
			slog.Debug("Image mirrored", "url", url)
		}
	}
}
