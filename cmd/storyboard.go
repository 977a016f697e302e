package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scriptforge/internal/imagegen"
	"scriptforge/internal/keystore"
	"scriptforge/internal/provider"
	"scriptforge/internal/storyboard"
	"scriptforge/pkg/config"
	"scriptforge/pkg/prompts"
)

var (
	storyboardProvider string
	storyboardStyle    string
	storyboardDownload bool
)

var storyboardCmd = &cobra.Command{
	Use:   "storyboard <script-file>",
	Short: "Generate an image per topic of an existing script",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStoryboard(cmd.Context(), args[0])
	},
}

func init() {
	storyboardCmd.Flags().StringVar(&storyboardProvider, "provider", "openai-images", "image provider to use")
	storyboardCmd.Flags().StringVar(&storyboardStyle, "style", "photorealistic", "visual style for the images")
	storyboardCmd.Flags().BoolVar(&storyboardDownload, "download", false, "download generated images to the output directory")
	rootCmd.AddCommand(storyboardCmd)
}

func runStoryboard(ctx context.Context, scriptPath string) error {
	script, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	cfg := config.Load()
	p, err := prompts.Load()
	if err != nil {
		return fmt.Errorf("load prompts: %w", err)
	}
	ks := keystore.New(keystore.DefaultPath(), cfg.Secrets.Project)

	desc, ok := provider.Lookup(storyboardProvider)
	if !ok || desc.Kind != provider.KindImage {
		return fmt.Errorf("%w %q", provider.ErrUnsupportedProvider, storyboardProvider)
	}
	if storyboardProvider != "stability" {
		if _, err := ensureCredential(ctx, ks, desc); err != nil {
			return err
		}
	}

	dispatcher := imagegen.NewDispatcher(imagegen.Options{
		Model: cfg.Image.Model,
		Size:  cfg.Image.Size,
	})
	gen := imageGenerator(p, ks, dispatcher, storyboardProvider, storyboardStyle)
	board := storyboard.NewBoard(string(script), gen)

	items := board.Items()
	if len(items) == 0 {
		fmt.Println(warnStyle.Render("No topics found in the script."))
		return nil
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Storyboard: %d topics", len(items))))
	for _, item := range items {
		fmt.Println(infoStyle.Render("- " + item.Title))
	}

	runWithSpinner(fmt.Sprintf("Generating %d images with %s...", len(items), desc.Name), func() {
		board.GenerateAll(ctx)
	})

	local, gcs := buildStores(ctx, cfg)
	if gcs != nil {
		defer gcs.Close()
	}
	reportStoryboard(ctx, board, local, gcs, storyboardDownload)
	return nil
}
