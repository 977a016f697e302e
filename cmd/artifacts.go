package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"scriptforge/pkg/config"
)

var artifactsCmd = &cobra.Command{
	Use:   "artifacts",
	Short: "List generated scripts and images",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runArtifacts(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(artifactsCmd)
}

func runArtifacts(ctx context.Context) error {
	cfg := config.Load()
	local, gcs := buildStores(ctx, cfg)
	if gcs != nil {
		defer gcs.Close()
	}

	names, err := local.List(ctx)
	if err != nil {
		return fmt.Errorf("list local artifacts: %w", err)
	}

	fmt.Println(titleStyle.Render("Local artifacts (" + cfg.Output.Dir + ")"))
	if len(names) == 0 {
		fmt.Println(warnStyle.Render("none"))
	}
	for _, name := range names {
		fmt.Println(infoStyle.Render("- " + name))
	}

	if gcs == nil {
		return nil
	}

	remote, err := gcs.List(ctx)
	if err != nil {
		return fmt.Errorf("list GCS artifacts: %w", err)
	}

	fmt.Println(titleStyle.Render("GCS artifacts (" + cfg.GCS.Bucket + ")"))
	if len(remote) == 0 {
		fmt.Println(warnStyle.Render("none"))
	}
	for _, name := range remote {
		fmt.Println(infoStyle.Render("- " + name))
	}
	return nil
}
