package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"scriptforge/internal/keystore"
	"scriptforge/internal/provider"
	"scriptforge/pkg/config"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage stored provider API keys",
}

var keysListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show which providers have a key configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKeysList(cmd.Context())
	},
}

var keysSetCmd = &cobra.Command{
	Use:   "set <provider>",
	Short: "Store the API key for a provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKeysSet(cmd.Context(), args[0])
	},
}

var keysDeleteCmd = &cobra.Command{
	Use:   "delete <provider>",
	Short: "Remove the stored API key for a provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKeysDelete(args[0])
	},
	Args: cobra.ExactArgs(1),
}

func init() {
	keysCmd.AddCommand(keysListCmd, keysSetCmd, keysDeleteCmd)
	rootCmd.AddCommand(keysCmd)
}

func newKeystore() *keystore.Store {
	cfg := config.Load()
	return keystore.New(keystore.DefaultPath(), cfg.Secrets.Project)
}

func runKeysList(ctx context.Context) error {
	ks := newKeystore()
	fmt.Println(titleStyle.Render("Provider credentials"))
	for _, desc := range provider.All() {
		if desc.KeyName == "" {
			continue
		}
		key, err := ks.Get(ctx, desc.KeyName)
		if err != nil {
			return err
		}
		if key != "" {
			fmt.Println(successStyle.Render(fmt.Sprintf("✓ %s (%s)", desc.Name, desc.KeyName)))
		} else {
			fmt.Println(warnStyle.Render(fmt.Sprintf("✗ %s (%s)", desc.Name, desc.KeyName)))
		}
	}
	fmt.Println(infoStyle.Render("Stored in " + ks.Path()))
	return nil
}

func runKeysSet(ctx context.Context, providerID string) error {
	desc, ok := provider.Lookup(providerID)
	if !ok {
		return fmt.Errorf("%w %q", provider.ErrUnsupportedProvider, providerID)
	}

	if _, err := promptAndStoreKey(newKeystore(), desc); err != nil {
		return err
	}
	fmt.Println(successStyle.Render("Key saved for " + desc.Name))
	return nil
}

func runKeysDelete(providerID string) error {
	desc, ok := provider.Lookup(providerID)
	if !ok {
		return fmt.Errorf("%w %q", provider.ErrUnsupportedProvider, providerID)
	}

	ks := newKeystore()
	if err := ks.Delete(desc.KeyName); err != nil {
		return err
	}
	fmt.Println(successStyle.Render("Key removed for " + desc.Name))
	return nil
}
