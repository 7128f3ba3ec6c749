package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/leveneer/congress-member-data/internal/config"
	"github.com/leveneer/congress-member-data/internal/errors"
)

var (
	configureShow   bool
	configureDelete bool
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Store the Congress.gov API key in the OS keychain",
	Long: `Prompt for a Congress.gov API key and store it securely in the OS
keychain. The stored key is used when no --api-key argument, .env file,
or CONGRESS_API_KEY environment variable is present.`,
	RunE: runConfigure,
}

func init() {
	configureCmd.Flags().BoolVar(&configureShow, "show", false, "show the configured key (masked) and its source")
	configureCmd.Flags().BoolVar(&configureDelete, "delete", false, "remove the key from the OS keychain")
	configureCmd.MarkFlagsMutuallyExclusive("show", "delete")
}

func runConfigure(cmd *cobra.Command, args []string) error {
	km := config.NewKeyringManager()

	if configureShow {
		key, _ := config.ResolveAPIKey("", cfg)
		info := km.GetAPIKeySource(cfg)
		fmt.Printf("API key: %s\n", config.MaskAPIKey(key))
		fmt.Printf("Source:  %s\n", info.Source)
		if info.Recommended != "" {
			fmt.Println(info.Recommended)
		}
		return nil
	}

	if configureDelete {
		if err := km.DeleteAPIKey(); err != nil {
			return err
		}
		fmt.Println("API key removed from OS keychain")
		return nil
	}

	if !km.IsAvailable() {
		return errors.ConfigError("OS keychain is not available on this system; " +
			"use a .env file or the CONGRESS_API_KEY environment variable instead")
	}

	fmt.Print("Congress.gov API key: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("reading api key: %w", err)
	}

	key := strings.TrimSpace(string(raw))
	if key == "" {
		return errors.UsageError("api key cannot be empty")
	}

	if err := km.SaveAPIKey(key); err != nil {
		return err
	}
	fmt.Println("API key saved to OS keychain")
	return nil
}
