package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/leveneer/congress-member-data/internal/config"
	"github.com/leveneer/congress-member-data/internal/congress"
	"github.com/leveneer/congress-member-data/internal/export"
)

var (
	fetchCongress int
	fetchChamber  string
	fetchState    string
	fetchOutput   string
	fetchAPIKey   string
	fetchDebug    bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch member data for a Congress and export it as CSV",
	Long: `Fetch member records for a numbered Congress, apply optional state and
chamber filters, and write the result set to a CSV file in the output
directory.

Examples:
  congress fetch --congress 118
  congress fetch --congress 118 --state NY --chamber House
  congress fetch --congress 117 --chamber Senate --output senators.csv`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().IntVar(&fetchCongress, "congress", 0, "Congress number (e.g., 118)")
	fetchCmd.Flags().StringVar(&fetchChamber, "chamber", "", "chamber filter (House/Senate or H/S)")
	fetchCmd.Flags().StringVar(&fetchState, "state", "", "two-letter state code")
	fetchCmd.Flags().StringVar(&fetchOutput, "output", "", "CSV output filename (default: generated)")
	fetchCmd.Flags().StringVar(&fetchAPIKey, "api-key", "", "Congress.gov API key")
	fetchCmd.Flags().BoolVar(&fetchDebug, "debug", false, "enable debug output")
	fetchCmd.MarkFlagRequired("congress")
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if fetchDebug {
		logger.SetLevel(logrus.DebugLevel)
	}

	chamber, err := congress.NormalizeChamber(fetchChamber)
	if err != nil {
		return err
	}

	apiKey, err := config.ResolveAPIKey(fetchAPIKey, cfg)
	if err != nil {
		return err
	}

	client := congress.NewClient(congress.ClientConfig{
		BaseURL:   cfg.API.BaseURL,
		APIKey:    apiKey,
		PageSize:  cfg.API.PageSize,
		RateLimit: cfg.API.RateLimit,
		Timeout:   cfg.API.Timeout,
	}, logger)

	members, stats, err := client.FetchMembers(ctx, fetchCongress, congress.FetchOptions{
		Chamber: chamber,
		State:   fetchState,
	})
	if err != nil {
		return err
	}

	if len(members) == 0 {
		fmt.Fprintln(os.Stderr, "No members found to export")
		return nil
	}

	name := fetchOutput
	if name == "" {
		name = export.Filename(fetchCongress, chamber, fetchState)
	}

	path, err := export.WriteCSV(members, cfg.Output.Directory, name)
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("Successfully exported %d members to %s", stats.Total, path)
	if d := stats.Distribution(); d != "" {
		msg += ", " + d
	}
	fmt.Println(msg)
	return nil
}
