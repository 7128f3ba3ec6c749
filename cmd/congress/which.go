package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/leveneer/congress-member-data/internal/calendar"
	"github.com/leveneer/congress-member-data/internal/errors"
)

var whichCmd = &cobra.Command{
	Use:   "which <year>",
	Short: "Look up which Congress was in session during a year",
	Long: `Look up the Congress number for a specific calendar year.

Odd years see a handover between two Congresses, so both are shown with
their transition months; even years fall inside a single Congress.

Examples:
  congress which 2023
  congress which 1933`,
	Args: cobra.ExactArgs(1),
	RunE: runWhich,
}

func runWhich(cmd *cobra.Command, args []string) error {
	year, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return errors.UsageErrorf("invalid year %q: must be an integer", args[0])
	}

	if err := calendar.ValidateYear(year, time.Now()); err != nil {
		return err
	}

	fmt.Printf("\nCongress in session during %d:\n", year)
	fmt.Printf("  %s\n", calendar.FormatCongressInfo(year))
	return nil
}
