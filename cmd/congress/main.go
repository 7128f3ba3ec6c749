package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/leveneer/congress-member-data/internal/config"
	"github.com/leveneer/congress-member-data/internal/errors"
)

var (
	// Version information (set by build flags)
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"

	cfgFile string
	verbose bool
	logger  *logrus.Logger
	cfg     *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if e, ok := err.(*errors.Error); ok && verbose {
			fmt.Fprint(os.Stderr, e.DetailedString())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "congress",
	Short: "Fetch and export congressional member data from the Congress.gov API",
	Long: `Retrieves member records for a numbered Congress from the Congress.gov
member endpoint, applies optional state and chamber filters, and exports
the results as CSV.

Note: Congress sessions begin in January of odd-numbered years.
For more information, visit: https://api.congress.gov/`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Initialize logger
		logger = logrus.New()
		logger.SetOutput(os.Stderr)
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		} else {
			logger.SetLevel(logrus.InfoLevel)
		}

		// Load configuration
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			logger.WithError(err).Warn("Failed to load config, using defaults")
			cfg = config.Default()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .congress/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Set custom version template
	rootCmd.SetVersionTemplate(`congress {{.Version}}
Build time: ` + BuildTime + `
Git commit: ` + GitCommit + `
`)

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(whichCmd)
	rootCmd.AddCommand(configureCmd)
}
