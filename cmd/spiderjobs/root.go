package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "spiderjobs",
	Short: "spiderjobs — crawl job boards into CSV and sqlite",
	Long: `spiderjobs crawls job-listing pages, extracts structured records
(title, link, company, location, posted date, logo, skills) and writes them
to CSV and a local sqlite database.

Usage:
  spiderjobs crawl [flags]`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
