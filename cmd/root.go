package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "restcli",
	Short: "A CLI tool for making HTTP requests",
	Long: `restcli is a command-line HTTP client, similar to Postman.

Send HTTP requests, track history, organize requests into collections,
and move requests in and out of the tool as curl commands.

Examples:
  restcli get https://api.example.com/users
  restcli post https://api.example.com/users -d '{"name": "John"}'
  restcli import "curl -X POST https://api.example.com/users -d '{}'"
  restcli export my-api 1
  restcli history
  restcli collection list`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags can be added here
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show response headers")
}
