package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/konarsubhojit/rest-api-send-requests/internal/curl"
	"github.com/konarsubhojit/rest-api-send-requests/internal/format"
	httpclient "github.com/konarsubhojit/rest-api-send-requests/internal/http"
	"github.com/konarsubhojit/rest-api-send-requests/internal/model"
	"github.com/konarsubhojit/rest-api-send-requests/internal/storage"
)

var importName string

func init() {
	importCmd := &cobra.Command{
		Use:   "import [curl command]",
		Short: "Import a request from a curl command",
		Long: `Import a request from a pasted curl command.

The command is read from the arguments, or from stdin when no arguments
are given. Multi-line commands with backslash continuations are accepted.

Examples:
  restcli import "curl -X POST https://api.example.com/users -H 'X-Test: 1' -d '{}'"
  pbpaste | restcli import -c my-api -n "Create user"`,
		Run: runImport,
	}

	importCmd.Flags().StringVarP(&saveToCollection, "collection", "c", "", "Save to collection")
	importCmd.Flags().StringVarP(&importName, "name", "n", "", "Name for the saved request")
	importCmd.Flags().Bool("send", false, "Send the request after importing")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	send, _ := cmd.Flags().GetBool("send")

	command := strings.TrimSpace(strings.Join(args, " "))
	if command == "" {
		stdin, err := io.ReadAll(os.Stdin)
		if err != nil {
			format.PrintError(fmt.Sprintf("Failed to read stdin: %v", err))
			os.Exit(1)
		}
		command = strings.TrimSpace(string(stdin))
	}
	if command == "" {
		format.PrintError("Nothing to import")
		os.Exit(1)
	}

	req, fullURL := curl.Parse(command)
	if fullURL == "" {
		format.PrintError("No URL found in curl command")
		os.Exit(1)
	}

	format.PrintStructuredRequest(&req)

	if saveToCollection != "" {
		store, err := storage.NewStorage()
		if err != nil {
			format.PrintError(fmt.Sprintf("Failed to save to collection: %v", err))
			os.Exit(1)
		}
		defer store.Close()

		saved := model.SavedRequest{Name: importName, Request: req}
		if err := store.AddToCollection(saveToCollection, saved); err != nil {
			format.PrintError(fmt.Sprintf("Failed to save to collection: %v", err))
			os.Exit(1)
		}
		format.PrintSuccess(fmt.Sprintf("Saved to collection '%s'", saveToCollection))
	}

	if send {
		client := httpclient.NewClient()
		resp, err := client.Send(&req)
		if err != nil {
			format.PrintError(fmt.Sprintf("Request failed: %v", err))
			os.Exit(1)
		}
		fmt.Println()
		format.PrintResponse(resp, verbose)
	}
}
