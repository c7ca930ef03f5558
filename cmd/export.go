package cmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/konarsubhojit/rest-api-send-requests/internal/curl"
	"github.com/konarsubhojit/rest-api-send-requests/internal/format"
	"github.com/konarsubhojit/rest-api-send-requests/internal/model"
	"github.com/konarsubhojit/rest-api-send-requests/internal/storage"
)

var exportHistoryID string

func init() {
	exportCmd := &cobra.Command{
		Use:   "export <collection> <index>",
		Short: "Export a saved request as a curl command",
		Long: `Export a request as a shell-pasteable curl command.

By default the request comes from a collection, addressed by name and
1-based index. With --history, a history entry is exported instead.

Examples:
  restcli export my-api 1
  restcli export --history a1b2c3d4`,
		Args: cobra.MaximumNArgs(2),
		Run:  runExport,
	}

	exportCmd.Flags().StringVar(&exportHistoryID, "history", "", "Export a history entry by ID instead")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) {
	store, err := storage.NewStorage()
	if err != nil {
		format.PrintError(fmt.Sprintf("Failed to open storage: %v", err))
		os.Exit(1)
	}
	defer store.Close()

	if exportHistoryID != "" {
		exportFromHistory(store, exportHistoryID)
		return
	}

	if len(args) != 2 {
		format.PrintError("Expected <collection> <index> (or --history <id>)")
		os.Exit(1)
	}

	name := args[0]
	index, err := strconv.Atoi(args[1])
	if err != nil || index < 1 {
		format.PrintError(fmt.Sprintf("Invalid index: %s", args[1]))
		os.Exit(1)
	}

	col, err := store.GetCollection(name)
	if err != nil {
		format.PrintError(fmt.Sprintf("Failed to load collection: %v", err))
		os.Exit(1)
	}
	if col == nil {
		format.PrintError(fmt.Sprintf("Collection '%s' not found", name))
		os.Exit(1)
	}
	if index > len(col.Requests) {
		format.PrintError(fmt.Sprintf("Collection '%s' has only %d requests", name, len(col.Requests)))
		os.Exit(1)
	}

	req := col.Requests[index-1].Request
	fmt.Println(curl.Build(req, req.URL()))
}

func exportFromHistory(store *storage.SQLiteStorage, id string) {
	histReq, err := store.GetHistoryRequest(id)
	if err != nil {
		format.PrintError(fmt.Sprintf("Failed to load history: %v", err))
		os.Exit(1)
	}
	if histReq == nil {
		format.PrintError(fmt.Sprintf("Request not found: %s", id))
		os.Exit(1)
	}

	// History keeps the wire form; lift it back into the editable form first
	req := curl.FromWire(histReq.Method, histReq.URL, headerMapToRows(histReq.Headers), histReq.Body)
	fmt.Println(curl.Build(req, histReq.URL))
}

// headerMapToRows converts a stored header map into rows with a stable order
func headerMapToRows(headers map[string]string) []model.KeyValue {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]model.KeyValue, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, model.NewKeyValue(k, headers[k]))
	}
	return rows
}
