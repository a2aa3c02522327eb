package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var backendAddr string

var rootCmd = &cobra.Command{
	Use:   "rag-cli",
	Short: "A CLI client for the RAG backend",
	Long:  `A command-line interface for querying the RAG backend and inspecting its health and collections.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendAddr, "addr", "http://localhost:8000", "base URL of the RAG backend")
}

func newClient() *Client {
	// Generous timeout: generation dominates query latency.
	return NewClient(backendAddr, 90*time.Second)
}

// reportError prints connection errors, HTTP error statuses and unexpected
// errors as distinct messages. The client never retries.
func reportError(err error) {
	var connErr *ConnectionError
	var httpErr *HTTPError
	switch {
	case errors.As(err, &connErr):
		fmt.Fprintf(os.Stderr, "%s. Ensure the backend is running.\n", connErr.Error())
	case errors.As(err, &httpErr):
		fmt.Fprintln(os.Stderr, httpErr.Error())
	default:
		fmt.Fprintf(os.Stderr, "An unexpected error occurred: %v\n", err)
	}
}
