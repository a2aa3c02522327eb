package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show backend health and initialization details",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := newClient().Health()
		if err != nil {
			reportError(err)
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
			return err
		}
		return printJSON(doc)
	},
}

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List the collections known to the vector store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := newClient().Collections()
		if err != nil {
			reportError(err)
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
			return err
		}
		return printJSON(doc)
	},
}

func printJSON(doc map[string]interface{}) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(raw))
	return nil
}

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(collectionsCmd)
}
