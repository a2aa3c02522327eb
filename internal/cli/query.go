package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query [query-string]",
	Short: "Ask the knowledge base a question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := newClient().Query(args[0])
		if err != nil {
			reportError(err)
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
			return err
		}

		fmt.Println("Answer:")
		fmt.Println(result.Answer)
		fmt.Println()
		if len(result.Contexts) == 0 {
			fmt.Println("No contexts were retrieved or used.")
			return nil
		}
		fmt.Println("Contexts Used:")
		for i, context := range result.Contexts {
			fmt.Printf("  Chunk %d: %s\n", i+1, context)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
}
