package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"scrivano/internal/application/commands"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search scenes, characters and world notes",
	Long: `Search scene names, scene text, characters and world notes.
Results are ranked by how closely they match.

Examples:
  scrivano-cli search violin
  scrivano-cli search "Elena"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := commands.NewSearchCommand(GetManager(), args[0]).Execute(context.Background())
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println("No results found")
			return nil
		}

		for _, r := range results {
			fmt.Printf("[%s] %s: %s\n", r.Kind, r.Name, r.MatchedText)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
