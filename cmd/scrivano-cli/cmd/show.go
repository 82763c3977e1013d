package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"scrivano/internal/adapters/mcp"
	"scrivano/internal/domain"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the manuscript",
	Long: `Print the manuscript: the title, then every scene's name and text.
Empty scenes are shown as (Empty).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := GetManager().Document()
		if err != nil {
			return err
		}
		fmt.Print(domain.Manuscript(doc))
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show word counts and progress toward the daily goal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := GetManager().Stats()
		if err != nil {
			return err
		}
		fmt.Print(mcp.FormatStats(stats))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(statsCmd)
}
