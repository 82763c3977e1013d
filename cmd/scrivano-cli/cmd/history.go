package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"scrivano/internal/application/commands"
	"scrivano/internal/application/session"
	"scrivano/internal/domain"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved versions, oldest first",
	Long: `List the versions captured by autosave and snapshot, oldest first.
The index in the first column is what restore expects. At most 10 versions
are kept.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		history, err := GetManager().History()
		if err != nil {
			return err
		}
		if len(history) == 0 {
			fmt.Println("No versions yet.")
			return nil
		}

		for i, e := range history {
			fmt.Printf("%d %s scene %d (%d words) %s\n",
				i, e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.SceneID,
				domain.WordCount(e.Text), domain.Excerpt(e.Text, 60))
		}
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <scene-id> <index>",
	Short: "Overwrite a scene with a saved version",
	Long: `Overwrite a scene's text with the version at index (see history).

Examples:
  scrivano-cli restore 1 0`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sceneID, err := parseID("scene-id", args[0])
		if err != nil {
			return err
		}
		index, err := parseID("index", args[1])
		if err != nil {
			return err
		}
		result, err := commands.NewRestoreCommand(GetManager(), sceneID, index).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Capture the active scene into history and save",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewSnapshotCommand(GetManager()).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var revisionsLimit int

var revisionsCmd = &cobra.Command{
	Use:   "revisions",
	Short: "List every write recorded by the sqlite backend",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if store.Revisions == nil {
			return fmt.Errorf("the %s backend does not keep revisions", store.Name)
		}

		revs, err := store.Revisions.Revisions(session.StorageKey, revisionsLimit)
		if err != nil {
			return err
		}
		for _, r := range revs {
			fmt.Printf("%d %s %d bytes\n", r.ID, r.SavedAt.Local().Format("2006-01-02 15:04:05"), r.Size)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(writes(restoreCmd))
	rootCmd.AddCommand(writes(snapshotCmd))
	rootCmd.AddCommand(revisionsCmd)
	revisionsCmd.Flags().IntVarP(&revisionsLimit, "limit", "n", 20, "maximum revisions to list, 0 for all")
}
