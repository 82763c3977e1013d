package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"scrivano/internal/application/commands"
)

var goalCmd = &cobra.Command{
	Use:   "goal <words>",
	Short: "Set the daily word goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		goal, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid goal %q: must be a number", args[0])
		}
		result, err := commands.NewSetGoalCommand(GetManager(), goal).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var titleCmd = &cobra.Command{
	Use:   "title <title>",
	Short: "Set the novel title",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewSetTitleCommand(GetManager(), args[0]).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var notesCmd = &cobra.Command{
	Use:   "notes [text|-]",
	Short: "Print or replace the world notes",
	Long: `Without arguments, print the world notes. With text, replace them;
with "-", read the new notes from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			doc, err := GetManager().Document()
			if err != nil {
				return err
			}
			fmt.Println(doc.WorldNotes)
			return nil
		}

		text, err := textArg(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		result, err := commands.NewSetWorldNotesCommand(GetManager(), text).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var charactersCmd = &cobra.Command{
	Use:   "characters",
	Short: "List and manage characters",
	Long: `List and manage the character sheet. Characters are addressed by
the index shown by "characters list".

Examples:
  scrivano-cli characters add Elena "Violinist, protagonist"
  scrivano-cli characters update 0 Elena "Lead"
  scrivano-cli characters remove 0`,
}

var charactersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List characters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := GetManager().Document()
		if err != nil {
			return err
		}
		for i, c := range doc.Characters {
			fmt.Printf("%d %s - %s\n", i, c.Name, c.Role)
		}
		return nil
	},
}

var charactersAddCmd = &cobra.Command{
	Use:   "add <name> [role]",
	Short: "Add a character",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		role := ""
		if len(args) == 2 {
			role = args[1]
		}
		result, err := commands.NewAddCharacterCommand(GetManager(), args[0], role).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var charactersUpdateCmd = &cobra.Command{
	Use:   "update <index> <name> [role]",
	Short: "Replace a character",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseID("index", args[0])
		if err != nil {
			return err
		}
		role := ""
		if len(args) == 3 {
			role = args[2]
		}
		result, err := commands.NewUpdateCharacterCommand(GetManager(), index, args[1], role).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var charactersRemoveCmd = &cobra.Command{
	Use:   "remove <index>",
	Short: "Remove a character",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseID("index", args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewRemoveCharacterCommand(GetManager(), index).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(writes(goalCmd))
	rootCmd.AddCommand(writes(titleCmd))
	rootCmd.AddCommand(writes(notesCmd))
	rootCmd.AddCommand(charactersCmd)
	charactersCmd.AddCommand(charactersListCmd)
	charactersCmd.AddCommand(writes(charactersAddCmd))
	charactersCmd.AddCommand(writes(charactersUpdateCmd))
	charactersCmd.AddCommand(writes(charactersRemoveCmd))
}
