package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"scrivano/internal/application/commands"
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Show and arrange the plot outline",
	Long: `Without a subcommand, print the plot outline: each act with its
scenes in order, then the scenes not placed in any act. Acts are
addressed by the index shown here.

Examples:
  scrivano-cli plot add-act Epilogue
  scrivano-cli plot assign 0 2
  scrivano-cli plot unassign 2`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := GetManager().Document()
		if err != nil {
			return err
		}

		acts, unassigned := doc.PlotOutline()
		for i, act := range acts {
			fmt.Printf("%d %s\n", i, act.Title)
			for _, s := range act.Scenes {
				fmt.Printf("    %d %s\n", s.ID, s.Name)
			}
		}
		if len(unassigned) > 0 {
			fmt.Println("unassigned")
			for _, s := range unassigned {
				fmt.Printf("    %d %s\n", s.ID, s.Name)
			}
		}
		return nil
	},
}

var plotAddActCmd = &cobra.Command{
	Use:   "add-act <title>",
	Short: "Append an act",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewAddActCommand(GetManager(), args[0]).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var plotRenameActCmd = &cobra.Command{
	Use:   "rename-act <act> <title>",
	Short: "Rename an act",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		act, err := parseID("act", args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewRenameActCommand(GetManager(), act, args[1]).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var plotRemoveActCmd = &cobra.Command{
	Use:   "remove-act <act>",
	Short: "Remove an act, leaving its scenes unassigned",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		act, err := parseID("act", args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewRemoveActCommand(GetManager(), act).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var plotAssignCmd = &cobra.Command{
	Use:   "assign <act> <scene-id>",
	Short: "Place a scene at the end of an act",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		act, err := parseID("act", args[0])
		if err != nil {
			return err
		}
		id, err := parseID("scene", args[1])
		if err != nil {
			return err
		}
		result, err := commands.NewAssignSceneCommand(GetManager(), act, id).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var plotUnassignCmd = &cobra.Command{
	Use:   "unassign <scene-id>",
	Short: "Take a scene out of the outline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("scene", args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewAssignSceneCommand(GetManager(), -1, id).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotCmd.AddCommand(writes(plotAddActCmd))
	plotCmd.AddCommand(writes(plotRenameActCmd))
	plotCmd.AddCommand(writes(plotRemoveActCmd))
	plotCmd.AddCommand(writes(plotAssignCmd))
	plotCmd.AddCommand(writes(plotUnassignCmd))
}
