package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"scrivano/internal/application/commands"
	"scrivano/internal/domain"
)

var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "List and manage scenes",
	Long: `List and manage scenes.

Examples:
  scrivano-cli scenes list
  scrivano-cli scenes add "The Storm"
  scrivano-cli scenes select 2
  scrivano-cli scenes rename 2 "Before the Storm"`,
}

var scenesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scenes with word counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := GetManager().Document()
		if err != nil {
			return err
		}

		for _, s := range doc.Scenes {
			marker := " "
			if s.ID == doc.CurrentScene {
				marker = "*"
			}
			fmt.Printf("%s %d %s (%d words)\n", marker, s.ID, s.Name, domain.WordCount(doc.SceneText(s.ID)))
		}
		return nil
	},
}

var scenesAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a scene and make it active",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		result, err := commands.NewAddSceneCommand(GetManager(), name).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var scenesSelectCmd = &cobra.Command{
	Use:   "select <scene-id>",
	Short: "Make a scene active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("scene-id", args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewSelectSceneCommand(GetManager(), id).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var scenesRenameCmd = &cobra.Command{
	Use:   "rename <scene-id> <name>",
	Short: "Rename a scene",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("scene-id", args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewRenameSceneCommand(GetManager(), id, args[1]).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var writeCmd = &cobra.Command{
	Use:   "write <scene-id> [text|-]",
	Short: "Replace a scene's text",
	Long: `Replace the full text of a scene. With "-" or no text argument the
text is read from stdin.

Examples:
  scrivano-cli write 1 "Elena lifted the violin."
  cat chapter1.md | scrivano-cli write 1 -`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("scene-id", args[0])
		if err != nil {
			return err
		}
		text, err := textArg(args[1:], cmd.InOrStdin())
		if err != nil {
			return err
		}
		result, err := commands.NewWriteSceneCommand(GetManager(), id, text).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scenesCmd)
	scenesCmd.AddCommand(scenesListCmd)
	scenesCmd.AddCommand(writes(scenesAddCmd))
	scenesCmd.AddCommand(writes(scenesSelectCmd))
	scenesCmd.AddCommand(writes(scenesRenameCmd))
	rootCmd.AddCommand(writes(writeCmd))
}

func parseID(name, s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be a number", name, s)
	}
	return id, nil
}

// textArg returns the first argument, or stdin when it is "-" or missing
func textArg(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		return args[0], nil
	}
	if stdin == nil {
		stdin = os.Stdin
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}
