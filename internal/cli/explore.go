package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// exploreCommand creates the interactive explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var maxValueLen int

	cmd := &cobra.Command{
		Use:   "explore <file>",
		Short: "Explore a JSON document interactively",
		Long: `Explore opens a full-screen terminal browser for a JSON document.
Containers down to two levels start expanded; deeper subtrees unfold on
demand. Pass "-" to read the document from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := analyzeFile(args[0])
			if err != nil {
				return err
			}

			model := NewTreeModel(a.Root, a.Stats)
			if maxValueLen > 0 {
				model.MaxValueLen = maxValueLen
			}

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().IntVar(&maxValueLen, "max-value-len", 0, "truncate primitive values to this length")

	return cmd
}
