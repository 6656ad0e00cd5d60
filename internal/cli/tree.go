package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonlens/pkg/render"
)

// treeCommand creates the tree command.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		maxDepth    int
		maxValueLen int
		plain       bool
		asJSON      bool
		output      string
	)

	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Print a JSON document as an indented tree",
		Long: `Tree renders the structure of a JSON document with branch glyphs,
one line per node. Object keys keep their document order. Pass "-" to
read the document from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := analyzeFile(args[0])
			if err != nil {
				return err
			}

			if asJSON {
				if output != "" {
					if err := render.WriteReportFile(a.Root, a.Stats, output); err != nil {
						return err
					}
					printSuccess("Wrote tree report")
					printFile(output)
					return nil
				}
				return render.WriteReport(os.Stdout, a.Root, a.Stats)
			}

			opts := render.TextOptions{
				MaxDepth:    maxDepth,
				MaxValueLen: maxValueLen,
			}
			if !plain && output == "" {
				opts.Styles = render.DefaultStyles()
			}

			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				if err := render.WriteText(f, a.Root, opts); err != nil {
					return err
				}
				printSuccess("Wrote tree")
				printFile(output)
				return nil
			}

			return render.WriteText(os.Stdout, a.Root, opts)
		},
	}

	cmd.Flags().IntVarP(&maxDepth, "depth", "d", c.Config.Render.MaxDepth, "maximum depth to render (0 = unlimited)")
	cmd.Flags().IntVar(&maxValueLen, "max-value-len", c.Config.Render.MaxValueLen, "truncate primitive values to this length")
	cmd.Flags().BoolVar(&plain, "plain", false, "disable colored output")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output the tree report as JSON")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write output to a file instead of stdout")

	return cmd
}
