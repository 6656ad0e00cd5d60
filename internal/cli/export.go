package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonlens/pkg/cache"
	"github.com/matzehuels/jsonlens/pkg/errors"
	"github.com/matzehuels/jsonlens/pkg/render"
)

// exportFormats lists the supported export formats.
var exportFormats = []string{"dot", "svg", "png"}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
		maxDepth int
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export a JSON document tree as a Graphviz visualization",
		Long: `Export converts the document tree to Graphviz DOT and optionally
rasterizes it to SVG or PNG. Rendered artifacts are cached by document
content, so re-exporting an unchanged document is instant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if !validFormat(format) {
				return errors.New(errors.ErrCodeInvalidFormat,
					"unknown format %q (supported: %s)", format, strings.Join(exportFormats, ", "))
			}

			raw, err := loadDocument(args[0])
			if err != nil {
				return err
			}

			if output == "" {
				output = defaultExportPath(args[0], format)
			}

			cch, err := c.newCache(noCache)
			if err != nil {
				return err
			}
			defer cch.Close()

			keyer := cache.NewDefaultKeyer()
			key := keyer.ArtifactKey(cache.Hash(raw), cache.ArtifactKeyOpts{
				Format:   format,
				Detailed: detailed,
				MaxDepth: maxDepth,
			})

			ctx := cmd.Context()
			if data, hit, err := cch.Get(ctx, key); err == nil && hit {
				if err := os.WriteFile(output, data, 0644); err != nil {
					return err
				}
				printSuccess("Exported %s", format)
				printFile(output)
				printDetail("cached")
				return nil
			}

			a, err := analyzeDocument(raw)
			if err != nil {
				return err
			}

			dot := render.ToDOT(a.Root, render.DOTOptions{Detailed: detailed, MaxDepth: maxDepth})

			var artifact []byte
			switch format {
			case "dot":
				artifact = []byte(dot)
			case "svg", "png":
				sp := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", format))
				sp.Start()
				if format == "svg" {
					artifact, err = render.RenderSVG(dot)
				} else {
					artifact, err = render.RenderPNG(dot)
				}
				if ctx.Err() != nil {
					sp.Stop()
					return ctx.Err()
				}
				if err != nil {
					sp.StopWithError(fmt.Sprintf("Rendering %s failed", format))
					return errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
				}
				sp.Stop()
			}

			if err := os.WriteFile(output, artifact, 0644); err != nil {
				return err
			}
			if err := cch.Set(ctx, key, artifact, c.Config.Cache.TTL.Duration()); err != nil {
				c.Logger.Debug("Cache set failed", "error", err)
			}

			printSuccess("Exported %s", format)
			printFile(output)
			printDocStats(a.Stats.NodeCount, a.Stats.MaxDepth, false)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "dot", "export format (dot, svg, png)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input name with format extension)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include primitive values in node labels")
	cmd.Flags().IntVarP(&maxDepth, "depth", "d", 0, "maximum depth to export (0 = unlimited)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "skip the artifact cache")

	return cmd
}

func validFormat(format string) bool {
	for _, f := range exportFormats {
		if f == format {
			return true
		}
	}
	return false
}

// defaultExportPath derives the output filename from the input path.
// Stdin input falls back to the root label.
func defaultExportPath(input, format string) string {
	if input == "-" {
		return rootLabel + "." + format
	}
	base := filepath.Base(input)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base + "." + format
}
