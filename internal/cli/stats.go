package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jsonlens/pkg/cache"
	"github.com/matzehuels/jsonlens/pkg/doctree"
	"github.com/matzehuels/jsonlens/pkg/observability"
	"github.com/matzehuels/jsonlens/pkg/render"
)

// statsCommand creates the stats command.
func (c *CLI) statsCommand() *cobra.Command {
	var (
		asJSON  bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "stats <file>",
		Short: "Report structural statistics for a JSON document",
		Long: `Stats counts the nodes of a JSON document by kind and measures its
maximum nesting depth. Pass "-" to read the document from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, cached, err := c.documentStats(cmd.Context(), args[0], noCache)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(stats)
			}

			printKeyValue("Nodes", fmt.Sprintf("%d", stats.NodeCount))
			printKeyValue("Objects", fmt.Sprintf("%d", stats.ObjectCount))
			printKeyValue("Arrays", fmt.Sprintf("%d", stats.ArrayCount))
			printKeyValue("Primitives", fmt.Sprintf("%d", stats.PrimitiveCount))
			printKeyValue("Max depth", fmt.Sprintf("%d", stats.MaxDepth))
			printDocStats(stats.NodeCount, stats.MaxDepth, cached)
			if args[0] != "-" {
				printNewline()
				printNextStep("Explore interactively", "jsonlens explore "+args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output statistics as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "skip the analysis cache")

	return cmd
}

// documentStats returns the statistics for a document, consulting the
// report cache by content hash first.
func (c *CLI) documentStats(ctx context.Context, path string, noCache bool) (doctree.Stats, bool, error) {
	raw, err := loadDocument(path)
	if err != nil {
		return doctree.Stats{}, false, err
	}

	cch, err := c.newCache(noCache)
	if err != nil {
		return doctree.Stats{}, false, err
	}
	defer cch.Close()

	keyer := cache.NewDefaultKeyer()
	key := keyer.ReportKey(cache.Hash(raw), cache.ReportKeyOpts{RootLabel: rootLabel})

	if data, hit, err := cch.Get(ctx, key); err == nil && hit {
		var report render.Report
		if err := json.Unmarshal(data, &report); err == nil {
			observability.Cache().OnCacheHit(ctx, "report")
			return report.Stats, true, nil
		}
		// Corrupt entry, fall through and rebuild
	}
	observability.Cache().OnCacheMiss(ctx, "report")

	p := newProgress(loggerFromContext(ctx))
	a, err := analyzeDocument(raw)
	if err != nil {
		return doctree.Stats{}, false, err
	}
	p.done(fmt.Sprintf("Analyzed %d nodes", a.Stats.NodeCount))

	if data, err := render.MarshalReport(a.Root, a.Stats); err == nil {
		if err := cch.Set(ctx, key, data, c.Config.Cache.TTL.Duration()); err != nil {
			c.Logger.Debug("Cache set failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "report", len(data))
		}
	}
	return a.Stats, false, nil
}
