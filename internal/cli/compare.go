package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/SheetPack/internal/engine"
	perrors "github.com/piwi3910/SheetPack/internal/errors"
	"github.com/piwi3910/SheetPack/internal/model"
)

func (c *CLI) compareCommand() *cobra.Command {
	opts := packOpts{scale: 1}

	cmd := &cobra.Command{
		Use:   "compare INPUT...",
		Short: "Compare packers and sheet sizes on the same images",
		Long: `Pack the same images under several settings and print how many sheets
each uses and how well they are filled. The first row uses the current
settings; the rest swap the packer, halve or double the preferred sheet
size, and toggle trimming.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := c.packSettings(cmd, opts)
			if err != nil {
				return err
			}
			return c.runCompare(cmd.Context(), args, opts, settings)
		},
	}

	cmd.Flags().StringVarP(&opts.packer, "packer", "p", "", "base packing algorithm: maxrects (default), simple")
	cmd.Flags().StringArrayVarP(&opts.options, "options", "s", nil, "packer option as key=value (max_width, max_height)")
	cmd.Flags().BoolVarP(&opts.trim, "trim", "t", false, "trim transparent sprite sides in the base scenario")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "resample sprites by this factor on import")

	return cmd
}

func (c *CLI) runCompare(ctx context.Context, args []string, opts packOpts, settings model.PackSettings) error {
	logger := loggerFromContext(ctx)
	out := c.printer()

	imported, err := c.importSprites(ctx, args, opts, settings.Scale)
	if err != nil {
		return err
	}

	scenarios := engine.BuildDefaultScenarios(settings)
	prog := newProgress(logger)
	results := engine.CompareScenarios(scenarios, imported.Sprites)
	prog.done(fmt.Sprintf("Compared %d scenarios", len(results)))

	if err := ctx.Err(); err != nil {
		return err
	}

	best := bestScenario(results)
	rows := make([][]string, 0, len(results))
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			rows = append(rows, []string{r.Scenario.Name, "-", "-", "-", perrors.UserMessage(r.Err)})
			continue
		}
		rows = append(rows, []string{
			r.Scenario.Name,
			fmt.Sprintf("%d", r.SheetsUsed),
			fmt.Sprintf("%d px", r.TotalArea),
			fmt.Sprintf("%.1f%%", r.Efficiency),
			"",
		})
	}

	out.title(fmt.Sprintf("Comparing %d sprites", len(imported.Sprites)))
	highlight := map[int]bool{}
	if best >= 0 {
		highlight[best] = true
	}
	out.table([]string{"Scenario", "Sheets", "Area", "Efficiency", "Error"}, rows, highlight)

	if best >= 0 {
		out.success("Best: %s", results[best].Scenario.Name)
	}
	if failed == len(results) {
		return perrors.New(perrors.ErrCodeEmptyResult, "every scenario failed")
	}
	return nil
}

// bestScenario returns the index of the successful result with the fewest
// sheets, then the smallest total area. Ties keep the earlier scenario.
// Returns -1 when every scenario failed.
func bestScenario(results []engine.ComparisonResult) int {
	best := -1
	for i, r := range results {
		if r.Err != nil {
			continue
		}
		if best < 0 {
			best = i
			continue
		}
		b := results[best]
		if r.SheetsUsed < b.SheetsUsed || (r.SheetsUsed == b.SheetsUsed && r.TotalArea < b.TotalArea) {
			best = i
		}
	}
	return best
}
