package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cropwise/cropwise/pkg/surface"
	"github.com/cropwise/cropwise/pkg/table"
)

func newCompareCmd(configPath *string) *cobra.Command {
	var (
		ef        envFlags
		sorts     []string
		expand    []string
		outputFmt string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Print the crop comparison table",
		Long: `Ranks the catalog and prints the comparison table. Each --sort is applied as
a header click: a new column sorts descending, the same column again flips
the direction. Each --expand toggles a crop's detail row.`,
		Example: `  cropwise compare --sort profitForecastPerArea
  cropwise compare --sort name --sort name --expand 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd.Context(), compareOpts{
				configPath: *configPath,
				env:        &ef,
				sorts:      sorts,
				expand:     expand,
				outputFmt:  outputFmt,
				out:        cmd.OutOrStdout(),
			})
		},
	}

	ef.register(cmd)
	cmd.Flags().StringArrayVar(&sorts, "sort", nil, "Sort column toggle, repeatable")
	cmd.Flags().StringArrayVar(&expand, "expand", nil, "Crop id whose detail row to toggle, repeatable")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")

	return cmd
}

type compareOpts struct {
	configPath string
	env        *envFlags
	sorts      []string
	expand     []string
	outputFmt  string
	out        io.Writer
}

// applyToggles replays sort and expansion clicks on a fresh controller.
func applyToggles(sorts, expand []string) (*table.Controller, error) {
	ctrl := table.NewController()
	for _, s := range sorts {
		f, err := table.ParseField(s)
		if err != nil {
			return nil, err
		}
		if err := ctrl.ToggleSort(f); err != nil {
			return nil, err
		}
	}
	for _, id := range expand {
		ctrl.ToggleExpansion(id)
	}
	return ctrl, nil
}

func runCompare(ctx context.Context, opts compareOpts) error {
	ctrl, err := applyToggles(opts.sorts, opts.expand)
	if err != nil {
		return err
	}

	_, _, result, err := rankFromFlags(ctx, opts.configPath, opts.env)
	if err != nil {
		return err
	}
	rows := ctrl.View(table.RowsFromScored(result.Crops))

	switch opts.outputFmt {
	case "json":
		enc := json.NewEncoder(opts.out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Sort     table.SortState `json:"sort"`
			Expanded []string        `json:"expanded"`
			Rows     []table.Row     `json:"rows"`
		}{ctrl.Sort(), ctrl.Expanded(), rows})
	case "text", "":
		return surface.RenderTable(opts.out, rows, ctrl.Sort(), ctrl.Expanded())
	default:
		return fmt.Errorf("unknown output format %q (want text or json)", opts.outputFmt)
	}
}
