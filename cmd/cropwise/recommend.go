package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cropwise/cropwise/pkg/report"
	"github.com/cropwise/cropwise/pkg/surface"
)

func newRecommendCmd(configPath *string) *cobra.Command {
	var (
		ef        envFlags
		outputFmt string
		outFile   string
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank crops for a farm and print the recommendation report",
		Long: `Scores every crop in the catalog against the given soil, moisture, rainfall,
sunlight and irrigation, and renders the ranked report with highlights,
insights, the comparison table and support schemes.`,
		Example: `  cropwise recommend --state Punjab --rainfall 650 --irrigation
  cropwise recommend --output xlsx --out report.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecommend(cmd.Context(), recommendOpts{
				configPath: *configPath,
				env:        &ef,
				outputFmt:  outputFmt,
				outFile:    outFile,
			})
		},
	}

	ef.register(cmd)
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text, json, markdown, html or xlsx")
	cmd.Flags().StringVar(&outFile, "out", "", "Write the report to a file instead of stdout")

	return cmd
}

type recommendOpts struct {
	configPath string
	env        *envFlags
	outputFmt  string
	outFile    string
}

func runRecommend(ctx context.Context, opts recommendOpts) error {
	renderer, err := surface.ForFormat(opts.outputFmt)
	if err != nil {
		return err
	}
	// Workbooks are binary; never write one to the terminal.
	if _, ok := renderer.(*surface.XLSXRenderer); ok && opts.outFile == "" {
		return fmt.Errorf("xlsx output requires --out")
	}

	loc, env, result, err := rankFromFlags(ctx, opts.configPath, opts.env)
	if err != nil {
		return err
	}

	rep := report.Build(loc, env, result, nil, time.Now())
	return writeOutput(opts.outFile, func(w io.Writer) error {
		return renderer.Render(w, rep)
	})
}

// writeOutput renders to stdout, or to path when set.
func writeOutput(path string, render func(w io.Writer) error) error {
	if path == "" {
		return render(os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("rendering: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Report saved: %s\n", path)
	return nil
}
