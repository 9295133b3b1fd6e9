package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cropwise/cropwise/pkg/location"
)

func newLocationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locations [TERM]",
		Short: "List or search the supported states",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g := location.India()
			states := g.States()
			if len(args) == 1 {
				states = g.Search(args[0])
				if len(states) == 0 {
					return fmt.Errorf("no state matches %q", args[0])
				}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "STATE\tLATITUDE\tLONGITUDE")
			for _, s := range states {
				fmt.Fprintf(tw, "%s\t%.4f\t%.4f\n", s.Name, s.Coordinates.Latitude, s.Coordinates.Longitude)
			}
			return tw.Flush()
		},
	}
}
