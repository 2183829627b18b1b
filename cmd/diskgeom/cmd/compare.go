package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diskfs/go-diskgeom/geom"
)

func (a *app) compareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <device> <startA> <endA> <startB> <endB>",
		Short: "Compare two regions of a disk",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.openDisk(args[0])
			if err != nil {
				return err
			}
			defer d.Close()

			ra, err := a.region(d, args[1], args[2])
			if err != nil {
				return err
			}
			rb, err := a.region(d, args[3], args[4])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "a:            %s\n", ra)
			fmt.Fprintf(out, "b:            %s\n", rb)
			fmt.Fprintf(out, "overlap:      %t\n", geom.TestOverlap(ra, rb))
			fmt.Fprintf(out, "a inside b:   %t\n", geom.TestInside(rb, ra))
			fmt.Fprintf(out, "b inside a:   %t\n", geom.TestInside(ra, rb))
			fmt.Fprintf(out, "equal:        %t\n", geom.TestEqual(ra, rb))
			if shared, ok := geom.Intersect(ra, rb); ok {
				fmt.Fprintf(out, "intersection: %s\n", shared)
				fmt.Fprintf(out, "offset in a:  %d\n", shared.Start()-ra.Start())
				fmt.Fprintf(out, "offset in b:  %d\n", shared.Start()-rb.Start())
			} else {
				fmt.Fprintln(out, "intersection: none")
			}

			if loc, _ := cmd.Flags().GetString("map"); loc != "" {
				l, err := a.units.Parse(loc, d)
				if err != nil {
					return err
				}
				mapped, err := geom.Map(rb, ra, l.Sector)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "map:          %d in a is %d in b\n", l.Sector, mapped)
			}
			return nil
		},
	}
	cmd.Flags().String("map", "", "translate a location inside region a to the same position in region b")
	return cmd
}
