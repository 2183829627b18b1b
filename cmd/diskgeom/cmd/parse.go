package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) parseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <device> <location>...",
		Short: "Resolve locations to a sector and the range they could mean",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.openDisk(args[0])
			if err != nil {
				return err
			}
			defer d.Close()

			for _, arg := range args[1:] {
				loc, err := a.units.Parse(arg, d)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n", arg, loc.Sector, loc.Range)
			}
			return nil
		},
	}
}
