package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <device>",
		Short: "Show the size and geometry of a disk or image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.openDisk(args[0])
			if err != nil {
				return err
			}
			defer d.Close()

			size, err := a.units.FormatByte(d, d.Size)
			if err != nil {
				return err
			}
			chs := d.BIOSGeometry()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "path:          %s\n", args[0])
			fmt.Fprintf(out, "type:          %s\n", d.Type)
			fmt.Fprintf(out, "size:          %s\n", size)
			fmt.Fprintf(out, "sectors:       %d\n", d.Length())
			fmt.Fprintf(out, "sector size:   %d logical, %d physical\n", d.LogicalBlocksize, d.PhysicalBlocksize)
			fmt.Fprintf(out, "bios geometry: %d,%d,%d\n", chs.Cylinders, chs.Heads, chs.Sectors)
			return nil
		},
	}
}
