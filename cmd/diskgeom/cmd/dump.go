package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/diskfs/go-diskgeom/geom"
	"github.com/diskfs/go-diskgeom/util"
)

func (a *app) dumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <device> <location> [count]",
		Short: "Hex dump count sectors, default 1, beginning at location",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			count := int64(1)
			if len(args) == 3 {
				n, err := strconv.ParseInt(args[2], 10, 64)
				if err != nil || n < 1 {
					return fmt.Errorf("invalid sector count %q", args[2])
				}
				count = n
			}

			d, err := a.openDisk(args[0])
			if err != nil {
				return err
			}
			defer d.Close()

			loc, err := a.units.Parse(args[1], d)
			if err != nil {
				return err
			}
			r, err := geom.New(d, loc.Sector, count)
			if err != nil {
				return err
			}
			buf := make([]byte, count*d.SectorSize())
			if err := r.Read(buf, 0, count); err != nil {
				return err
			}
			return util.DumpByteSlice(cmd.OutOrStdout(), buf, r.Start()*d.SectorSize(), 16)
		},
	}
}
