package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func (a *app) formatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format <device> <sector>...",
		Short: "Describe sectors, or byte offsets, in the default unit",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bytes, _ := cmd.Flags().GetBool("bytes")

			d, err := a.openDisk(args[0])
			if err != nil {
				return err
			}
			defer d.Close()

			for _, arg := range args[1:] {
				n, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid offset %q: %w", arg, err)
				}
				var s string
				if bytes {
					s, err = a.units.FormatByte(d, n)
				} else {
					s, err = a.units.Format(d, n)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", arg, s)
			}
			return nil
		},
	}
	cmd.Flags().Bool("bytes", false, "offsets are bytes instead of sectors")
	return cmd
}
