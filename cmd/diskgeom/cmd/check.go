package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/diskfs/go-diskgeom/internal/pbar"
)

var (
	errBadSectors = errors.New("bad sectors found")
	errCancelled  = errors.New("check cancelled")
)

func (a *app) checkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <device> <start> <end>",
		Short: "Scan a region for unreadable sectors",
		Long: `Reads every sector from start to end, a buffer at a time. When a
buffer cannot be read it is read again in chunks of granularity sectors to
find the first bad one. Ctrl-C stops the scan at the next buffer.`,
		Args: cobra.ExactArgs(3),
		RunE: a.runCheck,
	}
	cmd.Flags().Int64("granularity", 1, "sectors read at a time when narrowing down a failed buffer")
	cmd.Flags().Int64("buffer", 2048, "sectors read at a time")
	cmd.Flags().Bool("no-progress", false, "do not show a progress bar")
	_ = a.v.BindPFlag("granularity", cmd.Flags().Lookup("granularity"))
	return cmd
}

func (a *app) runCheck(cmd *cobra.Command, args []string) error {
	bufSectors, _ := cmd.Flags().GetInt64("buffer")
	noProgress, _ := cmd.Flags().GetBool("no-progress")
	if bufSectors < 1 {
		return fmt.Errorf("invalid buffer of %d sectors", bufSectors)
	}

	d, err := a.openDisk(args[0])
	if err != nil {
		return err
	}
	defer d.Close()
	r, err := a.region(d, args[1], args[2])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	log := a.log.WithFields(logrus.Fields{
		"run":    uuid.NewString(),
		"device": args[0],
		"region": r.String(),
	})
	log.Info("starting check")

	var bar *pbar.State
	if !noProgress {
		bar = pbar.New(cmd.ErrOrStderr(), r.Length(), func(n int64) string {
			s, err := a.units.FormatByte(d, n*d.SectorSize())
			if err != nil {
				return fmt.Sprintf("%ds", n)
			}
			return s
		})
	}
	progress := func(done, _ int64) bool {
		if bar != nil {
			bar.Update(done)
		}
		return ctx.Err() == nil
	}

	res, err := r.Check(make([]byte, bufSectors*d.SectorSize()), 0, a.cfg.Granularity, r.Length(), progress)
	if bar != nil {
		bar.Done = res.Verified
		bar.Render(true)
		bar.Finish()
	}
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"verified":  res.Verified,
		"bad":       res.Bad,
		"cancelled": res.Cancelled,
	}).Info("check finished")

	out := cmd.OutOrStdout()
	switch {
	case res.Cancelled:
		fmt.Fprintf(out, "cancelled after %d of %d sectors\n", res.Verified, r.Length())
		return errCancelled
	case res.Bad:
		sector := r.Start() + res.Sector
		where, err := a.units.Format(d, sector)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "bad sector at %d (%s)\n", sector, where)
		return errBadSectors
	}
	fmt.Fprintf(out, "%d sectors ok\n", res.Verified)
	return nil
}
