// Package cmd implements the diskgeom command line interface
package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/diskfs/go-diskgeom"
	"github.com/diskfs/go-diskgeom/disk"
	"github.com/diskfs/go-diskgeom/geom"
	"github.com/diskfs/go-diskgeom/unit"
)

const AppName = "diskgeom"

// app is the state shared by the commands of one command tree
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     Config
	log     *logrus.Logger
	units   *unit.Context
}

func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the command tree with its own configuration and logger
func NewRootCommand() *cobra.Command {
	a := &app{
		v:     viper.New(),
		log:   logrus.New(),
		units: unit.NewContext(),
	}

	rootCmd := &cobra.Command{
		Use:   AppName,
		Short: AppName + " - sector geometry of disks and disk images",
		Long: AppName + ` works out regions, units and locations on block devices and
disk images without reading partition tables or filesystems.

Locations are given as a number with an optional unit, e.g. 2048s, 1MiB,
10GB, 50% or -1s for the last sector, or as cylinder,head,sector.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is ./diskgeom.yaml or $HOME/.config/diskgeom/diskgeom.yaml)")
	pf.StringP("unit", "u", "compact", "default unit: s, B, kB, MB, GB, TB, compact, cyl, chs, %, KiB, MiB, GiB, TiB")
	pf.String("log-level", "warning", "log level: debug, info, warning, error")
	pf.Int("sector-size", 0, "logical sector size of disk images, 0 for 512")
	for _, name := range []string{"unit", "log-level", "sector-size"} {
		_ = a.v.BindPFlag(name, pf.Lookup(name))
	}

	rootCmd.AddCommand(
		a.infoCommand(),
		a.formatCommand(),
		a.parseCommand(),
		a.checkCommand(),
		a.compareCommand(),
		a.dumpCommand(),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.log.SetLevel(level)
	a.log.SetOutput(cmd.ErrOrStderr())

	u, ok := unit.ByName(cfg.Unit)
	if !ok {
		return fmt.Errorf("unknown unit %q: %w", cfg.Unit, unit.ErrInvalidUnit)
	}
	return a.units.SetDefault(u)
}

func (a *app) openDisk(path string) (*disk.Disk, error) {
	d, err := diskgeom.Open(path,
		diskgeom.WithOpenMode(diskgeom.ReadOnly),
		diskgeom.WithSectorSize(diskgeom.SectorSize(a.cfg.SectorSize)),
		diskgeom.WithLogger(a.log),
	)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	return d, nil
}

// region parses two locations into the region running from the first to the second
func (a *app) region(d *disk.Disk, start, end string) (*geom.Region, error) {
	s, err := a.units.Parse(start, d)
	if err != nil {
		return nil, err
	}
	e, err := a.units.Parse(end, d)
	if err != nil {
		return nil, err
	}
	if e.Sector < s.Sector {
		return nil, fmt.Errorf("end %s is before start %s", end, start)
	}
	return geom.New(d, s.Sector, e.Sector-s.Sector+1)
}
