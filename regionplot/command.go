/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

package regionplot

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ozwater/awaptools/config"
	"github.com/ozwater/awaptools/logging"
)

var regionplotopts struct {
	configFile string
	jobName    string
}

var Command = &cli.Command{
	Name:   "regions",
	Usage:  "Plot per-subregion field images from a gridded archive.",
	Action: regionplotCmd,
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "job settings file",
			Required:    true,
			Destination: &regionplotopts.configFile,
		},
		&cli.StringFlag{
			Name:        "job",
			Usage:       "name of the region_plots job to run (defaults to the only one)",
			Destination: &regionplotopts.jobName,
		},
	}, logging.Flags...),
}

func regionplotCmd(cc *cli.Context) error {
	logging.Setup()

	settings, err := config.Load(regionplotopts.configFile)
	if err != nil {
		return err
	}
	if logging.Opts.VeryVerbose {
		logging.Dump(settings)
	}

	job, err := pickJob(settings, regionplotopts.jobName)
	if err != nil {
		return err
	}

	return Run(cc.Context, settings, job)
}

func pickJob(s *config.Settings, name string) (*config.RegionPlotJob, error) {
	if name == "" {
		if len(s.RegionPlots) == 1 {
			return s.RegionPlots[0], nil
		}
		return nil, fmt.Errorf("settings declare %d region_plots jobs, pick one with --job", len(s.RegionPlots))
	}
	for _, j := range s.RegionPlots {
		if j.Name == name {
			return j, nil
		}
	}
	return nil, fmt.Errorf("no region_plots job named %q", name)
}
