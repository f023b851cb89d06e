/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

package density

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ozwater/awaptools/config"
	"github.com/ozwater/awaptools/logging"
)

var densityopts struct {
	configFile string
	jobName    string
}

var Command = &cli.Command{
	Name:   "densities",
	Usage:  "Chart seasonal value distributions for archive fields.",
	Action: densityCmd,
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "job settings file",
			Required:    true,
			Destination: &densityopts.configFile,
		},
		&cli.StringFlag{
			Name:        "job",
			Usage:       "name of the densities job to run (defaults to the only one)",
			Destination: &densityopts.jobName,
		},
	}, logging.Flags...),
}

func densityCmd(cc *cli.Context) error {
	logging.Setup()

	settings, err := config.Load(densityopts.configFile)
	if err != nil {
		return err
	}
	if logging.Opts.VeryVerbose {
		logging.Dump(settings)
	}

	job, err := pickJob(settings, densityopts.jobName)
	if err != nil {
		return err
	}

	return Run(cc.Context, settings, job)
}

func pickJob(s *config.Settings, name string) (*config.DensityJob, error) {
	if name == "" {
		if len(s.Densities) == 1 {
			return s.Densities[0], nil
		}
		return nil, fmt.Errorf("settings declare %d densities jobs, pick one with --job", len(s.Densities))
	}
	for _, j := range s.Densities {
		if j.Name == name {
			return j, nil
		}
	}
	return nil, fmt.Errorf("no densities job named %q", name)
}
