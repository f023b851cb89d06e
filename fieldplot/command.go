/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

package fieldplot

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ozwater/awaptools/config"
	"github.com/ozwater/awaptools/logging"
)

var fieldplotopts struct {
	configFile string
	jobName    string
}

var Command = &cli.Command{
	Name:   "fields",
	Usage:  "Plot continental field images from a gridded archive.",
	Action: fieldplotCmd,
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "job settings file",
			Required:    true,
			Destination: &fieldplotopts.configFile,
		},
		&cli.StringFlag{
			Name:        "job",
			Usage:       "name of the field_plots job to run (defaults to the only one)",
			Destination: &fieldplotopts.jobName,
		},
	}, logging.Flags...),
}

func fieldplotCmd(cc *cli.Context) error {
	logging.Setup()

	settings, err := config.Load(fieldplotopts.configFile)
	if err != nil {
		return err
	}
	if logging.Opts.VeryVerbose {
		logging.Dump(settings)
	}

	job, err := pickJob(settings, fieldplotopts.jobName)
	if err != nil {
		return err
	}

	return Run(cc.Context, settings, job)
}

func pickJob(s *config.Settings, name string) (*config.FieldPlotJob, error) {
	if name == "" {
		if len(s.FieldPlots) == 1 {
			return s.FieldPlots[0], nil
		}
		return nil, fmt.Errorf("settings declare %d field_plots jobs, pick one with --job", len(s.FieldPlots))
	}
	for _, j := range s.FieldPlots {
		if j.Name == name {
			return j, nil
		}
	}
	return nil, fmt.Errorf("no field_plots job named %q", name)
}
