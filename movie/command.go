/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

package movie

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ozwater/awaptools/config"
	"github.com/ozwater/awaptools/logging"
)

var movieopts struct {
	configFile string
	jobName    string
}

var Command = &cli.Command{
	Name:   "movies",
	Usage:  "Encode plotted field images into movies.",
	Action: movieCmd,
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "job settings file",
			Required:    true,
			Destination: &movieopts.configFile,
		},
		&cli.StringFlag{
			Name:        "job",
			Usage:       "name of the movies job to run (defaults to the only one)",
			Destination: &movieopts.jobName,
		},
	}, logging.Flags...),
}

func movieCmd(cc *cli.Context) error {
	logging.Setup()

	settings, err := config.Load(movieopts.configFile)
	if err != nil {
		return err
	}
	if logging.Opts.VeryVerbose {
		logging.Dump(settings)
	}

	job, err := pickJob(settings, movieopts.jobName)
	if err != nil {
		return err
	}

	return Run(cc.Context, settings, job)
}

func pickJob(s *config.Settings, name string) (*config.MovieJob, error) {
	if name == "" {
		if len(s.Movies) == 1 {
			return s.Movies[0], nil
		}
		return nil, fmt.Errorf("settings declare %d movies jobs, pick one with --job", len(s.Movies))
	}
	for _, j := range s.Movies {
		if j.Name == name {
			return j, nil
		}
	}
	return nil, fmt.Errorf("no movies job named %q", name)
}
