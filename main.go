/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ozwater/awaptools/density"
	"github.com/ozwater/awaptools/fieldplot"
	"github.com/ozwater/awaptools/inspect"
	"github.com/ozwater/awaptools/movie"
	"github.com/ozwater/awaptools/regionplot"
	"github.com/ozwater/awaptools/report"
)

func main() {
	app := &cli.App{
		Name:     "awaptools",
		HelpName: "awaptools",
		Usage:    "Plot, chart and animate AWAP water availability fields",
		Commands: []*cli.Command{
			fieldplot.Command,
			regionplot.Command,
			movie.Command,
			density.Command,
			report.Command,
			inspect.Command,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}
