/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

// Package inspect prints diagnostic summaries of archive cubes and
// region masks.
package inspect

import (
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/ozwater/awaptools/archive"
	"github.com/ozwater/awaptools/cube"
	"github.com/ozwater/awaptools/grid"
	"github.com/ozwater/awaptools/logging"
	"github.com/ozwater/awaptools/region"
)

var Command = &cli.Command{
	Name:  "info",
	Usage: "Print diagnostic summaries of archive data.",
	Subcommands: []*cli.Command{
		cubeCommand,
		regionCommand,
	},
}

var cubeopts struct {
	inputRoot string
	field     string
	interval  string
	cycle     string
	withTimes bool
	withFiles bool
}

var cubeCommand = &cli.Command{
	Name:   "cube",
	Usage:  "Summarise the data cube of one field directory.",
	Action: cubeCmd,
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "archive root holding the field directories",
			Required:    true,
			Destination: &cubeopts.inputRoot,
		},
		&cli.StringFlag{
			Name:        "field",
			Aliases:     []string{"f"},
			Usage:       "field directory name",
			Required:    true,
			Destination: &cubeopts.field,
		},
		&cli.StringFlag{
			Name:        "interval",
			Usage:       "sampling interval tag",
			Value:       archive.SampleMonthly,
			Destination: &cubeopts.interval,
		},
		&cli.StringFlag{
			Name:        "cycle",
			Usage:       "restrict to a month (jan) or season (djf)",
			Destination: &cubeopts.cycle,
		},
		&cli.BoolFlag{
			Name:        "times",
			Usage:       "list the time stamps",
			Destination: &cubeopts.withTimes,
		},
		&cli.BoolFlag{
			Name:        "files",
			Usage:       "list the source files",
			Destination: &cubeopts.withFiles,
		},
	}, logging.Flags...),
}

func cubeCmd(cc *cli.Context) error {
	logging.Setup()

	c, err := cube.Build(cubeopts.inputRoot, cubeopts.field, cube.Options{
		SamplingInterval: cubeopts.interval,
		CycleFilter:      cubeopts.cycle,
	})
	if err != nil {
		return err
	}

	c.Summary(cc.App.Writer, cubeopts.withTimes, cubeopts.withFiles)
	return nil
}

var regionopts struct {
	maskStem   string
	name       string
	regionType string
	subregions bool
}

var regionCommand = &cli.Command{
	Name:   "region",
	Usage:  "Summarise a region mask and its subregions.",
	Action: regionCmd,
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:        "mask",
			Aliases:     []string{"m"},
			Usage:       "region mask filename stem (no extension)",
			Required:    true,
			Destination: &regionopts.maskStem,
		},
		&cli.StringFlag{
			Name:        "name",
			Usage:       "region name",
			Destination: &regionopts.name,
		},
		&cli.StringFlag{
			Name:        "type",
			Usage:       "region type",
			Destination: &regionopts.regionType,
		},
		&cli.BoolFlag{
			Name:        "subregions",
			Usage:       "summarise every subregion in the lookup table",
			Destination: &regionopts.subregions,
		},
	}, logging.Flags...),
}

func regionCmd(cc *cli.Context) error {
	logging.Setup()

	h, err := grid.ReadHeader(regionopts.maskStem + grid.HeaderExt)
	if err != nil {
		return err
	}

	parent, err := region.New(h, regionopts.name, regionopts.regionType, regionopts.subregions)
	if err != nil {
		return err
	}
	parent.Summary(cc.App.Writer)

	if !regionopts.subregions {
		return nil
	}

	ids := make([]int, 0, len(parent.SubRegionIDs))
	for _, id := range parent.SubRegionIDs {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		name, err := parent.SubRegionName(id)
		if err != nil {
			return err
		}
		sub, err := region.NewSubRegion(parent, id, nil, name, regionopts.regionType)
		if err != nil {
			return err
		}
		sub.Summary(cc.App.Writer)
	}
	return nil
}
