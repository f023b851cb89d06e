/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/ozwater/awaptools/archive"
	"github.com/ozwater/awaptools/config"
	"github.com/ozwater/awaptools/fsutil"
	"github.com/ozwater/awaptools/logging"
)

var reportopts struct {
	configFile string
	inputRoot  string
	field      string
	interval   string
	outputDir  string
	withChart  bool
}

var Command = &cli.Command{
	Name:   "stats",
	Usage:  "Compute continental mean timeseries for a field.",
	Action: reportCmd,
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "job settings file",
			Required:    true,
			Destination: &reportopts.configFile,
		},
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "archive root holding the field directories",
			Required:    true,
			Destination: &reportopts.inputRoot,
		},
		&cli.StringFlag{
			Name:        "field",
			Aliases:     []string{"f"},
			Usage:       "field tag to average",
			Required:    true,
			Destination: &reportopts.field,
		},
		&cli.StringFlag{
			Name:        "interval",
			Usage:       "sampling interval tag",
			Value:       archive.SampleMonthly,
			Destination: &reportopts.interval,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "directory to write CSV (and chart) into instead of stdout",
			Destination: &reportopts.outputDir,
		},
		&cli.BoolFlag{
			Name:        "chart",
			Usage:       "also render a PNG timeseries chart (requires --output)",
			Destination: &reportopts.withChart,
		},
	}, logging.Flags...),
}

func reportCmd(cc *cli.Context) error {
	logging.Setup()

	if reportopts.withChart && reportopts.outputDir == "" {
		return fmt.Errorf("--chart requires --output")
	}

	settings, err := config.Load(reportopts.configFile)
	if err != nil {
		return err
	}

	series, err := FieldSeries(settings, reportopts.inputRoot, reportopts.field, reportopts.interval, 0, 0)
	if err != nil {
		return err
	}
	logging.Info("series computed", "field", reportopts.field, "samples", len(series.Values))

	if reportopts.outputDir == "" {
		return WriteCSV(cc.App.Writer, reportopts.field, series)
	}

	if err := fsutil.EnsureDir(reportopts.outputDir); err != nil {
		return err
	}
	base := "mean_" + reportopts.field + "_" + reportopts.interval

	f, err := os.Create(filepath.Join(reportopts.outputDir, base+".csv"))
	if err != nil {
		return err
	}
	if err := WriteCSV(f, reportopts.field, series); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	if reportopts.withChart {
		return WriteChart(reportopts.field, series, filepath.Join(reportopts.outputDir, base+".png"))
	}
	return nil
}
