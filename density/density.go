/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

// Package density estimates and charts the distribution of field
// values pooled over space and time, one chart per field and season.
package density

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
	"golang.org/x/sync/errgroup"

	"github.com/ozwater/awaptools/config"
	"github.com/ozwater/awaptools/cube"
	"github.com/ozwater/awaptools/fsutil"
	"github.com/ozwater/awaptools/logging"
	"github.com/ozwater/awaptools/stats"
)

// Run builds a density chart for every field and season the job
// selects.
func Run(ctx context.Context, s *config.Settings, job *config.DensityJob) error {
	if err := fsutil.CheckReadableDir(job.InputRoot); err != nil {
		return fmt.Errorf("input data root: %w", err)
	}
	if err := fsutil.EnsureDir(job.OutputRoot); err != nil {
		return fmt.Errorf("output chart root: %w", err)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(s.Workers)
	for _, tag := range job.Fields {
		for _, season := range job.Seasons {
			tag, season := tag, season
			eg.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := chartFieldSeason(s, job, tag, season); err != nil {
					return fmt.Errorf("field %s season %s: %w", tag, season, err)
				}
				return nil
			})
		}
	}
	return eg.Wait()
}

func chartFieldSeason(s *config.Settings, job *config.DensityJob, tag, season string) error {
	dirName, err := s.FieldDir(tag)
	if err != nil {
		return err
	}

	c, err := cube.Build(job.InputRoot, dirName, cube.Options{
		SamplingInterval: job.Interval,
		CycleFilter:      season,
	})
	if err != nil {
		return err
	}

	sample := c.Sample(s.Renorm(tag))
	hist, err := stats.ScottHistogram(sample)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s %s density, %d-%d (%d bins)",
		tag, season, c.StartDate()/10000, c.EndDate()/10000, hist.NumBins())
	logging.Info("density chart", "field", tag, "season", season, "samples", len(sample), "bins", hist.NumBins())

	outFile := filepath.Join(job.OutputRoot,
		fmt.Sprintf("density_%s_%s_%d-%d.png", dirName, season, c.StartDate(), c.EndDate()))
	return writeChart(hist, title, outFile)
}

// barWidth divides the chart's plot width between n bars, never
// dropping below the 1 pixel minimum go-chart accepts.
func barWidth(n int) int {
	w := 1000 / n
	if w < 1 {
		w = 1
	}
	return w
}

// writeChart renders a histogram as a PNG bar chart, bars labelled
// with their bin centres.
func writeChart(hist *stats.Histogram, title, filename string) error {
	bars := make([]chart.Value, hist.NumBins())
	for i := range bars {
		centre := 0.5 * (hist.Edges[i] + hist.Edges[i+1])
		bars[i] = chart.Value{
			Value: hist.Density[i],
			Label: fmt.Sprintf("%.3g", centre),
		}
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    1200,
		Height:   800,
		BarWidth: barWidth(len(bars)),
		Bars:     bars,
		YAxis: chart.YAxis{
			Name: "probability density",
		},
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := graph.Render(chart.PNG, f); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", filename, err)
	}
	return f.Close()
}
