/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

// Package report computes area-weighted continental mean timeseries
// and writes them as CSV, optionally with a timeseries chart.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/ozwater/awaptools/archive"
	"github.com/ozwater/awaptools/config"
	"github.com/ozwater/awaptools/fieldplot"
	"github.com/ozwater/awaptools/fsutil"
	"github.com/ozwater/awaptools/stats"
)

// FieldSeries computes the continental mean series for one field over
// one sampling interval.
func FieldSeries(s *config.Settings, root, tag, interval string, minDate, maxDate int) (*stats.Series, error) {
	dirName, err := s.FieldDir(tag)
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(root, dirName)
	if err := fsutil.CheckReadableDir(dir); err != nil {
		return nil, err
	}

	stems, err := archive.SortedList(dir)
	if err != nil {
		return nil, err
	}
	stems, err = fieldplot.SelectFiles(stems, tag, interval, minDate, maxDate)
	if err != nil {
		return nil, err
	}
	if len(stems) == 0 {
		return nil, fmt.Errorf("no %s files for field %s under %s", interval, tag, dir)
	}

	series, err := stats.ContinentalMeanSeries(dir, stems)
	if err != nil {
		return nil, err
	}
	if renorm := s.Renorm(tag); renorm != 1 {
		for i := range series.Values {
			series.Values[i] *= renorm
		}
	}
	return series, nil
}

// WriteCSV writes a series as date,value rows with a header.
func WriteCSV(w io.Writer, tag string, series *stats.Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", tag}); err != nil {
		return err
	}
	for i, d := range series.Dates {
		row := []string{
			strconv.Itoa(d),
			strconv.FormatFloat(series.Values[i], 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteChart renders the series as a PNG line chart against Julian
// time.
func WriteChart(tag string, series *stats.Series, filename string) error {
	graph := chart.Chart{
		Title:  tag + " continental mean",
		Width:  1200,
		Height: 600,
		XAxis: chart.XAxis{
			Name: "Julian date",
		},
		YAxis: chart.YAxis{
			Name: tag,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    tag,
				XValues: series.Times,
				YValues: series.Values,
			},
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
