/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

// Package fieldplot renders every file of selected archive fields as
// continental plot images, full size and thumbnail, fanned out across
// a worker pool.
package fieldplot

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"golang.org/x/sync/errgroup"

	"github.com/ozwater/awaptools/archive"
	"github.com/ozwater/awaptools/config"
	"github.com/ozwater/awaptools/fsutil"
	"github.com/ozwater/awaptools/grid"
	"github.com/ozwater/awaptools/logging"
	"github.com/ozwater/awaptools/region"
	"github.com/ozwater/awaptools/render"
	"github.com/ozwater/awaptools/work"
)

// Raster resolutions in pixels per mm: full size matches a 300 dpi
// print, thumbnails are rendered small and downscaled.
const (
	FullDPMM  = 300.0 / 25.4
	ThumbDPMM = 2.0
)

// Image directory names under each field's output tree.
const (
	FullDirName  = "Full"
	ThumbDirName = "Thumbnail"
)

// Run plots every file of every field the job selects.
func Run(ctx context.Context, s *config.Settings, job *config.FieldPlotJob) error {
	if err := fsutil.CheckReadableDir(job.InputRoot); err != nil {
		return fmt.Errorf("input data root: %w", err)
	}
	if err := fsutil.EnsureDir(job.OutputRoot); err != nil {
		return fmt.Errorf("output image root: %w", err)
	}

	styles, err := render.LoadStyles(job.PlotParsFile)
	if err != nil {
		return err
	}
	boundaries, err := render.LoadBoundaries(job.BoundaryFile)
	if err != nil {
		return err
	}

	maskHeader, err := grid.ReadHeader(job.RegionMask + grid.HeaderExt)
	if err != nil {
		return fmt.Errorf("region mask: %w", err)
	}
	reg, err := region.New(maskHeader, job.RegionName, job.RegionType, false)
	if err != nil {
		return err
	}

	// Directory trees are created before the workers start.
	for _, tag := range job.Fields {
		dirName, err := s.FieldDir(tag)
		if err != nil {
			return err
		}
		for _, sub := range []string{FullDirName, ThumbDirName} {
			if err := fsutil.EnsureDir(filepath.Join(job.OutputRoot, dirName, sub)); err != nil {
				return err
			}
		}
	}

	hands, err := work.Deal(job.Fields, s.Workers)
	if err != nil {
		return fmt.Errorf("field decomposition: %w", err)
	}

	prof := work.NewProfile()
	eg, ctx := errgroup.WithContext(ctx)
	for _, hand := range hands {
		hand := hand
		eg.Go(func() error {
			for _, tag := range hand {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := plotField(ctx, s, job, reg, boundaries, styles, prof, tag); err != nil {
					return fmt.Errorf("field %s: %w", tag, err)
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	var sb strings.Builder
	prof.Summary(&sb)
	logging.Info("timing profile\n" + sb.String())
	return nil
}

func plotField(ctx context.Context, s *config.Settings, job *config.FieldPlotJob, reg *region.Region, boundaries []orb.LineString, styles map[string]render.Style, prof *work.Profile, tag string) error {
	defer prof.Track("field " + tag)()

	dirName, err := s.FieldDir(tag)
	if err != nil {
		return err
	}
	style, ok := styles[tag]
	if !ok {
		return fmt.Errorf("no plot parameters for %s", tag)
	}

	renorm := s.Renorm(tag)
	ramp, err := render.LoadRamp(render.RampPath(job.ColourTableDir, tag))
	if err != nil {
		return err
	}

	fig := &render.Figure{
		FontFile:    s.FontFile,
		Title:       style.Title,
		RegionLabel: regionLabel(job),
		BarCaption:  style.BarCaption,
		ShowBar:     job.ShowColourBar == nil || *job.ShowColourBar,
		MinVal:      style.MinVal * renorm,
		MaxVal:      style.MaxVal * renorm,
		Ramp:        ramp,
		Boundaries:  boundaries,
	}

	inputDir := filepath.Join(job.InputRoot, dirName)
	stems, err := archive.SortedList(inputDir)
	if err != nil {
		return err
	}

	for _, interval := range job.Intervals {
		selected, err := SelectFiles(stems, tag, interval, job.MinDate, job.MaxDate)
		if err != nil {
			return err
		}
		logging.Debug("plotting files", "field", tag, "interval", interval, "count", len(selected))

		for _, stem := range selected {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := plotFile(job, reg, fig, inputDir, dirName, stem, renorm, tag); err != nil {
				return err
			}
		}
	}
	return nil
}

// SelectFiles narrows an archive listing to one sampling interval,
// keeping percentile rank files only for percentile rank fields, and
// applies the job's date window.
func SelectFiles(stems []string, tag, interval string, minDate, maxDate int) ([]string, error) {
	selected, err := archive.FilterBySamplingInterval(stems, interval)
	if err != nil {
		return nil, err
	}
	if archive.IsPercentileRankField(tag) {
		selected = archive.ExtractPercentileRank(selected)
	} else {
		selected = archive.ExcludePercentileRank(selected)
	}
	if minDate != 0 || maxDate != 0 {
		min, max := minDate, maxDate
		if max == 0 {
			max = 99999999
		}
		selected, err = archive.FilterByDateRange(selected, min, max)
		if err != nil {
			return nil, err
		}
	}
	return selected, nil
}

func plotFile(job *config.FieldPlotJob, reg *region.Region, fig *render.Figure, inputDir, dirName, stem string, renorm float64, tag string) error {
	h, err := grid.ReadHeader(filepath.Join(inputDir, stem+grid.HeaderExt))
	if err != nil {
		return err
	}
	if h.NRows != reg.NumLats || h.NCols != reg.NumLons {
		return fmt.Errorf("file %s layout %dx%d does not match region %s", stem, h.NRows, h.NCols, reg.Name)
	}
	g, err := grid.ReadGrid(h, "")
	if err != nil {
		return err
	}
	if renorm != 1 {
		g.Scale(renorm)
	}

	dateRange, err := archive.DateRange(stem)
	if err != nil {
		return err
	}
	fig.DateLabel = dateRange

	c, err := fig.Draw(g)
	if err != nil {
		return err
	}

	fullFile := filepath.Join(job.OutputRoot, dirName, FullDirName, stem+".jpeg")
	if err := render.WriteJPEG(c, fullFile, FullDPMM); err != nil {
		return err
	}
	thumbFile := filepath.Join(job.OutputRoot, dirName, ThumbDirName, stem+".jpeg")
	if err := render.WriteThumbnail(c, thumbFile, ThumbDPMM); err != nil {
		return err
	}

	logging.Debug("plotted", "field", tag, "file", stem)
	return nil
}

func regionLabel(job *config.FieldPlotJob) string {
	if job.ShowRegionName == nil || !*job.ShowRegionName {
		return ""
	}
	label := job.RegionName
	if job.ShowRegionType != nil && *job.ShowRegionType && job.RegionType != "" {
		label = job.RegionType + ": " + label
	}
	return label
}
