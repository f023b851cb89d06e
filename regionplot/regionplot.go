/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

// Package regionplot renders selected archive fields windowed to each
// chosen subregion, one image tree per subregion.
package regionplot

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"golang.org/x/sync/errgroup"

	"github.com/ozwater/awaptools/archive"
	"github.com/ozwater/awaptools/config"
	"github.com/ozwater/awaptools/fieldplot"
	"github.com/ozwater/awaptools/fsutil"
	"github.com/ozwater/awaptools/grid"
	"github.com/ozwater/awaptools/logging"
	"github.com/ozwater/awaptools/region"
	"github.com/ozwater/awaptools/render"
	"github.com/ozwater/awaptools/work"
)

// Run plots every selected field windowed to every selected
// subregion.
func Run(ctx context.Context, s *config.Settings, job *config.RegionPlotJob) error {
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
	parent, err := region.New(maskHeader, job.RegionName, job.RegionType, true)
	if err != nil {
		return err
	}

	subs, err := buildSubRegions(parent, job)
	if err != nil {
		return err
	}

	// Directory trees are created before the workers start.
	for _, sub := range subs {
		for _, tag := range job.Fields {
			dirName, err := s.FieldDir(tag)
			if err != nil {
				return err
			}
			base := filepath.Join(job.OutputRoot, job.SubRegionType, strconv.Itoa(sub.ID), dirName)
			for _, d := range []string{fieldplot.FullDirName, fieldplot.ThumbDirName} {
				if err := fsutil.EnsureDir(filepath.Join(base, d)); err != nil {
					return err
				}
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
				if err := plotField(ctx, s, job, parent, subs, boundaries, styles, prof, tag); err != nil {
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

// buildSubRegions cuts the job's subregions out of the parent, either
// every entry in the mask's lookup table or the listed IDs.
func buildSubRegions(parent *region.Region, job *config.RegionPlotJob) ([]*region.SubRegion, error) {
	ids := job.SubRegionIDs
	if job.AllSubRegions {
		ids = ids[:0]
		for _, id := range parent.SubRegionIDs {
			ids = append(ids, id)
		}
		sort.Ints(ids)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no subregions selected for %s", parent.Name)
	}

	subs := make([]*region.SubRegion, 0, len(ids))
	for _, id := range ids {
		name, err := parent.SubRegionName(id)
		if err != nil {
			return nil, err
		}
		sub, err := region.NewSubRegion(parent, id, nil, name, job.SubRegionType)
		if err != nil {
			return nil, err
		}
		logging.Info("subregion ready", "name", name, "id", id, "points", sub.UnmaskedPoints)
		subs = append(subs, sub)
	}
	return subs, nil
}

func plotField(ctx context.Context, s *config.Settings, job *config.RegionPlotJob, parent *region.Region, subs []*region.SubRegion, boundaries []orb.LineString, styles map[string]render.Style, prof *work.Profile, tag string) error {
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

	inputDir := filepath.Join(job.InputRoot, dirName)
	stems, err := archive.SortedList(inputDir)
	if err != nil {
		return err
	}

	for _, interval := range job.Intervals {
		selected, err := fieldplot.SelectFiles(stems, tag, interval, job.MinDate, job.MaxDate)
		if err != nil {
			return err
		}
		logging.Debug("plotting files", "field", tag, "interval", interval, "count", len(selected))

		for _, stem := range selected {
			if err := ctx.Err(); err != nil {
				return err
			}

			h, err := grid.ReadHeader(filepath.Join(inputDir, stem+grid.HeaderExt))
			if err != nil {
				return err
			}
			if h.NRows != parent.NumLats || h.NCols != parent.NumLons {
				return fmt.Errorf("file %s layout %dx%d does not match region %s", stem, h.NRows, h.NCols, parent.Name)
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

			for _, sub := range subs {
				fig := &render.Figure{
					FontFile:    s.FontFile,
					Title:       style.Title,
					DateLabel:   dateRange,
					RegionLabel: subRegionLabel(job, sub),
					BarCaption:  style.BarCaption,
					ShowBar:     job.ShowColourBar == nil || *job.ShowColourBar,
					MinVal:      style.MinVal * renorm,
					MaxVal:      style.MaxVal * renorm,
					Ramp:        ramp,
					Boundaries:  boundaries,
				}

				c, err := fig.Draw(sub.Window(g))
				if err != nil {
					return err
				}

				base := filepath.Join(job.OutputRoot, job.SubRegionType, strconv.Itoa(sub.ID), dirName)
				fullFile := filepath.Join(base, fieldplot.FullDirName, stem+".jpeg")
				if err := render.WriteJPEG(c, fullFile, fieldplot.FullDPMM); err != nil {
					return err
				}
				thumbFile := filepath.Join(base, fieldplot.ThumbDirName, stem+".jpeg")
				if err := render.WriteThumbnail(c, thumbFile, fieldplot.ThumbDPMM); err != nil {
					return err
				}

				logging.Debug("plotted", "field", tag, "file", stem, "subregion", sub.Name)
			}
		}
	}
	return nil
}

func subRegionLabel(job *config.RegionPlotJob, sub *region.SubRegion) string {
	if job.ShowRegionName != nil && !*job.ShowRegionName {
		return ""
	}
	label := sub.Name
	if job.ShowRegionType == nil || *job.ShowRegionType {
		label = job.SubRegionType + ": " + label
	}
	return label
}
