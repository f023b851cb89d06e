// Package cube assembles a univariate lat/lon/time data cube from a
// directory of AWAP grid files.
package cube

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/ozwater/awaptools/archive"
	"github.com/ozwater/awaptools/grid"
)

// Options select which of a field's files are loaded into a cube.
type Options struct {
	// SamplingInterval filters files by their interval tag. Defaults
	// to monthly.
	SamplingInterval string

	// StartDate and EndDate bound the cube in YYYYMMDD integer form.
	// Zero means unbounded.
	StartDate int
	EndDate   int

	// CycleFilter restricts the cube to one month ("jan") or season
	// ("djf") of the annual cycle.
	CycleFilter string
}

// Cube holds a time-ordered stack of 2D grids for one field,
// together with the shared domain layout.
type Cube struct {
	Field       string
	SourceDir   string
	Header      *grid.Header
	CycleFilter string

	// Times holds one YYYYMMDD stamp per slice, chronologically
	// ordered. Stems holds the matching filename stems.
	Times []int
	Stems []string

	data [][]float32
}

// Build loads the cube for field from <root>/<field>.
func Build(root, field string, opts Options) (*Cube, error) {
	if opts.SamplingInterval == "" {
		opts.SamplingInterval = archive.SampleMonthly
	}

	sourceDir := filepath.Join(root, field)
	stems, err := archive.List(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", sourceDir, err)
	}

	stems, err = archive.FilterBySamplingInterval(stems, opts.SamplingInterval)
	if err != nil {
		return nil, err
	}
	if len(stems) == 0 {
		return nil, fmt.Errorf("no %s files for field %s in %s", opts.SamplingInterval, field, sourceDir)
	}

	start, end := opts.StartDate, opts.EndDate
	if start == 0 {
		if start, err = archive.EarliestDate(stems); err != nil {
			return nil, err
		}
	}
	if end == 0 {
		if end, err = archive.LatestDate(stems); err != nil {
			return nil, err
		}
	}
	stems, err = archive.FilterByDateRange(stems, start, end)
	if err != nil {
		return nil, err
	}

	if opts.CycleFilter != "" {
		switch {
		case archive.IsMonth(opts.CycleFilter):
			stems, err = archive.FilterByMonth(stems, opts.CycleFilter)
		case archive.IsSeason(opts.CycleFilter):
			stems, err = archive.FilterBySeason(stems, opts.CycleFilter)
		default:
			return nil, fmt.Errorf("cycle filter %q is neither a month nor a season", opts.CycleFilter)
		}
		if err != nil {
			return nil, err
		}
	}
	if len(stems) == 0 {
		return nil, fmt.Errorf("no files selected for field %s in %s", field, sourceDir)
	}

	c := &Cube{
		Field:       field,
		SourceDir:   sourceDir,
		CycleFilter: opts.CycleFilter,
		Stems:       stems,
	}

	for _, stem := range stems {
		d, err := archive.Date(stem)
		if err != nil {
			return nil, err
		}
		c.Times = append(c.Times, d)
	}

	// The first header defines the layout every later file must
	// match.
	for i, stem := range stems {
		h, err := grid.ReadHeader(filepath.Join(sourceDir, stem+grid.HeaderExt))
		if err != nil {
			return nil, err
		}
		if i == 0 {
			c.Header = h
		} else if h.NRows != c.Header.NRows || h.NCols != c.Header.NCols || h.CellSize != c.Header.CellSize {
			return nil, fmt.Errorf("file %s layout %dx%d cell %v does not match cube layout %dx%d cell %v",
				stem, h.NRows, h.NCols, h.CellSize, c.Header.NRows, c.Header.NCols, c.Header.CellSize)
		}

		g, err := grid.ReadGrid(h, "")
		if err != nil {
			return nil, err
		}
		c.data = append(c.data, g.Data)
	}

	return c, nil
}

// NTimes returns the number of time samples in the cube.
func (c *Cube) NTimes() int { return len(c.Times) }

// StartDate returns the YYYYMMDD stamp of the first slice.
func (c *Cube) StartDate() int { return c.Times[0] }

// EndDate returns the YYYYMMDD stamp of the last slice.
func (c *Cube) EndDate() int { return c.Times[len(c.Times)-1] }

// Slice returns the grid for time index t. The grid shares the
// cube's backing data.
func (c *Cube) Slice(t int) *grid.Grid {
	return &grid.Grid{Header: c.Header, Data: c.data[t]}
}

// Sample flattens every unmasked cell across all time slices into a
// single sample, multiplying by renorm (1 for none). Used for
// density estimation.
func (c *Cube) Sample(renorm float64) []float64 {
	var sample []float64
	for _, slice := range c.data {
		for _, v := range slice {
			if float64(v) == c.Header.NoDataValue {
				continue
			}
			sample = append(sample, float64(v)*renorm)
		}
	}
	return sample
}

// Summary writes the cube's attributes in the archive's diagnostic
// layout.
func (c *Cube) Summary(w io.Writer, withTimes, withFiles bool) {
	rule := "################################################################################"
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "DataCube attributes:")
	fmt.Fprintf(w, "Field name = %s\n", c.Field)
	fmt.Fprintf(w, "Data source directory: %s\n", c.SourceDir)
	fmt.Fprintf(w, "Cycle filtering: %s\n", orNone(c.CycleFilter))
	fmt.Fprintf(w, "Number of latitudes: %d\n", c.Header.NRows)
	fmt.Fprintf(w, "Number of longitudes: %d\n", c.Header.NCols)
	fmt.Fprintf(w, "Start date: %d\n", c.StartDate())
	fmt.Fprintf(w, "End date: %d\n", c.EndDate())
	fmt.Fprintf(w, "Number of time samples: %d\n", c.NTimes())
	fmt.Fprintf(w, "Grid point spacing (degrees): %v\n", c.Header.CellSize)
	fmt.Fprintf(w, "Lower-left corner (lat,lon) = (%v,%v)\n", c.Header.YLLCorner, c.Header.XLLCorner)
	fmt.Fprintf(w, "Missing data flag: %v\n", c.Header.NoDataValue)
	if withTimes {
		fmt.Fprintf(w, "Time stamps: %v\n", c.Times)
	}
	if withFiles {
		fmt.Fprintf(w, "Source files: %v\n", c.Stems)
	}
	fmt.Fprintln(w, rule)
}

func orNone(s string) string {
	if s == "" {
		return "NONE"
	}
	return s
}
