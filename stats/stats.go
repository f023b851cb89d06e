// Package stats computes spatiotemporal statistics over masked AWAP
// fields: area-weighted means over whole regions and density
// estimates for distribution charts.
package stats

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/ozwater/awaptools/archive"
	"github.com/ozwater/awaptools/grid"
)

// Series is a timeseries of scalar values, one per input file. Times
// are Julian dates so plots have a uniform axis; Dates carries the
// matching YYYYMMDD stamps.
type Series struct {
	Times  []float64
	Dates  []int
	Values []float64
}

// ContinentalMeanSeries computes an area-weighted spatial mean for
// every file stem in stems (relative to dir), in the supplied order.
// The first file's header fixes the domain geometry, so stems must be
// layout-consistent.
func ContinentalMeanSeries(dir string, stems []string) (*Series, error) {
	if len(stems) == 0 {
		return nil, fmt.Errorf("empty file list")
	}

	h, err := grid.ReadHeader(filepath.Join(dir, stems[0]+grid.HeaderExt))
	if err != nil {
		return nil, err
	}
	weights := grid.AreaWeights(h, 1)

	s := &Series{
		Times:  make([]float64, 0, len(stems)),
		Dates:  make([]int, 0, len(stems)),
		Values: make([]float64, 0, len(stems)),
	}

	for _, stem := range stems {
		jd, err := archive.JulianDate(stem)
		if err != nil {
			return nil, err
		}
		date, err := archive.Date(stem)
		if err != nil {
			return nil, err
		}

		fh := *h
		fh.Stem = filepath.Join(dir, stem)
		g, err := grid.ReadGrid(&fh, "")
		if err != nil {
			return nil, err
		}

		mean, err := WeightedMean(g, weights)
		if err != nil {
			return nil, fmt.Errorf("file %s: %w", stem, err)
		}

		s.Times = append(s.Times, jd)
		s.Dates = append(s.Dates, date)
		s.Values = append(s.Values, mean)
	}

	return s, nil
}

// WeightedMean computes the weighted mean of g's unmasked cells.
func WeightedMean(g *grid.Grid, weights []float64) (float64, error) {
	if len(weights) != len(g.Data) {
		return 0, fmt.Errorf("weight field size %d does not match grid size %d", len(weights), len(g.Data))
	}
	var sum, wsum float64
	for i, v := range g.Data {
		if g.IsNoData(v) {
			continue
		}
		sum += float64(v) * weights[i]
		wsum += weights[i]
	}
	if wsum == 0 {
		return 0, fmt.Errorf("every cell is masked")
	}
	return sum / wsum, nil
}

// Histogram is a binned density estimate. Edges has one more entry
// than Counts/Density; bin i covers [Edges[i], Edges[i+1]).
type Histogram struct {
	Edges   []float64
	Counts  []int
	Density []float64
}

// NumBins returns the number of histogram bins.
func (h *Histogram) NumBins() int { return len(h.Counts) }

// ScottHistogram bins sample using Scott's rule for the bin width,
// 3.49*stddev*n^(-1/3), normalised to a probability density.
func ScottHistogram(sample []float64) (*Histogram, error) {
	n := len(sample)
	if n < 2 {
		return nil, fmt.Errorf("sample of %d values is too small to bin", n)
	}

	var sum float64
	min, max := sample[0], sample[0]
	for _, v := range sample {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	mean := sum / float64(n)

	var ss float64
	for _, v := range sample {
		d := v - mean
		ss += d * d
	}
	sd := math.Sqrt(ss / float64(n-1))
	if sd == 0 || min == max {
		return nil, fmt.Errorf("sample has no spread")
	}

	width := 3.49 * sd * math.Pow(float64(n), -1.0/3.0)
	bins := int(math.Ceil((max - min) / width))
	if bins < 1 {
		bins = 1
	}

	h := &Histogram{
		Edges:   make([]float64, bins+1),
		Counts:  make([]int, bins),
		Density: make([]float64, bins),
	}
	for i := range h.Edges {
		h.Edges[i] = min + float64(i)*(max-min)/float64(bins)
	}

	for _, v := range sample {
		i := int(float64(bins) * (v - min) / (max - min))
		if i == bins {
			i-- // max lands in the last bin
		}
		h.Counts[i]++
	}

	binWidth := (max - min) / float64(bins)
	for i, c := range h.Counts {
		h.Density[i] = float64(c) / (float64(n) * binWidth)
	}

	return h, nil
}
