// Package render draws AWAP fields as images: projected rasters with
// coastline overlays, colour bars and captions, written out as
// full-size JPEGs and thumbnails.
package render

import (
	"bufio"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// RampExt is the filename extension of colour table files.
const RampExt = ".clr"

// RampPath forms the conventional colour table path for a field: the
// lower-cased field name with the .clr extension, under dir.
func RampPath(dir, field string) string {
	return filepath.Join(dir, strings.ToLower(field)+RampExt)
}

type rampStop struct {
	frac    float64
	r, g, b float64
}

// Ramp is a piecewise-linear colour function over the fraction of a
// field's dynamic range.
type Ramp struct {
	stops []rampStop
}

// LoadRamp reads a colour table file. The first line is a header and
// is skipped; each following line holds a percentage of the dynamic
// range and red, green and blue levels out of 255.
func LoadRamp(filename string) (*Ramp, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open colour table: %w", err)
	}
	defer f.Close()

	var ramp Ramp
	sc := bufio.NewScanner(f)
	first := true
	for sc.Scan() {
		if first {
			first = false
			continue
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 4 {
			return nil, fmt.Errorf("colour table %s: line %q has fewer than 4 columns", filename, sc.Text())
		}
		var vals [4]float64
		for i := 0; i < 4; i++ {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, fmt.Errorf("colour table %s: bad value %q: %w", filename, fields[i], err)
			}
			vals[i] = v
		}
		ramp.stops = append(ramp.stops, rampStop{
			frac: vals[0] / 100,
			r:    vals[1] / 255,
			g:    vals[2] / 255,
			b:    vals[3] / 255,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("colour table %s: %w", filename, err)
	}
	if len(ramp.stops) < 2 {
		return nil, fmt.Errorf("colour table %s: fewer than 2 colour stops", filename)
	}
	for i := 1; i < len(ramp.stops); i++ {
		if ramp.stops[i].frac < ramp.stops[i-1].frac {
			return nil, fmt.Errorf("colour table %s: stops out of order at %v", filename, ramp.stops[i].frac)
		}
	}

	return &ramp, nil
}

// At evaluates the ramp at a fraction of the dynamic range, clamping
// to [0,1].
func (r *Ramp) At(frac float64) color.NRGBA {
	if frac <= r.stops[0].frac {
		return stopColor(r.stops[0])
	}
	last := r.stops[len(r.stops)-1]
	if frac >= last.frac {
		return stopColor(last)
	}
	for i := 1; i < len(r.stops); i++ {
		hi := r.stops[i]
		if frac > hi.frac {
			continue
		}
		lo := r.stops[i-1]
		span := hi.frac - lo.frac
		if span == 0 {
			return stopColor(hi)
		}
		t := (frac - lo.frac) / span
		return color.NRGBA{
			R: level(lo.r + t*(hi.r-lo.r)),
			G: level(lo.g + t*(hi.g-lo.g)),
			B: level(lo.b + t*(hi.b-lo.b)),
			A: 0xff,
		}
	}
	return stopColor(last)
}

// Map evaluates the ramp for a field value against the [min,max]
// colour bar range.
func (r *Ramp) Map(v, min, max float64) color.NRGBA {
	if max == min {
		return r.At(0)
	}
	return r.At((v - min) / (max - min))
}

func stopColor(s rampStop) color.NRGBA {
	return color.NRGBA{R: level(s.r), G: level(s.g), B: level(s.b), A: 0xff}
}

func level(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(v*255 + 0.5)
}
