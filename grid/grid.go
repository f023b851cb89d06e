package grid

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// Grid is a single 2D field read from a .flt file, stored row-major
// from the northernmost row down (AWAP grids run north to south).
// Cells equal to the header's nodata value are masked.
type Grid struct {
	Header *Header
	Data   []float32
}

// ReadGrid reads the .flt raster described by h. An empty filename
// reads the file named by the header's stem.
func ReadGrid(h *Header, filename string) (*Grid, error) {
	if filename == "" {
		filename = h.Stem + FloatExt
	}

	buf, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read float file: %w", err)
	}

	n := h.NRows * h.NCols
	if len(buf) != 4*n {
		return nil, fmt.Errorf("float file %s: got %d bytes, want %d for %dx%d grid", filename, len(buf), 4*n, h.NRows, h.NCols)
	}

	var order binary.ByteOrder = binary.LittleEndian
	if h.ByteOrder == MSBFirst {
		order = binary.BigEndian
	}

	data := make([]float32, n)
	for i := range data {
		data[i] = math.Float32frombits(order.Uint32(buf[4*i:]))
	}

	return &Grid{Header: h, Data: data}, nil
}

// WriteGrid writes g's raster to filename, using the header's byte
// order. An empty filename writes to the header's stem.
func WriteGrid(g *Grid, filename string) error {
	if filename == "" {
		filename = g.Header.Stem + FloatExt
	}

	var order binary.ByteOrder = binary.LittleEndian
	if g.Header.ByteOrder == MSBFirst {
		order = binary.BigEndian
	}

	buf := make([]byte, 4*len(g.Data))
	for i, v := range g.Data {
		order.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	if err := os.WriteFile(filename, buf, 0o666); err != nil {
		return fmt.Errorf("write float file: %w", err)
	}
	return nil
}

// At returns the cell at row (from the north) and column (from the
// west).
func (g *Grid) At(row, col int) float32 {
	return g.Data[row*g.Header.NCols+col]
}

// IsNoData reports whether v carries the grid's missing data flag.
func (g *Grid) IsNoData(v float32) bool {
	return float64(v) == g.Header.NoDataValue
}

// Masked reports whether the cell at row,col is missing.
func (g *Grid) Masked(row, col int) bool {
	return g.IsNoData(g.At(row, col))
}

// UnmaskedCount returns the number of cells holding real data.
func (g *Grid) UnmaskedCount() int {
	n := 0
	for _, v := range g.Data {
		if !g.IsNoData(v) {
			n++
		}
	}
	return n
}

// Mask returns a per-cell missing-data mask, true where masked.
func (g *Grid) Mask() []bool {
	m := make([]bool, len(g.Data))
	for i, v := range g.Data {
		m[i] = g.IsNoData(v)
	}
	return m
}

// Scale multiplies every unmasked cell by k. Used to renormalise
// fields between unit systems before plotting.
func (g *Grid) Scale(k float64) {
	for i, v := range g.Data {
		if !g.IsNoData(v) {
			g.Data[i] = float32(float64(v) * k)
		}
	}
}

// Range returns the minimum and maximum unmasked values. ok is false
// when every cell is masked.
func (g *Grid) Range() (min, max float64, ok bool) {
	for _, v := range g.Data {
		if g.IsNoData(v) {
			continue
		}
		f := float64(v)
		if !ok {
			min, max, ok = f, f, true
			continue
		}
		if f < min {
			min = f
		}
		if f > max {
			max = f
		}
	}
	return min, max, ok
}
