package grid

import "math"

// Lats returns cell-center latitudes in descending order, matching
// the north-to-south row ordering of AWAP rasters. YLLCorner is the
// bottom edge of the southernmost cell, so the first center sits half
// a cell above it.
func (h *Header) Lats() []float64 {
	first := h.YLLCorner + 0.5*h.CellSize
	lats := make([]float64, h.NRows)
	for i := range lats {
		lats[i] = first + float64(h.NRows-1-i)*h.CellSize
	}
	return lats
}

// Lons returns cell-center longitudes in ascending order.
func (h *Header) Lons() []float64 {
	first := h.XLLCorner + 0.5*h.CellSize
	lons := make([]float64, h.NCols)
	for i := range lons {
		lons[i] = first + float64(i)*h.CellSize
	}
	return lons
}

// MaxLat returns the top edge of the northernmost row of cells.
func (h *Header) MaxLat() float64 {
	return h.YLLCorner + float64(h.NRows)*h.CellSize
}

// MaxLon returns the right edge of the easternmost column of cells.
func (h *Header) MaxLon() float64 {
	return h.XLLCorner + float64(h.NCols)*h.CellSize
}

// AreaWeights computes per-cell spherical area weights,
// cos(lat)*dLat*dLon*radius^2, row-major in the same order as grid
// data. The weights are unmasked and unnormalised; callers combine
// them with a grid's own mask.
func AreaWeights(h *Header, radius float64) []float64 {
	lats := h.Lats()
	d := h.CellSize * math.Pi / 180
	w := make([]float64, h.NRows*h.NCols)
	for i, lat := range lats {
		cw := math.Cos(lat*math.Pi/180) * d * d * radius * radius
		for j := 0; j < h.NCols; j++ {
			w[i*h.NCols+j] = cw
		}
	}
	return w
}

// MaskedAreaWeights computes area weights with the weight of every
// masked cell zeroed.
func MaskedAreaWeights(g *Grid, radius float64) []float64 {
	w := AreaWeights(g.Header, radius)
	for i, v := range g.Data {
		if g.IsNoData(v) {
			w[i] = 0
		}
	}
	return w
}
