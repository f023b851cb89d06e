package render

import (
	"image"

	"github.com/ozwater/awaptools/grid"
)

// RasterizeField paints a masked field into an RGBA image by inverse
// projection: each output pixel is unprojected back to a latitude and
// longitude and coloured from the grid cell it lands in. Pixels
// outside the grid, and masked cells, stay transparent.
func RasterizeField(g *grid.Grid, p *LambertConic, ext Extent, ramp *Ramp, minVal, maxVal float64, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))

	h := g.Header
	maxLat := h.MaxLat()
	maxLon := h.MaxLon()

	for py := 0; py < height; py++ {
		y := ext.MaxY - (float64(py)+0.5)/float64(height)*ext.Height()
		for px := 0; px < width; px++ {
			x := ext.MinX + (float64(px)+0.5)/float64(width)*ext.Width()

			lat, lon := p.Unproject(x, y)
			if lat < h.YLLCorner || lat >= maxLat || lon < h.XLLCorner || lon >= maxLon {
				continue
			}
			// Row 0 is the northern edge.
			row := int((maxLat - lat) / h.CellSize)
			col := int((lon - h.XLLCorner) / h.CellSize)
			if row < 0 || row >= h.NRows || col < 0 || col >= h.NCols {
				continue
			}
			v := g.At(row, col)
			if g.IsNoData(v) {
				continue
			}
			img.SetNRGBA(px, py, ramp.Map(float64(v), minVal, maxVal))
		}
	}
	return img
}

// RampStrip paints a vertical colour bar strip, minimum at the
// bottom.
func RampStrip(ramp *Ramp, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for py := 0; py < height; py++ {
		frac := 1 - (float64(py)+0.5)/float64(height)
		c := ramp.At(frac)
		for px := 0; px < width; px++ {
			img.SetNRGBA(px, py, c)
		}
	}
	return img
}
