package render

import (
	"fmt"
	"image/color"

	"github.com/paulmach/orb"
	"github.com/tdewolff/canvas"

	"github.com/ozwater/awaptools/grid"
)

// Figure dimensions in millimetres, matching a 6x4.5 inch plot.
const (
	FigureWidth  = 152.4
	FigureHeight = 114.3
)

const (
	figureMargin   = 5.0
	titleFontSize  = 11.0
	labelFontSize  = 8.0
	rasterDPMM     = 4.0 // map raster pixels per mm
	barWidthFrac   = 0.05
	barPadFrac     = 0.02
	boundaryWidth  = 0.25
	barOutlineSize = 0.3
)

// Figure lays out a single field plot: the projected field raster,
// boundary overlay, title, date label and a colour bar.
type Figure struct {
	FontFile    string
	Title       string
	DateLabel   string
	RegionLabel string
	BarCaption  string
	ShowBar     bool
	MinVal      float64
	MaxVal      float64
	Ramp        *Ramp
	Boundaries  []orb.LineString
}

// Draw composes the figure for a masked field grid.
func (f *Figure) Draw(g *grid.Grid) (*canvas.Canvas, error) {
	family := canvas.NewFontFamily("figure")
	if err := family.LoadFontFile(f.FontFile, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("load font %s: %w", f.FontFile, err)
	}
	titleFace := family.Face(titleFontSize, canvas.Black, canvas.FontRegular, canvas.FontNormal)
	labelFace := family.Face(labelFontSize, canvas.Black, canvas.FontRegular, canvas.FontNormal)

	c := canvas.New(FigureWidth, FigureHeight)
	gc := canvas.NewContext(c)

	gc.SetFillColor(canvas.White)
	gc.DrawPath(0, 0, canvas.Rectangle(FigureWidth, FigureHeight))

	h := g.Header
	proj := AusProjection(h.YLLCorner, h.XLLCorner, h.MaxLat(), h.MaxLon())
	ext := ProjectedExtent(proj,
		h.YLLCorner, h.XLLCorner-WestShift,
		h.MaxLat()+NorthShift, h.MaxLon())

	// Reserve the right edge for the colour bar and its caption.
	mapX := figureMargin
	mapY := figureMargin + labelFontSize*0.5
	mapW := FigureWidth - 2*figureMargin
	if f.ShowBar {
		mapW -= FigureWidth*(barWidthFrac+barPadFrac) + labelFontSize
	}
	mapH := FigureHeight - mapY - figureMargin - titleFontSize*0.6

	// Keep the projected aspect ratio.
	if mapW/mapH > ext.Width()/ext.Height() {
		mapW = mapH * ext.Width() / ext.Height()
	} else {
		mapH = mapW * ext.Height() / ext.Width()
	}

	img := RasterizeField(g, proj, ext, f.Ramp, f.MinVal, f.MaxVal,
		int(mapW*rasterDPMM), int(mapH*rasterDPMM))
	gc.DrawImage(mapX, mapY, img, canvas.DPMM(rasterDPMM))

	f.drawBoundaries(gc, proj, ext, mapX, mapY, mapW, mapH)

	title := f.Title
	if f.ShowBar {
		f.drawBar(gc, labelFace, mapY, mapH)
	} else if f.BarCaption != "" {
		// With no colour bar the units move into the title.
		title += " (" + f.BarCaption + ")"
	}
	if f.DateLabel != "" {
		title += ":  " + f.DateLabel
	}
	gc.DrawText(mapX, FigureHeight-figureMargin,
		canvas.NewTextLine(titleFace, title, canvas.Left))

	if f.RegionLabel != "" {
		gc.DrawText(mapX, figureMargin,
			canvas.NewTextLine(labelFace, f.RegionLabel, canvas.Left))
	}

	return c, nil
}

// drawBoundaries strokes the overlay lines in map coordinates.
func (f *Figure) drawBoundaries(gc *canvas.Context, proj *LambertConic, ext Extent, mapX, mapY, mapW, mapH float64) {
	gc.Push()
	gc.SetFillColor(canvas.Transparent)
	gc.SetStrokeColor(color.RGBA{64, 64, 64, 0xff})
	gc.SetStrokeWidth(boundaryWidth)

	for _, line := range f.Boundaries {
		var p canvas.Path
		for i, pt := range line {
			x, y := proj.Project(pt.Lat(), pt.Lon())
			mx := mapX + (x-ext.MinX)/ext.Width()*mapW
			my := mapY + (y-ext.MinY)/ext.Height()*mapH
			if i == 0 {
				p.MoveTo(mx, my)
			} else {
				p.LineTo(mx, my)
			}
		}
		gc.DrawPath(0, 0, &p)
	}
	gc.Pop()
}

// drawBar paints the colour bar at the figure's right edge with tick
// labels at the range limits and the caption alongside.
func (f *Figure) drawBar(gc *canvas.Context, face *canvas.FontFace, barY, barH float64) {
	barW := FigureWidth * barWidthFrac
	barX := FigureWidth - figureMargin - barW - labelFontSize

	strip := RampStrip(f.Ramp, int(barW*rasterDPMM), int(barH*rasterDPMM))
	gc.DrawImage(barX, barY, strip, canvas.DPMM(rasterDPMM))

	gc.Push()
	gc.SetFillColor(canvas.Transparent)
	gc.SetStrokeColor(canvas.Black)
	gc.SetStrokeWidth(barOutlineSize)
	gc.DrawPath(barX, barY, canvas.Rectangle(barW, barH))
	gc.Pop()

	gc.DrawText(barX+barW+1, barY+2,
		canvas.NewTextLine(face, formatTick(f.MinVal), canvas.Left))
	gc.DrawText(barX+barW+1, barY+barH-1,
		canvas.NewTextLine(face, formatTick(f.MaxVal), canvas.Left))

	if f.BarCaption != "" {
		gc.Push()
		gc.ComposeView(canvas.Identity.
			Translate(barX+barW+labelFontSize*0.9, barY+barH/2).
			Rotate(90))
		gc.DrawText(0, 0, canvas.NewTextLine(face, f.BarCaption, canvas.Center))
		gc.Pop()
	}
}

func formatTick(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
