package render

import "math"

// WGS84 major and minor axes in metres.
const (
	REquatorial = 6378137.00
	RPolar      = 6356752.3142
)

// Standard parallels of the Bureau of Meteorology's Australian
// Lambert conformal conic projection.
const (
	AusStdParallel1 = -10.0
	AusStdParallel2 = -40.0
)

// Empirical bounding box extensions, in degrees, that square up the
// projected Australian domain. Determined by trial and error.
const (
	WestShift  = 7.0
	NorthShift = 2.0
)

// LambertConic is a spherical Lambert conformal conic projection.
// Forward maps degrees latitude/longitude to metres; the inverse
// undoes it.
type LambertConic struct {
	lam0   float64
	n      float64
	f      float64
	rho0   float64
	radius float64
}

// NewLambertConic builds a projection with standard parallels phi1
// and phi2 and origin (phi0, lam0), all in degrees.
func NewLambertConic(phi1, phi2, phi0, lam0 float64) *LambertConic {
	p1 := phi1 * math.Pi / 180
	p2 := phi2 * math.Pi / 180
	p0 := phi0 * math.Pi / 180

	p := &LambertConic{
		lam0:   lam0 * math.Pi / 180,
		radius: (REquatorial + RPolar) / 2,
	}
	p.n = math.Log(math.Cos(p1)/math.Cos(p2)) /
		math.Log(math.Tan(math.Pi/4+p2/2)/math.Tan(math.Pi/4+p1/2))
	p.f = math.Cos(p1) * math.Pow(math.Tan(math.Pi/4+p1/2), p.n) / p.n
	p.rho0 = p.radius * p.f / math.Pow(math.Tan(math.Pi/4+p0/2), p.n)
	return p
}

// AusProjection builds the standard Australian projection centred on
// the given region bounding box.
func AusProjection(minLat, minLon, maxLat, maxLon float64) *LambertConic {
	return NewLambertConic(AusStdParallel1, AusStdParallel2,
		0.5*(minLat+maxLat), 0.5*(minLon+maxLon))
}

// Project maps degrees latitude/longitude to projected metres.
func (p *LambertConic) Project(lat, lon float64) (x, y float64) {
	phi := lat * math.Pi / 180
	lam := lon * math.Pi / 180

	rho := p.radius * p.f / math.Pow(math.Tan(math.Pi/4+phi/2), p.n)
	theta := p.n * (lam - p.lam0)
	return rho * math.Sin(theta), p.rho0 - rho*math.Cos(theta)
}

// Unproject maps projected metres back to degrees latitude/longitude.
func (p *LambertConic) Unproject(x, y float64) (lat, lon float64) {
	dy := p.rho0 - y
	rho := math.Sqrt(x*x + dy*dy)
	if p.n < 0 {
		rho = -rho
	}
	theta := math.Atan2(x, dy)
	if p.n < 0 {
		theta = math.Atan2(-x, -dy)
	}

	phi := 2*math.Atan(math.Pow(p.radius*p.f/rho, 1/p.n)) - math.Pi/2
	lam := theta/p.n + p.lam0
	return phi * 180 / math.Pi, lam * 180 / math.Pi
}

// Extent is a rectangle in projected coordinates.
type Extent struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width returns the extent's horizontal span.
func (e Extent) Width() float64 { return e.MaxX - e.MinX }

// Height returns the extent's vertical span.
func (e Extent) Height() float64 { return e.MaxY - e.MinY }

// ProjectedExtent computes the projected rectangle covering a
// geographic bounding box. The box edges curve under the projection,
// so each edge is sampled rather than just its corners.
func ProjectedExtent(p *LambertConic, minLat, minLon, maxLat, maxLon float64) Extent {
	const steps = 32

	e := Extent{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	grow := func(lat, lon float64) {
		x, y := p.Project(lat, lon)
		e.MinX = math.Min(e.MinX, x)
		e.MinY = math.Min(e.MinY, y)
		e.MaxX = math.Max(e.MaxX, x)
		e.MaxY = math.Max(e.MaxY, y)
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / steps
		lat := minLat + t*(maxLat-minLat)
		lon := minLon + t*(maxLon-minLon)
		grow(lat, minLon)
		grow(lat, maxLon)
		grow(minLat, lon)
		grow(maxLat, lon)
	}
	return e
}
