package region

import (
	"fmt"
	"io"
	"strings"

	"github.com/ozwater/awaptools/grid"
)

// BBox is a lon/lat bounding box, corners at (MinLon,MinLat) and
// (MaxLon,MaxLat).
type BBox struct {
	MinLon, MinLat float64
	MaxLon, MaxLat float64
}

// SubRegion is a spatial subset of a parent region selected by an
// integer ID flag on the parent's mask.
type SubRegion struct {
	Region

	ParentName string
	ParentType string
	ID         int

	// Index window into the parent's axes. Rows LatStart..LatStop
	// and columns LonStart..LonStop (half-open) of the parent cover
	// this subregion.
	LatStart, LatStop int
	LonStart, LonStop int
}

// NewSubRegion cuts a subregion out of parent. When bbox is nil the
// bounds are derived from the cells flagged with id, padded by one
// grid cell.
func NewSubRegion(parent *Region, id int, bbox *BBox, name, typ string) (*SubRegion, error) {
	if name == "" {
		name = "NONE"
	}
	if typ == "" {
		typ = "NONE"
	}

	s := &SubRegion{
		ParentName: parent.Name,
		ParentType: parent.Type,
		ID:         id,
	}
	s.Name = name
	s.Type = typ
	s.Level = parent.Level + 1
	s.DLat = parent.DLat
	s.DLon = parent.DLon
	s.MissingFlag = parent.MissingFlag
	s.ReversedLats = parent.ReversedLats

	if bbox != nil {
		s.MinLon = bbox.MinLon - s.DLon - epsilon
		s.MinLat = bbox.MinLat - s.DLat - epsilon
		s.MaxLon = bbox.MaxLon + s.DLon + epsilon
		s.MaxLat = bbox.MaxLat + s.DLat + epsilon
	} else {
		if err := s.boundsFromFlags(parent); err != nil {
			return nil, err
		}
	}

	if err := s.window(parent); err != nil {
		return nil, err
	}
	s.subsetMask(parent)

	return s, nil
}

// boundsFromFlags derives the subregion bounding box from the cells
// on the parent mask carrying the subregion's ID flag, padded by
// half a cell so cell edges are captured.
func (s *SubRegion) boundsFromFlags(parent *Region) error {
	minRow, maxRow := -1, -1
	minCol, maxCol := -1, -1
	flag := float32(s.ID)
	for row := 0; row < parent.NumLats; row++ {
		for col := 0; col < parent.NumLons; col++ {
			if parent.Mask.At(row, col) != flag {
				continue
			}
			if minRow < 0 || row < minRow {
				minRow = row
			}
			if row > maxRow {
				maxRow = row
			}
			if minCol < 0 || col < minCol {
				minCol = col
			}
			if col > maxCol {
				maxCol = col
			}
		}
	}
	if minRow < 0 {
		return fmt.Errorf("subregion ID %d not present on %s mask", s.ID, parent.Name)
	}

	s.MinLon = parent.Lons[minCol] - 0.5*s.DLon
	s.MaxLon = parent.Lons[maxCol] + 0.5*s.DLon
	if s.ReversedLats {
		// Row indices grow southward, so maxRow is the southern
		// limit.
		s.MinLat = parent.Lats[maxRow] - 0.5*s.DLat
		s.MaxLat = parent.Lats[minRow] + 0.5*s.DLat
	} else {
		s.MinLat = parent.Lats[minRow] - 0.5*s.DLat
		s.MaxLat = parent.Lats[maxRow] + 0.5*s.DLat
	}
	return nil
}

// window computes the index ranges of the parent's axes falling
// inside the subregion's bounds and slices the axes.
func (s *SubRegion) window(parent *Region) error {
	if s.ReversedLats {
		start, stop := -1, -1
		for i, lat := range parent.Lats {
			if lat <= s.MaxLat && lat >= s.MinLat {
				if start < 0 {
					start = i
				}
				stop = i + 1
			}
		}
		if start < 0 {
			return fmt.Errorf("subregion %s bounds outside parent latitudes", s.Name)
		}
		s.LatStart, s.LatStop = start, stop
	} else {
		start, stop := -1, -1
		for i, lat := range parent.Lats {
			if lat >= s.MinLat && lat <= s.MaxLat {
				if start < 0 {
					start = i
				}
				stop = i + 1
			}
		}
		if start < 0 {
			return fmt.Errorf("subregion %s bounds outside parent latitudes", s.Name)
		}
		s.LatStart, s.LatStop = start, stop
	}

	start, stop := -1, -1
	for i, lon := range parent.Lons {
		if lon >= s.MinLon && lon <= s.MaxLon {
			if start < 0 {
				start = i
			}
			stop = i + 1
		}
	}
	if start < 0 {
		return fmt.Errorf("subregion %s bounds outside parent longitudes", s.Name)
	}
	s.LonStart, s.LonStop = start, stop

	s.NumLats = s.LatStop - s.LatStart
	s.NumLons = s.LonStop - s.LonStart
	s.Lats = parent.Lats[s.LatStart:s.LatStop]
	s.Lons = parent.Lons[s.LonStart:s.LonStop]
	return nil
}

// subsetMask builds the subregion's own mask: the windowed parent
// mask with every cell not flagged with the subregion ID set to
// missing. The subregion is rarely a clean rectangle, so this mask
// is what separates it from its bounding box.
func (s *SubRegion) subsetMask(parent *Region) {
	h := &grid.Header{
		NCols:       s.NumLons,
		NRows:       s.NumLats,
		XLLCorner:   s.Lons[0] - 0.5*s.DLon,
		YLLCorner:   s.Lats[len(s.Lats)-1] - 0.5*s.DLat,
		CellSize:    parent.Mask.Header.CellSize,
		NoDataValue: s.MissingFlag,
		ByteOrder:   parent.Mask.Header.ByteOrder,
	}

	flag := float32(s.ID)
	data := make([]float32, s.NumLats*s.NumLons)
	for row := 0; row < s.NumLats; row++ {
		for col := 0; col < s.NumLons; col++ {
			v := parent.Mask.At(s.LatStart+row, s.LonStart+col)
			if v != flag {
				v = float32(s.MissingFlag)
			}
			data[row*s.NumLons+col] = v
		}
	}

	s.Mask = &grid.Grid{Header: h, Data: data}
	s.UnmaskedPoints = s.Mask.UnmaskedCount()
}

// Window cuts the subregion's index window out of a parent-domain
// grid, masking cells outside the subregion.
func (s *SubRegion) Window(g *grid.Grid) *grid.Grid {
	h := *s.Mask.Header
	h.NoDataValue = g.Header.NoDataValue
	h.Stem = g.Header.Stem

	data := make([]float32, s.NumLats*s.NumLons)
	for row := 0; row < s.NumLats; row++ {
		for col := 0; col < s.NumLons; col++ {
			v := g.At(s.LatStart+row, s.LonStart+col)
			if s.Mask.Masked(row, col) {
				v = float32(g.Header.NoDataValue)
			}
			data[row*s.NumLons+col] = v
		}
	}
	return &grid.Grid{Header: &h, Data: data}
}

// Summary writes the subregion's diagnostic summary including its
// parentage banner.
func (s *SubRegion) Summary(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintf(w, "%s Summary for SubRegion %s\n", strings.Repeat("*", 10), s.Name)
	fmt.Fprintf(w, "%s Parent region: %s\n", strings.Repeat("*", 10), s.ParentName)
	fmt.Fprintf(w, "%s Region ID flag on parent mask: %d\n", strings.Repeat("*", 10), s.ID)
	fmt.Fprintln(w, strings.Repeat("=", 70))
	s.Region.Summary(w)
}
