// Package region models the geographic regions AWAP fields are
// plotted over: a parent region defined by a mask grid, optionally
// carved into subregions by integer ID flags and a lookup table.
package region

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ozwater/awaptools/grid"
)

// epsilon pads bounding-box comparisons of latitudes and longitudes.
const epsilon = 1e-6

// Region is a geographic domain tied to a mask grid. The mask both
// defines what lies outside the region (missing cells) and, when a
// lookup table is attached, carries subregion ID flags.
type Region struct {
	Name string
	Type string

	// Level is 0 for a parent region and grows by one per
	// subregion layer.
	Level int

	NumLats, NumLons int
	DLat, DLon       float64
	MinLat, MinLon   float64
	MaxLat, MaxLon   float64
	MissingFlag      float64
	ReversedLats     bool
	Lats, Lons       []float64
	Mask             *grid.Grid
	UnmaskedPoints   int

	// SubRegionIDs maps subregion names to the integer flags used
	// on the mask. Nil unless a lookup table was loaded.
	SubRegionIDs map[string]int
}

// New builds a Region from a mask grid header. When withTable is set
// the subregion lookup table next to the mask (same stem, .csv) is
// loaded as well.
func New(h *grid.Header, name, typ string, withTable bool) (*Region, error) {
	if name == "" {
		name = "NONE"
	}
	if typ == "" {
		typ = "NONE"
	}

	mask, err := grid.ReadGrid(h, "")
	if err != nil {
		return nil, fmt.Errorf("read region mask: %w", err)
	}

	r := &Region{
		Name:           name,
		Type:           typ,
		NumLats:        h.NRows,
		NumLons:        h.NCols,
		DLat:           h.CellSize,
		DLon:           h.CellSize,
		MinLat:         h.YLLCorner,
		MinLon:         h.XLLCorner,
		MaxLat:         h.MaxLat(),
		MaxLon:         h.MaxLon(),
		MissingFlag:    h.NoDataValue,
		Lats:           h.Lats(),
		Lons:           h.Lons(),
		Mask:           mask,
		UnmaskedPoints: mask.UnmaskedCount(),
	}
	if len(r.Lats) > 1 && r.Lats[len(r.Lats)-1] < r.Lats[0] {
		r.ReversedLats = true
	}

	if withTable {
		table, err := ReadLookupTable(h.Stem + grid.LookupExt)
		if err != nil {
			return nil, err
		}
		r.SubRegionIDs = table
	}

	return r, nil
}

// ReadLookupTable parses a two-column subregion table: ID then name,
// with '!' marking comment lines.
func ReadLookupTable(filename string) (map[string]int, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open lookup table: %w", err)
	}
	defer f.Close()

	rd := csv.NewReader(f)
	rd.Comment = '!'
	rd.TrimLeadingSpace = true

	table := map[string]int{}
	for {
		rec, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("lookup table %s: %w", filename, err)
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("lookup table %s: row %v has fewer than 2 columns", filename, rec)
		}
		id, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("lookup table %s: bad ID %q: %w", filename, rec[0], err)
		}
		table[strings.TrimSpace(rec[1])] = id
	}
	return table, nil
}

// SubRegionNames returns the names in the lookup table.
func (r *Region) SubRegionNames() ([]string, error) {
	if r.SubRegionIDs == nil {
		return nil, fmt.Errorf("region %s has no subregion table", r.Name)
	}
	names := make([]string, 0, len(r.SubRegionIDs))
	for name := range r.SubRegionIDs {
		names = append(names, name)
	}
	return names, nil
}

// SubRegionName reverse-looks-up the name for an ID flag.
func (r *Region) SubRegionName(id int) (string, error) {
	if r.SubRegionIDs == nil {
		return "", fmt.Errorf("region %s has no subregion table", r.Name)
	}
	for name, n := range r.SubRegionIDs {
		if n == id {
			return name, nil
		}
	}
	return "", fmt.Errorf("region %s has no subregion with ID %d", r.Name, id)
}

// Summary writes the region's diagnostic summary.
func (r *Region) Summary(w io.Writer) {
	if r.Level == 0 {
		fmt.Fprintln(w, strings.Repeat("=", 70))
		fmt.Fprintf(w, "%s Summary for Region %s\n", strings.Repeat("*", 10), r.Name)
		fmt.Fprintln(w, strings.Repeat("=", 70))
	}
	fmt.Fprintf(w, "%s :: Region type: %s\n", r.Name, r.Type)
	fmt.Fprintf(w, "%s :: Domain bounding box: [%v,%v,%v,%v]\n", r.Name, r.MinLat, r.MinLon, r.MaxLat, r.MaxLon)
	fmt.Fprintf(w, "%s :: Domain dimensions (nLats,nLons): (%d,%d)\n", r.Name, r.NumLats, r.NumLons)
	fmt.Fprintf(w, "%s :: Grid cell dimensions (degrees): (%v,%v)\n", r.Name, r.DLat, r.DLon)
	fmt.Fprintf(w, "%s :: Latitude grid values: [%v,%v,...,%v,%v]\n", r.Name, r.Lats[0], r.Lats[1], r.Lats[len(r.Lats)-2], r.Lats[len(r.Lats)-1])
	fmt.Fprintf(w, "%s :: Longitude grid values: [%v,%v,...,%v,%v]\n", r.Name, r.Lons[0], r.Lons[1], r.Lons[len(r.Lons)-2], r.Lons[len(r.Lons)-1])
	fmt.Fprintf(w, "%s :: Number of unmasked grid points: %d\n", r.Name, r.UnmaskedPoints)
}
