// Package grid reads and writes AWAP/BIOS2 gridded field data: a
// plaintext .hdr file describing the spatial domain paired with a
// flat binary .flt file of float32 cell values.
package grid

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Filename extensions used by the AWAP/BIOS2 archive conventions.
const (
	FloatExt  = ".flt"
	HeaderExt = ".hdr"
	LookupExt = ".csv"
)

// Supported byte orderings for .flt files.
const (
	LSBFirst = "LSBFIRST"
	MSBFirst = "MSBFIRST"
)

// Header describes the spatial domain and layout of a single gridded
// field file. XLLCorner and YLLCorner locate the outer edge of the
// lower-left grid cell, not its center.
type Header struct {
	NCols       int
	NRows       int
	XLLCorner   float64
	YLLCorner   float64
	CellSize    float64
	NoDataValue float64
	ByteOrder   string

	// Stem is the path of the header file minus its extension. The
	// companion .flt file shares the stem.
	Stem string
}

// ReadHeader parses an AWAP .hdr file. Keys may appear in any order
// and are whitespace separated from their values.
func ReadHeader(filename string) (*Header, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open header: %w", err)
	}
	defer f.Close()

	h := &Header{
		Stem:      strings.TrimSuffix(filename, HeaderExt),
		ByteOrder: LSBFirst,
	}

	seen := map[string]bool{}
	s := bufio.NewScanner(f)
	for s.Scan() {
		words := strings.Fields(s.Text())
		if len(words) < 2 {
			continue
		}
		key := strings.ToLower(words[0])
		val := words[1]

		var perr error
		switch key {
		case "ncols":
			h.NCols, perr = strconv.Atoi(val)
		case "nrows":
			h.NRows, perr = strconv.Atoi(val)
		case "xllcorner":
			h.XLLCorner, perr = strconv.ParseFloat(val, 64)
		case "yllcorner":
			h.YLLCorner, perr = strconv.ParseFloat(val, 64)
		case "cellsize":
			h.CellSize, perr = strconv.ParseFloat(val, 64)
		case "nodata_value":
			h.NoDataValue, perr = strconv.ParseFloat(val, 64)
		case "byteorder":
			h.ByteOrder = val
		default:
			continue
		}
		if perr != nil {
			return nil, fmt.Errorf("header %s: bad %s value %q: %w", filename, key, val, perr)
		}
		seen[key] = true
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	for _, key := range []string{"ncols", "nrows", "xllcorner", "yllcorner", "cellsize", "nodata_value"} {
		if !seen[key] {
			return nil, fmt.Errorf("header %s: missing key %q", filename, key)
		}
	}
	if h.ByteOrder != LSBFirst && h.ByteOrder != MSBFirst {
		return nil, fmt.Errorf("header %s: unknown byteorder %q", filename, h.ByteOrder)
	}

	return h, nil
}

// WriteHeader writes h in the canonical AWAP .hdr layout.
func WriteHeader(h *Header, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create header: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, " ncols %d\n", h.NCols)
	fmt.Fprintf(w, " nrows %d\n", h.NRows)
	fmt.Fprintf(w, " xllcorner %v\n", h.XLLCorner)
	fmt.Fprintf(w, " yllcorner %v\n", h.YLLCorner)
	fmt.Fprintf(w, " cellsize %v\n", h.CellSize)
	fmt.Fprintf(w, " nodata_value %d\n", int(h.NoDataValue))
	fmt.Fprintf(w, " byteorder %s\n", h.ByteOrder)
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}
