package grid

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeTestPair(t *testing.T, dir, stem string, h *Header, data []float32) string {
	t.Helper()
	base := filepath.Join(dir, stem)
	hh := *h
	hh.Stem = base
	if err := WriteHeader(&hh, base+HeaderExt); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	g := &Grid{Header: &hh, Data: data}
	if err := WriteGrid(g, ""); err != nil {
		t.Fatalf("WriteGrid: %v", err)
	}
	return base
}

func TestHeaderRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := &Header{
		NCols:       4,
		NRows:       3,
		XLLCorner:   112.0,
		YLLCorner:   -44.5,
		CellSize:    0.05,
		NoDataValue: -999,
		ByteOrder:   LSBFirst,
	}

	name := filepath.Join(dir, "mth_FWPrec_20050131.hdr")
	if err := WriteHeader(want, name); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}

	got, err := ReadHeader(name)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	want.Stem = filepath.Join(dir, "mth_FWPrec_20050131")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
}

func TestReadHeaderAnyKeyOrder(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "field.hdr")
	text := "byteorder MSBFIRST\nnodata_value -9999\ncellsize 0.25\nyllcorner -44\nxllcorner 112\nnrows 2\nncols 3\n"
	if err := os.WriteFile(name, []byte(text), 0o666); err != nil {
		t.Fatal(err)
	}

	h, err := ReadHeader(name)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if h.NCols != 3 || h.NRows != 2 || h.ByteOrder != MSBFirst {
		t.Errorf("got %+v", h)
	}
}

func TestReadHeaderMissingKey(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "field.hdr")
	if err := os.WriteFile(name, []byte(" ncols 3\n nrows 2\n"), 0o666); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadHeader(name); err == nil {
		t.Error("expected error for missing keys")
	}
}

func TestGridRoundTrip(t *testing.T) {
	dir := t.TempDir()
	h := &Header{NCols: 3, NRows: 2, XLLCorner: 112, YLLCorner: -44, CellSize: 0.5, NoDataValue: -999, ByteOrder: LSBFirst}
	data := []float32{1, 2, -999, 4, 5, 6}
	base := writeTestPair(t, dir, "mth_FWE_20000131", h, data)

	hh, err := ReadHeader(base + HeaderExt)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	g, err := ReadGrid(hh, "")
	if err != nil {
		t.Fatalf("ReadGrid: %v", err)
	}

	if diff := cmp.Diff(data, g.Data); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
	if got := g.UnmaskedCount(); got != 5 {
		t.Errorf("UnmaskedCount: got %d, want 5", got)
	}
	if !g.Masked(0, 2) || g.Masked(1, 0) {
		t.Errorf("mask misplaced: %v", g.Mask())
	}
}

func TestReadGridShortFile(t *testing.T) {
	dir := t.TempDir()
	h := &Header{NCols: 3, NRows: 2, NoDataValue: -999, ByteOrder: LSBFirst, Stem: filepath.Join(dir, "short")}
	if err := os.WriteFile(h.Stem+FloatExt, make([]byte, 8), 0o666); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadGrid(h, ""); err == nil {
		t.Error("expected error for short float file")
	}
}

func TestLatsLons(t *testing.T) {
	h := &Header{NCols: 3, NRows: 2, XLLCorner: 112, YLLCorner: -44, CellSize: 0.5}

	wantLats := []float64{-43.25, -43.75}
	wantLons := []float64{112.25, 112.75, 113.25}

	if diff := cmp.Diff(wantLats, h.Lats()); diff != "" {
		t.Errorf("Lats mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantLons, h.Lons()); diff != "" {
		t.Errorf("Lons mismatch (-want +got):\n%s", diff)
	}
	if got, want := h.MaxLat(), -43.0; got != want {
		t.Errorf("MaxLat: got %v, want %v", got, want)
	}
	if got, want := h.MaxLon(), 113.5; got != want {
		t.Errorf("MaxLon: got %v, want %v", got, want)
	}
}

func TestAreaWeights(t *testing.T) {
	h := &Header{NCols: 2, NRows: 2, XLLCorner: 0, YLLCorner: 0, CellSize: 1}
	w := AreaWeights(h, 1)

	d := math.Pi / 180
	// Rows run north to south: first row is centred at 1.5 degrees.
	want := math.Cos(1.5*d) * d * d
	if math.Abs(w[0]-want) > 1e-12 {
		t.Errorf("w[0]: got %v, want %v", w[0], want)
	}
	// Same latitude across a row.
	if w[0] != w[1] {
		t.Errorf("row weights differ: %v %v", w[0], w[1])
	}
	// Weights shrink toward the pole.
	if w[2] <= w[0] {
		t.Errorf("expected southern row weight %v > northern %v", w[2], w[0])
	}
}

func TestMaskedAreaWeights(t *testing.T) {
	h := &Header{NCols: 2, NRows: 2, XLLCorner: 0, YLLCorner: 0, CellSize: 1, NoDataValue: -999}
	g := &Grid{Header: h, Data: []float32{1, -999, 1, 1}}

	w := MaskedAreaWeights(g, 1)
	if w[1] != 0 {
		t.Errorf("masked cell weight: got %v, want 0", w[1])
	}
	if w[0] == 0 || w[2] == 0 || w[3] == 0 {
		t.Errorf("unmasked cell weight zeroed: %v", w)
	}
}

func TestScaleSkipsMaskedCells(t *testing.T) {
	h := &Header{NCols: 2, NRows: 1, NoDataValue: -999}
	g := &Grid{Header: h, Data: []float32{2, -999}}
	g.Scale(1000)
	if g.Data[0] != 2000 {
		t.Errorf("unmasked cell not scaled: %v", g.Data[0])
	}
	if g.Data[1] != -999 {
		t.Errorf("masked cell was scaled: %v", g.Data[1])
	}
}
