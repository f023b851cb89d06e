package cube

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ozwater/awaptools/grid"
)

func writeField(t *testing.T, root, field string, stems []string, fill float32) {
	t.Helper()
	dir := filepath.Join(root, field)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, stem := range stems {
		h := &grid.Header{
			NCols:       2,
			NRows:       2,
			XLLCorner:   112,
			YLLCorner:   -44,
			CellSize:    0.5,
			NoDataValue: -999,
			ByteOrder:   grid.LSBFirst,
			Stem:        filepath.Join(dir, stem),
		}
		if err := grid.WriteHeader(h, h.Stem+grid.HeaderExt); err != nil {
			t.Fatal(err)
		}
		g := &grid.Grid{Header: h, Data: []float32{fill, fill, -999, fill}}
		if err := grid.WriteGrid(g, ""); err != nil {
			t.Fatal(err)
		}
	}
}

func TestBuild(t *testing.T) {
	root := t.TempDir()
	stems := []string{
		"mth_FWPrec_20050331",
		"mth_FWPrec_20050131",
		"mth_FWPrec_20050228",
		"ann_FWPrec_20041231",
	}
	writeField(t, root, "FWPrec", stems, 2.5)

	c, err := Build(root, "FWPrec", Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if c.NTimes() != 3 {
		t.Errorf("NTimes = %d, want 3 (annual file must be excluded)", c.NTimes())
	}
	wantTimes := []int{20050131, 20050228, 20050331}
	if diff := cmp.Diff(wantTimes, c.Times); diff != "" {
		t.Errorf("Times mismatch (-want +got):\n%s", diff)
	}
	if c.StartDate() != 20050131 || c.EndDate() != 20050331 {
		t.Errorf("span = %d-%d", c.StartDate(), c.EndDate())
	}

	g := c.Slice(0)
	if g.At(0, 0) != 2.5 {
		t.Errorf("slice value = %v", g.At(0, 0))
	}
	if !g.Masked(1, 0) {
		t.Error("expected masked cell in slice")
	}
}

func TestBuildDateWindow(t *testing.T) {
	root := t.TempDir()
	writeField(t, root, "FWE", []string{
		"mth_FWE_20050131",
		"mth_FWE_20050228",
		"mth_FWE_20050331",
	}, 1)

	c, err := Build(root, "FWE", Options{StartDate: 20050201, EndDate: 20050331})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if diff := cmp.Diff([]int{20050228, 20050331}, c.Times); diff != "" {
		t.Errorf("Times mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildCycleFilter(t *testing.T) {
	root := t.TempDir()
	writeField(t, root, "FWRun", []string{
		"mth_FWRun_20041130",
		"mth_FWRun_20041231",
		"mth_FWRun_20050131",
		"mth_FWRun_20050228",
		"mth_FWRun_20050331",
	}, 1)

	c, err := Build(root, "FWRun", Options{CycleFilter: "djf"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if diff := cmp.Diff([]int{20041231, 20050131, 20050228}, c.Times); diff != "" {
		t.Errorf("Times mismatch (-want +got):\n%s", diff)
	}

	c, err = Build(root, "FWRun", Options{CycleFilter: "jan"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if diff := cmp.Diff([]int{20050131}, c.Times); diff != "" {
		t.Errorf("Times mismatch (-want +got):\n%s", diff)
	}

	if _, err := Build(root, "FWRun", Options{CycleFilter: "bogus"}); err == nil {
		t.Error("expected error for unknown cycle filter")
	}
}

func TestBuildEmptySelection(t *testing.T) {
	root := t.TempDir()
	writeField(t, root, "FWTra", []string{"mth_FWTra_20050131"}, 1)

	if _, err := Build(root, "FWTra", Options{SamplingInterval: "ann"}); err == nil {
		t.Error("expected error for empty selection")
	}
}

func TestSample(t *testing.T) {
	root := t.TempDir()
	writeField(t, root, "FWSoil", []string{"mth_FWSoil_20050131", "mth_FWSoil_20050228"}, 3)

	c, err := Build(root, "FWSoil", Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	sample := c.Sample(1000)
	// 3 unmasked cells per slice, 2 slices.
	if len(sample) != 6 {
		t.Fatalf("sample size = %d, want 6", len(sample))
	}
	for _, v := range sample {
		if v != 3000 {
			t.Errorf("sample value %v, want 3000", v)
		}
	}
}
