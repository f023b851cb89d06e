package regionplot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ozwater/awaptools/config"
	"github.com/ozwater/awaptools/grid"
	"github.com/ozwater/awaptools/region"
)

func buildParent(t *testing.T) *region.Region {
	t.Helper()
	dir := t.TempDir()
	h := &grid.Header{
		NCols:       4,
		NRows:       4,
		XLLCorner:   112,
		YLLCorner:   -44,
		CellSize:    1,
		NoDataValue: -999,
		ByteOrder:   grid.LSBFirst,
		Stem:        filepath.Join(dir, "mask"),
	}
	if err := grid.WriteHeader(h, h.Stem+grid.HeaderExt); err != nil {
		t.Fatal(err)
	}
	g := &grid.Grid{Header: h, Data: []float32{
		1, 1, -999, -999,
		1, 1, 2, 2,
		-999, 2, 2, 2,
		-999, -999, -999, -999,
	}}
	if err := grid.WriteGrid(g, ""); err != nil {
		t.Fatal(err)
	}
	table := "! lookup\n1,West\n2,East\n"
	if err := os.WriteFile(h.Stem+grid.LookupExt, []byte(table), 0o666); err != nil {
		t.Fatal(err)
	}

	parent, err := region.New(h, "ConAUS", "Continent", true)
	if err != nil {
		t.Fatal(err)
	}
	return parent
}

func TestBuildSubRegionsAll(t *testing.T) {
	parent := buildParent(t)
	job := &config.RegionPlotJob{SubRegionType: "States", AllSubRegions: true}

	subs, err := buildSubRegions(parent, job)
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 2 {
		t.Fatalf("len(subs) = %d, want 2", len(subs))
	}
	if subs[0].ID != 1 || subs[0].Name != "West" {
		t.Errorf("first subregion = %s (ID %d)", subs[0].Name, subs[0].ID)
	}
	if subs[1].ID != 2 || subs[1].Name != "East" {
		t.Errorf("second subregion = %s (ID %d)", subs[1].Name, subs[1].ID)
	}
}

func TestBuildSubRegionsSelected(t *testing.T) {
	parent := buildParent(t)
	job := &config.RegionPlotJob{SubRegionType: "States", SubRegionIDs: []int{2}}

	subs, err := buildSubRegions(parent, job)
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 1 || subs[0].Name != "East" {
		t.Fatalf("subs = %+v", subs)
	}

	job.SubRegionIDs = []int{9}
	if _, err := buildSubRegions(parent, job); err == nil {
		t.Error("expected error for unknown subregion ID")
	}
}

func TestSubRegionLabel(t *testing.T) {
	parent := buildParent(t)
	job := &config.RegionPlotJob{SubRegionType: "States", SubRegionIDs: []int{2}}
	subs, err := buildSubRegions(parent, job)
	if err != nil {
		t.Fatal(err)
	}
	sub := subs[0]

	if got := subRegionLabel(job, sub); got != "States: East" {
		t.Errorf("label = %q", got)
	}

	no := false
	job.ShowRegionType = &no
	if got := subRegionLabel(job, sub); got != "East" {
		t.Errorf("label = %q", got)
	}

	job.ShowRegionName = &no
	if got := subRegionLabel(job, sub); got != "" {
		t.Errorf("label = %q, want empty", got)
	}
}
