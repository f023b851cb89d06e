package movie

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ozwater/awaptools/config"
)

func TestBuildArgs(t *testing.T) {
	job := &config.MovieJob{InputRate: 12, OutputRate: 24}

	got := BuildArgs(job, "/img/Full/mth_FWPrec_*.jpeg", "/out/mth_Precip_20050101-20051231.mp4")
	want := []string{
		"-r", "12",
		"-pattern_type", "glob",
		"-i", "/img/Full/mth_FWPrec_*.jpeg",
		"-r", "24",
		"/out/mth_Precip_20050101-20051231.mp4",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestFrameGlob(t *testing.T) {
	dir := t.TempDir()
	frames := []string{
		"mth_FWPrec_20050131.jpeg",
		"mth_FWPrec_20050228.jpeg",
		"pcr_mth_FWPrec_20050131.jpeg",
	}
	for _, name := range frames {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o666); err != nil {
			t.Fatal(err)
		}
	}

	got, err := filepath.Glob(FrameGlob(dir, "FWPrec", ".jpeg"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "mth_FWPrec_20050131.jpeg"),
		filepath.Join(dir, "mth_FWPrec_20050228.jpeg"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("physical frame matches (-want +got):\n%s", diff)
	}

	got, err = filepath.Glob(FrameGlob(dir, "pcrFWPrec", ".jpeg"))
	if err != nil {
		t.Fatal(err)
	}
	want = []string{filepath.Join(dir, "pcr_mth_FWPrec_20050131.jpeg")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("percentile rank frame matches (-want +got):\n%s", diff)
	}
}
