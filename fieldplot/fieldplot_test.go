package fieldplot

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ozwater/awaptools/config"
)

func TestSelectFiles(t *testing.T) {
	stems := []string{
		"mth_FWPrec_20050101",
		"mth_FWPrec_20050201",
		"pcr_mth_FWPrec_20050101",
		"ann_FWPrec_20051231",
		"mth_FWPrec_20060101",
	}

	testCases := []struct {
		name     string
		tag      string
		interval string
		minDate  int
		maxDate  int
		want     []string
	}{
		{
			name:     "monthly excludes percentile rank",
			tag:      "FWPrec",
			interval: "mth",
			want:     []string{"mth_FWPrec_20050101", "mth_FWPrec_20050201", "mth_FWPrec_20060101"},
		},
		{
			name:     "percentile rank field keeps only pcr files",
			tag:      "pcrFWPrec",
			interval: "mth",
			want:     []string{"pcr_mth_FWPrec_20050101"},
		},
		{
			name:     "annual",
			tag:      "FWPrec",
			interval: "ann",
			want:     []string{"ann_FWPrec_20051231"},
		},
		{
			name:     "date window",
			tag:      "FWPrec",
			interval: "mth",
			minDate:  20050115,
			maxDate:  20051231,
			want:     []string{"mth_FWPrec_20050201"},
		},
		{
			name:     "open-ended window",
			tag:      "FWPrec",
			interval: "mth",
			minDate:  20060101,
			want:     []string{"mth_FWPrec_20060101"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SelectFiles(stems, tc.tag, tc.interval, tc.minDate, tc.maxDate)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("selection mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := SelectFiles(stems, "FWPrec", "daily", 0, 0); err == nil {
		t.Error("expected error for unknown interval")
	}
}

func TestRegionLabel(t *testing.T) {
	yes, no := true, false
	job := &config.FieldPlotJob{RegionName: "ConAUS", RegionType: "Continent"}

	if got := regionLabel(job); got != "" {
		t.Errorf("default label = %q, want empty", got)
	}

	job.ShowRegionName = &yes
	if got := regionLabel(job); got != "ConAUS" {
		t.Errorf("label = %q", got)
	}

	job.ShowRegionType = &yes
	if got := regionLabel(job); got != "Continent: ConAUS" {
		t.Errorf("label = %q", got)
	}

	job.ShowRegionName = &no
	if got := regionLabel(job); got != "" {
		t.Errorf("label = %q, want empty", got)
	}
}
