package report

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/urfave/cli/v2"

	"github.com/ozwater/awaptools/stats"
)

func TestWriteCSV(t *testing.T) {
	series := &stats.Series{
		Times:  []float64{2453371.5, 2453402.5},
		Dates:  []int{20050101, 20050201},
		Values: []float64{1.5, 2.25},
	}

	var sb strings.Builder
	if err := WriteCSV(&sb, "FWPrec", series); err != nil {
		t.Fatal(err)
	}

	want := "date,FWPrec\n20050101,1.5\n20050201,2.25\n"
	if diff := cmp.Diff(want, sb.String()); diff != "" {
		t.Errorf("csv mismatch (-want +got):\n%s", diff)
	}
}

func TestChartRequiresOutput(t *testing.T) {
	app := &cli.App{Commands: []*cli.Command{Command}}

	err := app.Run([]string{"awaptools", "stats", "-c", "settings.conf", "-i", "data", "-f", "FWPrec", "--chart"})
	if err == nil || !strings.Contains(err.Error(), "--chart requires --output") {
		t.Errorf("err = %v, want chart/output flag error", err)
	}
}
