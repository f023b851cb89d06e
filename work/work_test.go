package work

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDeal(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f"}

	hands, err := Deal(items, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		{"a", "d"},
		{"b", "e"},
		{"c", "f"},
	}
	if diff := cmp.Diff(want, hands); diff != "" {
		t.Errorf("hands mismatch (-want +got):\n%s", diff)
	}
}

func TestDealUneven(t *testing.T) {
	if _, err := Deal([]int{1, 2, 3}, 2); err == nil {
		t.Error("expected error for uneven deal")
	}
	if _, err := Deal([]int{1, 2}, 0); err == nil {
		t.Error("expected error for zero workers")
	}
}

func TestDealSingleWorker(t *testing.T) {
	items := []int{1, 2, 3}
	hands, err := Deal(items, 1)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([][]int{items}, hands); diff != "" {
		t.Errorf("hands mismatch (-want +got):\n%s", diff)
	}
}

func TestProfile(t *testing.T) {
	p := NewProfile()
	p.Add("render", 120*time.Millisecond)
	p.Add("render", 80*time.Millisecond)
	p.Add("read", 10*time.Millisecond)

	done := p.Track("track")
	done()

	var sb strings.Builder
	p.Summary(&sb)
	out := sb.String()

	if !strings.Contains(out, "render") || !strings.Contains(out, "200ms") {
		t.Errorf("summary missing accumulated render time:\n%s", out)
	}
	if !strings.Contains(out, "total wall time") {
		t.Errorf("summary missing total:\n%s", out)
	}
	// Longest first.
	if strings.Index(out, "render") > strings.Index(out, "read") {
		t.Errorf("summary not sorted by duration:\n%s", out)
	}
}
