package archive

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"
)

// List returns the filename stems (no extension) of every header
// file in dir.
func List(dir string) ([]string, error) {
	return ListByExt(dir, ".hdr")
}

// ListByExt returns the filename stems of every file in dir with the
// given extension.
func ListByExt(dir, ext string) ([]string, error) {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	matches, err := filepath.Glob(filepath.Join(dir, "*"+ext))
	if err != nil {
		return nil, fmt.Errorf("list %s files: %w", ext, err)
	}
	stems := make([]string, 0, len(matches))
	for _, m := range matches {
		stems = append(stems, strings.TrimSuffix(filepath.Base(m), ext))
	}
	return stems, nil
}

// SortByDate orders names chronologically by their YYYYMMDD dates.
// Names without a parseable date sort first, preserving their
// relative order.
func SortByDate(names []string) []string {
	sorted := slices.Clone(names)
	slices.SortStableFunc(sorted, func(a, b string) bool {
		da, _ := YMD(a)
		db, _ := YMD(b)
		return da < db
	})
	return sorted
}

// SortedList lists dir's header stems in chronological order.
func SortedList(dir string) ([]string, error) {
	stems, err := List(dir)
	if err != nil {
		return nil, err
	}
	return SortByDate(stems), nil
}

// FilterBySamplingInterval keeps names carrying the given sampling
// interval tag.
func FilterBySamplingInterval(names []string, interval string) ([]string, error) {
	if !isIntervalChunk(interval) {
		return nil, fmt.Errorf("unrecognised sampling interval %q (want one of %v)", interval, SamplingIntervals)
	}
	var kept []string
	for _, name := range names {
		tag, err := SamplingInterval(name)
		if err != nil {
			return nil, err
		}
		if tag == interval {
			kept = append(kept, name)
		}
	}
	return kept, nil
}

// FilterByDateRange keeps names with start <= YYYYMMDD <= end and
// returns them chronologically ordered.
func FilterByDateRange(names []string, start, end int) ([]string, error) {
	var kept []string
	for _, name := range names {
		d, err := Date(name)
		if err != nil {
			return nil, err
		}
		if d >= start && d <= end {
			kept = append(kept, name)
		}
	}
	return SortByDate(kept), nil
}

// FilterByMonth keeps names whose date falls in the named month.
func FilterByMonth(names []string, month string) ([]string, error) {
	num, err := MonthNum(month)
	if err != nil {
		return nil, err
	}
	return FilterByMonthNum(names, num)
}

// FilterByMonthNum keeps names whose date falls in month number num.
func FilterByMonthNum(names []string, num int) ([]string, error) {
	if num < 1 || num > 12 {
		return nil, fmt.Errorf("month number %d out of range", num)
	}
	var kept []string
	for _, name := range names {
		m, err := Month(name)
		if err != nil {
			return nil, err
		}
		if m == num {
			kept = append(kept, name)
		}
	}
	return kept, nil
}

// FilterBySeason keeps names falling in the given season, trimmed so
// that only complete consecutive-month runs survive at either end.
// The result is chronologically ordered.
func FilterBySeason(names []string, season string) ([]string, error) {
	months, err := SeasonMonths(season)
	if err != nil {
		return nil, err
	}

	var kept []string
	for _, m := range months {
		byMonth, err := FilterByMonth(names, m)
		if err != nil {
			return nil, err
		}
		kept = append(kept, byMonth...)
	}
	kept = SortByDate(kept)
	if len(kept) < len(months) {
		return nil, fmt.Errorf("no complete %s season in %d files", season, len(names))
	}

	run := func(offset int) bool {
		for k, want := range months {
			abbr, err := MonthAbbr(kept[offset+k])
			if err != nil || abbr != want {
				return false
			}
		}
		return true
	}

	first := -1
	for i := 0; i+len(months) <= len(kept); i++ {
		if run(i) {
			first = i
			break
		}
	}
	if first < 0 {
		return nil, fmt.Errorf("no complete %s season in %d files", season, len(names))
	}

	last := -1
	for i := len(kept) - len(months); i >= first; i-- {
		if run(i) {
			last = i + len(months)
			break
		}
	}

	return kept[first:last], nil
}

// ExcludePercentileRank drops percentile rank files from names.
func ExcludePercentileRank(names []string) []string {
	var kept []string
	for _, name := range names {
		if !IsPercentileRankFile(name) {
			kept = append(kept, name)
		}
	}
	return kept
}

// ExtractPercentileRank keeps only percentile rank files from names.
func ExtractPercentileRank(names []string) []string {
	var kept []string
	for _, name := range names {
		if IsPercentileRankFile(name) {
			kept = append(kept, name)
		}
	}
	return kept
}
