// Package archive implements the AWAP/BIOS2 file naming conventions:
// every data file embeds an 8-digit YYYYMMDD date, a sampling
// interval tag and the field name, and catalogs of files are
// filtered and ordered by parsing names alone.
package archive

import (
	"fmt"
	"regexp"
	"strconv"
)

var ymdRe = regexp.MustCompile(`\d{8}`)

// YMD extracts the single 8-character YYYYMMDD date from name. A name
// with no date, or more than one, is malformed.
func YMD(name string) (string, error) {
	dates := ymdRe.FindAllString(name, -1)
	switch len(dates) {
	case 0:
		return "", fmt.Errorf("no YYYYMMDD date in %q", name)
	case 1:
		return dates[0], nil
	default:
		return "", fmt.Errorf("more than one YYYYMMDD date in %q: %v", name, dates)
	}
}

// Date returns the YYYYMMDD date as an integer.
func Date(name string) (int, error) {
	ymd, err := YMD(name)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(ymd)
}

// Year returns the YYYY year embedded in name.
func Year(name string) (int, error) {
	ymd, err := YMD(name)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(ymd[:4])
}

// Month returns the MM month embedded in name.
func Month(name string) (int, error) {
	ymd, err := YMD(name)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(ymd[4:6])
}

// Day returns the DD day of month embedded in name.
func Day(name string) (int, error) {
	ymd, err := YMD(name)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(ymd[6:8])
}

// MonthAbbr returns the lower-case month abbreviation for name's
// date.
func MonthAbbr(name string) (string, error) {
	m, err := Month(name)
	if err != nil {
		return "", err
	}
	if m < 1 || m > 12 {
		return "", fmt.Errorf("month %d out of range in %q", m, name)
	}
	return monthAbbrs[m-1], nil
}

// JulianDate converts name's YYYYMMDD date to a Julian date.
func JulianDate(name string) (float64, error) {
	y, err := Year(name)
	if err != nil {
		return 0, err
	}
	m, _ := Month(name)
	d, _ := Day(name)

	// Fliegel-Van Flandern, midnight epoch.
	a := (14 - m) / 12
	yy := y + 4800 - a
	mm := m + 12*a - 3
	jdn := d + (153*mm+2)/5 + 365*yy + yy/4 - yy/100 + yy/400 - 32045
	return float64(jdn) - 0.5, nil
}

// DateRange renders the span of dates a file covers, using its
// sampling interval: the whole month for 'mth' files and the whole
// calendar year for 'ann' files.
func DateRange(name string) (string, error) {
	y, err := Year(name)
	if err != nil {
		return "", err
	}
	m, _ := Month(name)
	d, _ := Day(name)

	interval, err := SamplingInterval(name)
	if err != nil {
		return "", err
	}
	switch interval {
	case SampleMonthly:
		return fmt.Sprintf("%d/%02d/01-%d/%02d/%02d", y, m, y, m, d), nil
	case SampleAnnual:
		return fmt.Sprintf("%d/01/01-%d/12/31", y, y), nil
	}
	return "", fmt.Errorf("unsupported sampling interval %q for %q", interval, name)
}

// EarliestDate returns the YYYYMMDD date of the first day of the
// month of the earliest file in names.
func EarliestDate(names []string) (int, error) {
	if len(names) == 0 {
		return 0, fmt.Errorf("empty file list")
	}
	first := 0
	for _, name := range names {
		d, err := Date(name)
		if err != nil {
			return 0, err
		}
		if first == 0 || d < first {
			first = d
		}
	}
	return first - first%100 + 1, nil
}

// LatestDate returns the latest YYYYMMDD date in names.
func LatestDate(names []string) (int, error) {
	if len(names) == 0 {
		return 0, fmt.Errorf("empty file list")
	}
	last := 0
	for _, name := range names {
		d, err := Date(name)
		if err != nil {
			return 0, err
		}
		if d > last {
			last = d
		}
	}
	return last, nil
}

// DateSpan renders the period covered by names as
// YYYYMMDD-YYYYMMDD, from the start of the earliest month to the
// latest date.
func DateSpan(names []string) (string, error) {
	start, err := EarliestDate(names)
	if err != nil {
		return "", err
	}
	end, err := LatestDate(names)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d-%d", start, end), nil
}
