package archive

import (
	"fmt"
	"regexp"
	"strings"
)

// Sampling interval tags carried in file names.
const (
	SampleMonthly = "mth"
	SampleAnnual  = "ann"
)

// SamplingIntervals lists the recognised sampling interval tags.
var SamplingIntervals = []string{SampleMonthly, SampleAnnual}

// PercentileRankTag labels files and fields holding percentile rank
// data rather than physical units.
const PercentileRankTag = "pcr"

var monthAbbrs = []string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

var monthNums = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4,
	"may": 5, "jun": 6, "jul": 7, "aug": 8,
	"sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// seasons maps each season abbreviation to its ordered month run.
var seasons = map[string][]string{
	"djf": {"dec", "jan", "feb"},
	"mam": {"mar", "apr", "may"},
	"jja": {"jun", "jul", "aug"},
	"son": {"sep", "oct", "nov"},
}

// SeasonAbbrs lists the season abbreviations in calendar order.
var SeasonAbbrs = []string{"djf", "mam", "jja", "son"}

// IsMonth reports whether s is a month abbreviation, case
// insensitively.
func IsMonth(s string) bool {
	_, ok := monthNums[strings.ToLower(s)]
	return ok
}

// IsSeason reports whether s is a season abbreviation, case
// insensitively.
func IsSeason(s string) bool {
	_, ok := seasons[strings.ToLower(s)]
	return ok
}

// SeasonMonths returns the ordered month abbreviations making up a
// season, e.g. "DJF" -> dec jan feb.
func SeasonMonths(s string) ([]string, error) {
	months, ok := seasons[strings.ToLower(s)]
	if !ok {
		return nil, fmt.Errorf("%q is not a season", s)
	}
	return months, nil
}

// MonthNum converts a month abbreviation to its 1-based number.
func MonthNum(abbr string) (int, error) {
	n, ok := monthNums[strings.ToLower(abbr)]
	if !ok {
		return 0, fmt.Errorf("%q is not a month abbreviation", abbr)
	}
	return n, nil
}

var chunkRe = regexp.MustCompile(`\W+|_`)

func nameChunks(name string) []string {
	var chunks []string
	for _, c := range chunkRe.Split(name, -1) {
		if c != "" {
			chunks = append(chunks, c)
		}
	}
	return chunks
}

func isDateChunk(c string) bool {
	if len(c) != 8 {
		return false
	}
	for _, r := range c {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isIntervalChunk(c string) bool {
	for _, tag := range SamplingIntervals {
		if c == tag {
			return true
		}
	}
	return false
}

// FieldName recovers the field name from an archive file name by
// stripping the sampling interval, percentile rank and date chunks.
// A multi-chunk field name is rejoined with underscores.
func FieldName(name string) (string, error) {
	var keep []string
	for _, c := range nameChunks(name) {
		if isIntervalChunk(c) || c == PercentileRankTag || isDateChunk(c) {
			continue
		}
		keep = append(keep, c)
	}
	if len(keep) == 0 {
		return "", fmt.Errorf("no field name in %q", name)
	}
	return strings.Join(keep, "_"), nil
}

// SamplingInterval extracts the sampling interval tag from name.
func SamplingInterval(name string) (string, error) {
	for _, c := range nameChunks(name) {
		if isIntervalChunk(c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("no sampling interval tag in %q (want one of %v)", name, SamplingIntervals)
}

// IsPercentileRankFile reports whether the file name carries the
// percentile rank tag.
func IsPercentileRankFile(name string) bool {
	for _, c := range nameChunks(name) {
		if c == PercentileRankTag {
			return true
		}
	}
	return false
}

// IsPercentileRankField reports whether a field tag denotes a
// percentile rank quantity.
func IsPercentileRankField(field string) bool {
	return strings.HasPrefix(field, PercentileRankTag)
}
