package render

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Style holds the per-field plot parameters: the fixed colour bar
// range and the figure labelling.
type Style struct {
	MinVal     float64
	MaxVal     float64
	Title      string
	BarCaption string
}

// LoadStyles reads a plot parameters file: comma-separated rows with
// the field tag, colour bar minimum and maximum in columns 0-2 and
// the plot title and colour bar caption in columns 5 and 6. Styles
// are keyed by field tag.
func LoadStyles(filename string) (map[string]Style, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open plot parameters: %w", err)
	}
	defer f.Close()

	styles := map[string]Style{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		cols := strings.Split(line, ",")
		if len(cols) < 7 {
			return nil, fmt.Errorf("plot parameters %s: row %q has fewer than 7 columns", filename, line)
		}

		tag := unquote(cols[0])
		min, err := strconv.ParseFloat(strings.TrimSpace(cols[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("plot parameters %s: bad minimum for %s: %w", filename, tag, err)
		}
		max, err := strconv.ParseFloat(strings.TrimSpace(cols[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("plot parameters %s: bad maximum for %s: %w", filename, tag, err)
		}

		styles[tag] = Style{
			MinVal:     min,
			MaxVal:     max,
			Title:      unquote(cols[5]),
			BarCaption: unquote(cols[6]),
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("plot parameters %s: %w", filename, err)
	}
	return styles, nil
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}
