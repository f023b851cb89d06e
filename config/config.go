// Package config loads job settings from HCL documents. A single
// settings file declares the known fields and any number of plotting,
// movie and density jobs; environment variables are available to
// expressions as env.NAME.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// Field declares a data field: the tag embedded in filenames, the
// directory the field's archive lives under, and an optional
// multiplicative renormalisation applied before plotting.
type Field struct {
	Tag     string   `hcl:"tag,label"`
	DirName string   `hcl:"dir_name"`
	Renorm  *float64 `hcl:"renorm,optional"`
}

// FieldPlotJob configures a continental field plotting run.
type FieldPlotJob struct {
	Name string `hcl:"name,label"`

	InputRoot  string   `hcl:"input_root"`
	OutputRoot string   `hcl:"output_root"`
	Fields     []string `hcl:"fields"`
	Intervals  []string `hcl:"sampling_intervals"`

	PlotParsFile   string `hcl:"plot_pars"`
	ColourTableDir string `hcl:"colour_tables"`
	RegionMask     string `hcl:"region_mask"`
	RegionName     string `hcl:"region_name,optional"`
	RegionType     string `hcl:"region_type,optional"`
	BoundaryFile   string `hcl:"boundaries"`

	ShowColourBar  *bool `hcl:"show_colour_bar,optional"`
	ShowRegionName *bool `hcl:"show_region_name,optional"`
	ShowRegionType *bool `hcl:"show_region_type,optional"`

	// Optional date window, both YYYYMMDD ints. Zero means open.
	MinDate int `hcl:"min_date,optional"`
	MaxDate int `hcl:"max_date,optional"`
}

// RegionPlotJob configures a per-subregion plotting run.
type RegionPlotJob struct {
	Name string `hcl:"name,label"`

	InputRoot  string   `hcl:"input_root"`
	OutputRoot string   `hcl:"output_root"`
	Fields     []string `hcl:"fields"`
	Intervals  []string `hcl:"sampling_intervals"`

	PlotParsFile   string `hcl:"plot_pars"`
	ColourTableDir string `hcl:"colour_tables"`
	RegionMask     string `hcl:"region_mask"`
	RegionName     string `hcl:"region_name,optional"`
	RegionType     string `hcl:"region_type,optional"`
	BoundaryFile   string `hcl:"boundaries"`

	SubRegionType string `hcl:"subregion_type"`

	// AllSubRegions selects every ID in the mask's lookup table;
	// otherwise SubRegionIDs lists the wanted flags.
	AllSubRegions bool  `hcl:"all_subregions,optional"`
	SubRegionIDs  []int `hcl:"subregion_ids,optional"`

	ShowColourBar  *bool `hcl:"show_colour_bar,optional"`
	ShowRegionName *bool `hcl:"show_region_name,optional"`
	ShowRegionType *bool `hcl:"show_region_type,optional"`

	MinDate int `hcl:"min_date,optional"`
	MaxDate int `hcl:"max_date,optional"`
}

// MovieJob configures a run of movie encodings from plotted frames.
type MovieJob struct {
	Name string `hcl:"name,label"`

	InputRoot  string   `hcl:"input_root"`
	OutputRoot string   `hcl:"output_root"`
	Fields     []string `hcl:"fields"`

	ImageFormat string `hcl:"image_format,optional"`
	MovieFormat string `hcl:"movie_format,optional"`
	InputRate   int    `hcl:"input_rate,optional"`
	OutputRate  int    `hcl:"output_rate,optional"`
	FFmpeg      string `hcl:"ffmpeg,optional"`
}

// DensityJob configures seasonal density chart generation.
type DensityJob struct {
	Name string `hcl:"name,label"`

	InputRoot  string   `hcl:"input_root"`
	OutputRoot string   `hcl:"output_root"`
	Fields     []string `hcl:"fields"`
	Seasons    []string `hcl:"seasons"`
	Interval   string   `hcl:"sampling_interval,optional"`
}

// Settings is the root of a job settings document.
type Settings struct {
	Workers  int    `hcl:"workers,optional"`
	FontFile string `hcl:"font_file,optional"`

	Fields      []*Field         `hcl:"field,block"`
	FieldPlots  []*FieldPlotJob  `hcl:"field_plots,block"`
	RegionPlots []*RegionPlotJob `hcl:"region_plots,block"`
	Movies      []*MovieJob      `hcl:"movies,block"`
	Densities   []*DensityJob    `hcl:"densities,block"`
}

// Movie job defaults. Frames are read at 12 fps and encoded at 24,
// doubling each frame.
const (
	DefaultInputRate  = 12
	DefaultOutputRate = 24
)

// Load reads and validates a settings file.
func Load(filename string) (*Settings, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse settings file %s: %s", filename, diags.Error())
	}

	var s Settings
	diags = gohcl.DecodeBody(file.Body, evalContext(), &s)
	if diags.HasErrors() {
		return nil, fmt.Errorf("decode settings file %s: %s", filename, diags.Error())
	}

	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("settings file %s: %w", filename, err)
	}
	return &s, nil
}

// evalContext exposes the process environment to HCL expressions as
// env.NAME.
func evalContext() *hcl.EvalContext {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}

func (s *Settings) applyDefaults() {
	if s.Workers == 0 {
		s.Workers = runtime.NumCPU()
	}
	for _, m := range s.Movies {
		if m.ImageFormat == "" {
			m.ImageFormat = "jpeg"
		}
		if m.MovieFormat == "" {
			m.MovieFormat = "mp4"
		}
		if m.InputRate == 0 {
			m.InputRate = DefaultInputRate
		}
		if m.OutputRate == 0 {
			m.OutputRate = DefaultOutputRate
		}
		if m.FFmpeg == "" {
			m.FFmpeg = "ffmpeg"
		}
	}
	for _, d := range s.Densities {
		if d.Interval == "" {
			d.Interval = "mth"
		}
	}
}

// Validate checks cross references between jobs and field
// declarations.
func (s *Settings) Validate() error {
	if s.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", s.Workers)
	}

	seen := map[string]bool{}
	for _, f := range s.Fields {
		if f.DirName == "" {
			return fmt.Errorf("field %s: dir_name is empty", f.Tag)
		}
		if seen[f.Tag] {
			return fmt.Errorf("field %s declared twice", f.Tag)
		}
		seen[f.Tag] = true
	}

	check := func(job string, tags []string) error {
		if len(tags) == 0 {
			return fmt.Errorf("%s: no fields selected", job)
		}
		for _, tag := range tags {
			if seen[tag] {
				continue
			}
			if hint := s.closestField(tag); hint != "" {
				return fmt.Errorf("%s: unknown field %q (did you mean %q?)", job, tag, hint)
			}
			return fmt.Errorf("%s: unknown field %q", job, tag)
		}
		return nil
	}

	if s.FontFile == "" && (len(s.FieldPlots) > 0 || len(s.RegionPlots) > 0) {
		return fmt.Errorf("font_file must be set when plot jobs are declared")
	}

	for _, j := range s.FieldPlots {
		if err := check("field_plots "+j.Name, j.Fields); err != nil {
			return err
		}
	}
	for _, j := range s.RegionPlots {
		if err := check("region_plots "+j.Name, j.Fields); err != nil {
			return err
		}
		if !j.AllSubRegions && len(j.SubRegionIDs) == 0 {
			return fmt.Errorf("region_plots %s: no subregions selected", j.Name)
		}
	}
	for _, j := range s.Movies {
		if err := check("movies "+j.Name, j.Fields); err != nil {
			return err
		}
	}
	for _, j := range s.Densities {
		if err := check("densities "+j.Name, j.Fields); err != nil {
			return err
		}
		if len(j.Seasons) == 0 {
			return fmt.Errorf("densities %s: no seasons selected", j.Name)
		}
	}

	return nil
}

// closestField finds the declared tag most similar to an unknown one.
func (s *Settings) closestField(tag string) string {
	metric := metrics.NewOverlapCoefficient()
	best, score := "", 0.0
	for _, f := range s.Fields {
		sim := strutil.Similarity(strings.ToLower(tag), strings.ToLower(f.Tag), metric)
		if sim > score {
			best, score = f.Tag, sim
		}
	}
	if score < 0.5 {
		return ""
	}
	return best
}

// Field looks up a field declaration by tag.
func (s *Settings) Field(tag string) (*Field, error) {
	for _, f := range s.Fields {
		if f.Tag == tag {
			return f, nil
		}
	}
	return nil, fmt.Errorf("field %q is not declared", tag)
}

// FieldDir returns the archive directory name for a field tag.
func (s *Settings) FieldDir(tag string) (string, error) {
	f, err := s.Field(tag)
	if err != nil {
		return "", err
	}
	return f.DirName, nil
}

// Renorm returns the multiplicative renormalisation for a field tag,
// 1 when none is declared.
func (s *Settings) Renorm(tag string) float64 {
	for _, f := range s.Fields {
		if f.Tag == tag && f.Renorm != nil {
			return *f.Renorm
		}
	}
	return 1
}
