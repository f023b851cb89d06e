/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

// Package movie assembles plotted field images into movies by driving
// ffmpeg with glob input, one encode per field.
package movie

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ozwater/awaptools/archive"
	"github.com/ozwater/awaptools/config"
	"github.com/ozwater/awaptools/fieldplot"
	"github.com/ozwater/awaptools/fsutil"
	"github.com/ozwater/awaptools/logging"
)

// Run encodes one movie per field the job selects, at most
// s.Workers encodes at a time.
func Run(ctx context.Context, s *config.Settings, job *config.MovieJob) error {
	if err := fsutil.CheckReadableDir(job.InputRoot); err != nil {
		return fmt.Errorf("input image root: %w", err)
	}
	if err := fsutil.EnsureDir(job.OutputRoot); err != nil {
		return fmt.Errorf("output movie root: %w", err)
	}
	if _, err := exec.LookPath(job.FFmpeg); err != nil {
		return fmt.Errorf("movie encoder: %w", err)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(s.Workers)
	for _, tag := range job.Fields {
		tag := tag
		eg.Go(func() error {
			if err := encodeField(ctx, s, job, tag); err != nil {
				return fmt.Errorf("field %s: %w", tag, err)
			}
			return nil
		})
	}
	return eg.Wait()
}

func encodeField(ctx context.Context, s *config.Settings, job *config.MovieJob, tag string) error {
	dirName, err := s.FieldDir(tag)
	if err != nil {
		return err
	}
	inputDir := filepath.Join(job.InputRoot, dirName, fieldplot.FullDirName)
	if err := fsutil.CheckReadableDir(inputDir); err != nil {
		return err
	}

	imageExt := "." + job.ImageFormat
	images, err := archive.ListByExt(inputDir, imageExt)
	if err != nil {
		return err
	}

	// Percentile rank fields take the pcr frames, physical fields the
	// rest. The two never mix in one movie.
	var pref string
	if archive.IsPercentileRankField(tag) {
		images = archive.ExtractPercentileRank(images)
		pref = archive.PercentileRankTag + "_" + archive.SampleMonthly
	} else {
		images = archive.ExcludePercentileRank(images)
		pref = archive.SampleMonthly
	}
	if len(images) == 0 {
		return fmt.Errorf("no %s frames under %s", job.ImageFormat, inputDir)
	}

	span, err := archive.DateSpan(images)
	if err != nil {
		return err
	}

	movieFile := filepath.Join(job.OutputRoot,
		pref+"_"+dirName+"_"+span+"."+job.MovieFormat)
	glob := FrameGlob(inputDir, tag, imageExt)
	args := BuildArgs(job, glob, movieFile)

	logging.Info("encoding movie", "field", tag, "frames", len(images), "output", movieFile)

	cmd := exec.CommandContext(ctx, job.FFmpeg, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s %v: %w\n%s", job.FFmpeg, args, err, out)
	}
	return nil
}

// FrameGlob forms the ffmpeg input glob selecting one field's frames
// in chronological order. Frame names lead with the interval and field
// chunks, so anchoring those sorts the matches lexicographically by
// date and keeps percentile rank frames out of physical encodes.
func FrameGlob(inputDir, tag, imageExt string) string {
	if archive.IsPercentileRankField(tag) {
		base := strings.TrimPrefix(tag, archive.PercentileRankTag)
		return filepath.Join(inputDir, archive.PercentileRankTag+"_"+archive.SampleMonthly+"_"+base+"_*"+imageExt)
	}
	return filepath.Join(inputDir, archive.SampleMonthly+"_"+tag+"_*"+imageExt)
}

// BuildArgs forms the ffmpeg argument list: frames read at the input
// rate, encoded at the output rate.
func BuildArgs(job *config.MovieJob, glob, movieFile string) []string {
	return []string{
		"-r", strconv.Itoa(job.InputRate),
		"-pattern_type", "glob",
		"-i", glob,
		"-r", strconv.Itoa(job.OutputRate),
		movieFile,
	}
}
