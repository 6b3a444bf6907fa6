package subtitles

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/asticode/go-astisub"

	"mkvsubstrip/internal/logging"
	"mkvsubstrip/internal/services"
)

// TrackExtractor writes a single container track to output.
type TrackExtractor interface {
	ExtractTrack(ctx context.Context, container string, id int, output string) error
}

// JobResult is the outcome of one extraction job. Cues is the number of
// subtitle cues found in text outputs, or -1 when the format was not
// inspected. Sidecars lists companion files the tool wrote next to the
// output, such as the .idx of a VobSub track.
type JobResult struct {
	Job      Job
	Err      error
	Cues     int
	Sidecars []string
}

// Outputs returns every file a successful job produced, main output first.
func (r JobResult) Outputs() []string {
	if r.Err != nil {
		return nil
	}
	return append([]string{r.Job.OutputPath}, r.Sidecars...)
}

// Extractor runs extraction jobs against one container at a time. It never
// modifies the container itself.
type Extractor struct {
	tracks TrackExtractor
	logger *slog.Logger
}

// NewExtractor constructs an extractor backed by tracks.
func NewExtractor(tracks TrackExtractor, logger *slog.Logger) *Extractor {
	return &Extractor{
		tracks: tracks,
		logger: logging.NewComponentLogger(logger, "extractor"),
	}
}

// Extract writes job's track to job.OutputPath.
func (e *Extractor) Extract(ctx context.Context, containerPath string, job Job) error {
	if e == nil || e.tracks == nil {
		return services.Wrap(services.ErrConfiguration, services.StageExtract, "extract", "extractor not configured", nil)
	}
	if err := e.tracks.ExtractTrack(ctx, containerPath, job.Track.ID, job.OutputPath); err != nil {
		return err
	}
	info, err := os.Stat(job.OutputPath)
	if err != nil {
		return services.Wrap(services.ErrToolFailure, services.StageExtract, "verify output",
			fmt.Sprintf("track %d produced no output", job.Track.ID), err)
	}
	if !info.Mode().IsRegular() {
		return services.Wrap(services.ErrToolFailure, services.StageExtract, "verify output",
			fmt.Sprintf("track %d output is not a regular file", job.Track.ID), nil)
	}
	return nil
}

// ExtractAll runs every job in order. A failed job does not stop the
// remaining ones; callers decide what a partial result means.
func (e *Extractor) ExtractAll(ctx context.Context, containerPath string, jobs []Job) []JobResult {
	logger := logging.WithContext(ctx, e.logger)
	results := make([]JobResult, 0, len(jobs))
	for _, job := range jobs {
		result := JobResult{Job: job, Cues: -1}
		if err := ctx.Err(); err != nil {
			result.Err = services.Wrap(services.ErrToolFailure, services.StageExtract, "extract", "cancelled", err)
			results = append(results, result)
			continue
		}
		result.Err = e.Extract(ctx, containerPath, job)
		if result.Err != nil {
			logging.ErrorWithContext(logger, "subtitle extraction failed", "extract_failed",
				logging.TrackID(job.Track.ID),
				logging.Codec(job.Track.Codec()),
				logging.Output(job.OutputPath),
				logging.Error(result.Err),
				logging.String(logging.FieldErrorHint, "inspect the mkvextract diagnostics above"),
			)
			results = append(results, result)
			continue
		}
		result.Sidecars = existingFiles(job.Sidecars())
		if cues, ok := e.inspect(logger, job); ok {
			result.Cues = cues
		}
		logger.Info("subtitle extracted",
			logging.String(logging.FieldEventType, "extract_complete"),
			logging.TrackID(job.Track.ID),
			logging.Codec(job.Track.Codec()),
			logging.Output(job.OutputPath),
			logging.Int("cues", result.Cues),
			logging.Int("sidecars", len(result.Sidecars)),
		)
		results = append(results, result)
	}
	return results
}

func existingFiles(paths []string) []string {
	var found []string
	for _, path := range paths {
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			found = append(found, path)
		}
	}
	return found
}

// inspect parses text subtitle outputs to catch empty or garbled tracks.
// Failures are reported but never fail the job.
func (e *Extractor) inspect(logger *slog.Logger, job Job) (int, bool) {
	if !IsTextFormat(job.Extension) {
		return 0, false
	}
	subs, err := astisub.OpenFile(job.OutputPath)
	if err != nil {
		logging.WarnWithContext(logger, "extracted subtitle could not be parsed", "subtitle_parse_failed",
			logging.TrackID(job.Track.ID),
			logging.Output(job.OutputPath),
			logging.Error(err),
			logging.String(logging.FieldImpact, "file is kept and archived as extracted"),
		)
		return 0, false
	}
	if len(subs.Items) == 0 {
		logging.WarnWithContext(logger, "extracted subtitle has no cues", "subtitle_empty",
			logging.TrackID(job.Track.ID),
			logging.Output(job.OutputPath),
			logging.String(logging.FieldImpact, "file is kept and archived as extracted"),
		)
	}
	return len(subs.Items), true
}

// IsTextFormat reports whether ext is a text subtitle format astisub reads.
func IsTextFormat(ext string) bool {
	switch ext {
	case "srt", "ass", "ssa", "vtt":
		return true
	default:
		return false
	}
}
