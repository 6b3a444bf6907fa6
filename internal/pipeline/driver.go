package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"mkvsubstrip/internal/config"
	"mkvsubstrip/internal/logging"
	"mkvsubstrip/internal/mkvtoolnix"
	"mkvsubstrip/internal/services"
	"mkvsubstrip/internal/subtitles"
)

// ErrAborted is returned by Run when fail-fast stopped the batch.
var ErrAborted = errors.New("batch aborted")

// Prober lists the tracks of a container.
type Prober interface {
	Identify(ctx context.Context, path string) ([]mkvtoolnix.Track, error)
}

// Extractor runs every extraction job for one container.
type Extractor interface {
	ExtractAll(ctx context.Context, containerPath string, jobs []subtitles.Job) []subtitles.JobResult
}

// Remuxer strips subtitle tracks from a container in place.
type Remuxer interface {
	StripSubtitles(ctx context.Context, path string) error
}

// Archiver bundles files into a zip at dest.
type Archiver interface {
	Create(dest string, files []string) error
}

// Components are the collaborators a Driver orchestrates.
type Components struct {
	Prober    Prober
	Extractor Extractor
	Remuxer   Remuxer
	Archiver  Archiver
	Registry  *subtitles.Registry
}

// Options controls batch policy.
type Options struct {
	Extension                 string
	Workers                   int
	FailFast                  bool
	RequireCompleteExtraction bool
	Archive                   bool
	DryRun                    bool
}

// OptionsFromConfig maps the [processing] section onto driver options.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		defaults := config.Default()
		cfg = &defaults
	}
	return Options{
		Extension:                 cfg.Processing.Extension,
		Workers:                   cfg.Processing.Workers,
		FailFast:                  cfg.Processing.FailFast,
		RequireCompleteExtraction: cfg.Processing.RequireCompleteExtraction,
		Archive:                   cfg.Processing.Archive,
	}
}

// Driver processes the containers of one job directory.
type Driver struct {
	c      Components
	opts   Options
	logger *slog.Logger
	now    func() time.Time
}

// NewDriver constructs a driver. A nil registry means the default one.
func NewDriver(c Components, opts Options, logger *slog.Logger) *Driver {
	if c.Registry == nil {
		c.Registry = subtitles.DefaultRegistry()
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Extension == "" {
		opts.Extension = ".mkv"
	}
	return &Driver{
		c:      c,
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "pipeline"),
		now:    time.Now,
	}
}

// FilePlan is the result of probing and classifying one container.
type FilePlan struct {
	Tracks  []mkvtoolnix.Track
	Jobs    []subtitles.Job
	Ignored []mkvtoolnix.Track
}

// Plan probes path and decides which tracks to extract and where, without
// writing anything. Output names avoid every file already in the
// container's directory.
func (d *Driver) Plan(ctx context.Context, path string) (FilePlan, error) {
	return d.plan(ctx, path, nil)
}

func (d *Driver) plan(ctx context.Context, path string, names *subtitles.NameAllocator) (FilePlan, error) {
	tracks, err := d.c.Prober.Identify(services.WithStage(ctx, services.StageProbe), path)
	if err != nil {
		return FilePlan{}, err
	}
	if names == nil {
		dir := filepath.Dir(path)
		if names, err = subtitles.NewDirNameAllocator(dir); err != nil {
			return FilePlan{}, services.Wrap(services.ErrIOFailure, services.StageProbe, "list directory", dir, err)
		}
	}
	jobs, ignored := subtitles.Plan(path, tracks, d.c.Registry, names)
	return FilePlan{Tracks: tracks, Jobs: jobs, Ignored: ignored}, nil
}

// batchNames returns the allocator shared by every container of a run. It
// starts with the directory listing plus each container's archive name, so
// subtitle outputs never overwrite user files, sibling outputs, or another
// container's archive.
func batchNames(dir string, files []string) (*subtitles.NameAllocator, error) {
	names, err := subtitles.NewDirNameAllocator(dir)
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		names.Reserve(subtitles.ArchiveName(file))
	}
	return names, nil
}

// Run discovers containers in dir and processes each of them. The returned
// error is non-nil only when the batch could not run or was aborted;
// per-file failures are reported through Summary.Err.
func (d *Driver) Run(ctx context.Context, runID, dir string) (Summary, error) {
	summary := Summary{RunID: runID, Dir: dir, DryRun: d.opts.DryRun}
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, d.logger)

	files, err := Discover(dir, d.opts.Extension)
	if err != nil {
		return summary, services.Wrap(services.ErrIOFailure, "", "discover", dir, err)
	}
	names, err := batchNames(dir, files)
	if err != nil {
		return summary, services.Wrap(services.ErrIOFailure, "", "list directory", dir, err)
	}
	logger.Info("batch started",
		logging.String(logging.FieldEventType, "batch_start"),
		logging.String("dir", dir),
		logging.Int("files", len(files)),
		logging.Int("workers", d.opts.Workers),
		logging.Bool("dry_run", d.opts.DryRun),
	)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	outcomes := make([]*FileOutcome, len(files))
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		abortErr error
		sem      = make(chan struct{}, d.opts.Workers)
	)
	for i, path := range files {
		if runCtx.Err() != nil {
			break
		}
		select {
		case sem <- struct{}{}:
		case <-runCtx.Done():
		}
		if runCtx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()
			outcome := d.processFile(runCtx, path, names)
			outcomes[i] = &outcome
			if d.opts.FailFast && outcome.State == StateFailed && services.StageOf(outcome.Err) == services.StageProbe {
				mu.Lock()
				if abortErr == nil {
					abortErr = fmt.Errorf("%w: %s: %w", ErrAborted, filepath.Base(path), outcome.Err)
				}
				mu.Unlock()
				cancel()
			}
		}(i, path)
	}
	wg.Wait()

	for i, path := range files {
		if outcomes[i] == nil {
			skipped := newOutcome(path)
			reason := "not processed: cancelled"
			if abortErr != nil {
				reason = "not processed: batch aborted"
			}
			skipped.fail(reason, context.Cause(runCtx))
			outcomes[i] = skipped
		}
		summary.Outcomes = append(summary.Outcomes, *outcomes[i])
	}

	logger.Info("batch finished",
		logging.String(logging.FieldEventType, "batch_complete"),
		logging.Int("files", len(summary.Outcomes)),
		logging.Int("succeeded", summary.Succeeded()),
		logging.Int("failed", summary.Failed()),
	)
	if abortErr != nil {
		return summary, abortErr
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// ProcessFile runs one container through the state machine and returns the
// terminal outcome.
func (d *Driver) ProcessFile(ctx context.Context, path string) FileOutcome {
	return d.processFile(ctx, path, nil)
}

func (d *Driver) processFile(ctx context.Context, path string, names *subtitles.NameAllocator) FileOutcome {
	start := d.now()
	outcome := newOutcome(path)
	ctx = services.WithFile(ctx, filepath.Base(path))
	logger := logging.WithContext(ctx, d.logger)

	d.process(ctx, logger, outcome, names)

	outcome.Duration = d.now().Sub(start)
	d.logOutcome(logger, outcome)
	return *outcome
}

func (d *Driver) process(ctx context.Context, logger *slog.Logger, outcome *FileOutcome, names *subtitles.NameAllocator) {
	path := outcome.Path

	plan, err := d.plan(ctx, path, names)
	if err != nil {
		outcome.fail(services.FailureReason(err), err)
		return
	}
	outcome.advance(StateProbed)
	outcome.Tracks = len(plan.Tracks)

	outcome.advance(StateClassified)
	outcome.Planned = plan.Jobs
	outcome.SubtitlesFound = len(plan.Jobs) > 0
	for _, track := range plan.Ignored {
		logger.Debug("track ignored",
			logging.TrackID(track.ID),
			logging.Codec(track.Codec()),
		)
	}
	if d.opts.DryRun {
		for _, job := range plan.Jobs {
			logger.Info("would extract subtitle",
				logging.String(logging.FieldEventType, "extract_planned"),
				logging.TrackID(job.Track.ID),
				logging.Codec(job.Track.Codec()),
				logging.Output(job.OutputPath),
			)
		}
		return
	}

	if len(plan.Jobs) == 0 {
		outcome.advance(StateNoSubtitles)
		outcome.advance(StateDone)
		return
	}

	outcome.advance(StateExtracting)
	outcome.Jobs = d.c.Extractor.ExtractAll(services.WithStage(ctx, services.StageExtract), path, plan.Jobs)
	extracted := outcome.Extracted()
	switch {
	case extracted == 0:
		outcome.fail("no subtitles extracted; container left unstripped", firstJobErr(outcome.Jobs))
		return
	case extracted < len(outcome.Jobs) && d.opts.RequireCompleteExtraction:
		outcome.fail(fmt.Sprintf("extracted %d of %d subtitle tracks; container left unstripped",
			extracted, len(outcome.Jobs)), firstJobErr(outcome.Jobs))
		return
	case extracted < len(outcome.Jobs):
		logging.WarnWithContext(logger, "stripping container after partial extraction", "extract_partial",
			logging.Int("extracted", extracted),
			logging.Int("planned", len(outcome.Jobs)),
			logging.String(logging.FieldImpact, "subtitle tracks that failed to extract are lost"),
			logging.String(logging.FieldErrorHint, "enable processing.require_complete_extraction to keep them"),
		)
	}

	outcome.advance(StateRemuxing)
	if err := d.c.Remuxer.StripSubtitles(services.WithStage(ctx, services.StageRemux), path); err != nil {
		outcome.fail(services.FailureReason(err), err)
		return
	}
	outcome.Remuxed = true

	if !d.opts.Archive || d.c.Archiver == nil {
		outcome.advance(StateDone)
		return
	}
	outcome.advance(StateArchiving)
	dest := filepath.Join(filepath.Dir(path), subtitles.ArchiveName(path))
	if err := d.c.Archiver.Create(dest, outcome.ExtractedPaths()); err != nil {
		outcome.fail(services.FailureReason(err), err)
		return
	}
	outcome.Archived = true
	outcome.ArchivePath = dest
	outcome.advance(StateDone)
}

func firstJobErr(results []subtitles.JobResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

func (d *Driver) logOutcome(logger *slog.Logger, o *FileOutcome) {
	attrs := []logging.Attr{
		logging.String(logging.FieldEventType, "file_complete"),
		logging.String("state", o.State.String()),
		logging.Int("tracks", o.Tracks),
		logging.Int("subtitle_tracks", len(o.Planned)),
		logging.Int("extracted", o.Extracted()),
		logging.Bool("remuxed", o.Remuxed),
		logging.Bool("archived", o.Archived),
		logging.Duration("duration", o.Duration),
	}
	if o.ArchivePath != "" {
		attrs = append(attrs, logging.String("archive", o.ArchivePath))
	}
	if o.State == StateFailed {
		attrs = append(attrs,
			logging.String("reason", o.Reason),
			logging.Error(o.Err),
			logging.String(logging.FieldErrorHint, failureHint(o)),
		)
		logging.ErrorWithContext(logger, "file failed", "file_failed", attrs...)
		return
	}
	logger.Info("file processed", logging.Args(attrs...)...)
}

func failureHint(o *FileOutcome) string {
	switch {
	case errors.Is(o.Err, services.ErrReplaceFailed):
		return "original container kept; remuxed copy left next to it for manual recovery"
	case o.Remuxed:
		return "container already stripped; extracted subtitle files are next to it"
	case len(o.Jobs) > 0:
		return "container left untouched; extracted subtitle files are kept"
	default:
		return "container left untouched"
	}
}
