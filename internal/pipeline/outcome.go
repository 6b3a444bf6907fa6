package pipeline

import (
	"errors"
	"fmt"
	"time"

	"mkvsubstrip/internal/subtitles"
)

// FileOutcome reports what happened to one container. It is built for
// reporting and exit-status decisions only.
type FileOutcome struct {
	Path           string
	State          State
	History        []State
	Reason         string
	Tracks         int
	Planned        []subtitles.Job
	Jobs           []subtitles.JobResult
	SubtitlesFound bool
	Remuxed        bool
	Archived       bool
	ArchivePath    string
	Err            error
	Duration       time.Duration
}

func newOutcome(path string) *FileOutcome {
	return &FileOutcome{
		Path:    path,
		State:   StateDiscovered,
		History: []State{StateDiscovered},
	}
}

// advance moves the outcome to next. Illegal moves are programming errors
// and panic.
func (o *FileOutcome) advance(next State) {
	if !CanTransition(o.State, next) {
		panic(fmt.Sprintf("pipeline: illegal transition %s -> %s", o.State, next))
	}
	o.State = next
	o.History = append(o.History, next)
}

func (o *FileOutcome) fail(reason string, err error) {
	o.advance(StateFailed)
	o.Reason = reason
	o.Err = err
}

// Extracted returns the number of jobs that produced a file.
func (o FileOutcome) Extracted() int {
	n := 0
	for _, job := range o.Jobs {
		if job.Err == nil {
			n++
		}
	}
	return n
}

// ExtractedPaths returns the files written by successful jobs in job order,
// each output followed by its sidecars.
func (o FileOutcome) ExtractedPaths() []string {
	paths := make([]string, 0, len(o.Jobs))
	for _, job := range o.Jobs {
		paths = append(paths, job.Outputs()...)
	}
	return paths
}

// Summary collects the outcomes of one run in discovery order.
type Summary struct {
	RunID    string
	Dir      string
	DryRun   bool
	Outcomes []FileOutcome
}

// Succeeded counts files that reached Done.
func (s Summary) Succeeded() int {
	return s.count(StateDone)
}

// Planned counts files a dry run probed and classified without changing.
func (s Summary) Planned() int {
	return s.count(StateClassified)
}

// Failed counts files that ended in Failed.
func (s Summary) Failed() int {
	return s.count(StateFailed)
}

func (s Summary) count(state State) int {
	n := 0
	for _, o := range s.Outcomes {
		if o.State == state {
			n++
		}
	}
	return n
}

// ErrFilesFailed is reported by Summary.Err when any file failed.
var ErrFilesFailed = errors.New("one or more files failed")

// Err returns nil when no file failed. Otherwise it wraps ErrFilesFailed
// together with the first recorded failure.
func (s Summary) Err() error {
	failed := s.Failed()
	if failed == 0 {
		return nil
	}
	var first error
	for _, o := range s.Outcomes {
		if o.State == StateFailed && o.Err != nil {
			first = o.Err
			break
		}
	}
	if first == nil {
		return fmt.Errorf("%w: %d of %d", ErrFilesFailed, failed, len(s.Outcomes))
	}
	return fmt.Errorf("%w: %d of %d: %w", ErrFilesFailed, failed, len(s.Outcomes), first)
}
