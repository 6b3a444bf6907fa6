package mkvtoolnix

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"mkvsubstrip/internal/logging"
	"mkvsubstrip/internal/services"
)

const (
	// DefaultMkvmerge and DefaultMkvextract are resolved on PATH.
	DefaultMkvmerge   = "mkvmerge"
	DefaultMkvextract = "mkvextract"

	maxDiagnosticBytes = 4096
	waitDelay          = 5 * time.Second
)

// CommandRunner executes a binary and returns what it wrote to stdout and
// stderr. A non-nil error means the process could not run or exited non-zero.
type CommandRunner func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

// Toolchain runs MKVToolNix binaries.
type Toolchain struct {
	mkvmerge   string
	mkvextract string
	timeout    time.Duration
	logger     *slog.Logger
	run        CommandRunner
}

// New constructs a toolchain. Empty binary names fall back to the PATH
// defaults; a zero timeout disables the per-invocation bound.
func New(mkvmerge, mkvextract string, timeout time.Duration, logger *slog.Logger) *Toolchain {
	if strings.TrimSpace(mkvmerge) == "" {
		mkvmerge = DefaultMkvmerge
	}
	if strings.TrimSpace(mkvextract) == "" {
		mkvextract = DefaultMkvextract
	}
	return &Toolchain{
		mkvmerge:   mkvmerge,
		mkvextract: mkvextract,
		timeout:    timeout,
		logger:     logging.NewComponentLogger(logger, "mkvtoolnix"),
		run:        defaultCommandRunner,
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (t *Toolchain) WithCommandRunner(r CommandRunner) {
	if t != nil && r != nil {
		t.run = r
	}
}

// Identify probes path and returns its tracks ordered by id.
func (t *Toolchain) Identify(ctx context.Context, path string) ([]Track, error) {
	stdout, err := t.invoke(ctx, services.StageProbe, t.mkvmerge,
		"--identify", "--identification-format", "json", path)
	if err != nil {
		return nil, err
	}
	return ParseIdentify(stdout)
}

// ExtractTrack writes track id of container to output.
func (t *Toolchain) ExtractTrack(ctx context.Context, container string, id int, output string) error {
	_, err := t.invoke(ctx, services.StageExtract, t.mkvextract,
		"tracks", container, strconv.Itoa(id)+":"+output)
	return err
}

// RemuxWithoutSubtitles copies input to output keeping every track except
// subtitles.
func (t *Toolchain) RemuxWithoutSubtitles(ctx context.Context, input, output string) error {
	_, err := t.invoke(ctx, services.StageRemux, t.mkvmerge,
		"--output", output, "--no-subtitles", input)
	return err
}

func (t *Toolchain) invoke(ctx context.Context, stage, binary string, args ...string) ([]byte, error) {
	if t == nil {
		return nil, services.Wrap(services.ErrToolFailure, stage, binary, "toolchain not initialized", nil)
	}
	runCtx := ctx
	if t.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	t.logger.Debug("executing tool",
		logging.String(logging.FieldStage, stage),
		logging.String("binary", binary),
		logging.String("args", strings.Join(args, " ")),
	)

	start := time.Now()
	stdout, stderr, err := t.run(runCtx, binary, args...)
	elapsed := time.Since(start)
	if err == nil {
		t.logger.Debug("tool finished",
			logging.String(logging.FieldStage, stage),
			logging.String("binary", binary),
			logging.Duration("elapsed", elapsed),
		)
		return stdout, nil
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		message := fmt.Sprintf("no result after %s", t.timeout)
		return nil, services.Wrap(services.ErrToolFailure, stage, binary, message,
			fmt.Errorf("%w: %w", services.ErrTimeout, err))
	}
	return nil, services.Wrap(services.ErrToolFailure, stage, binary, diagnostic(stdout, stderr), err)
}

// diagnostic merges both output streams, keeping the tail when oversized.
func diagnostic(stdout, stderr []byte) string {
	var parts []string
	if s := strings.TrimSpace(string(stdout)); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(string(stderr)); s != "" {
		parts = append(parts, s)
	}
	text := strings.Join(parts, "\n")
	if len(text) > maxDiagnosticBytes {
		text = "..." + text[len(text)-maxDiagnosticBytes:]
	}
	return text
}

func defaultCommandRunner(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = waitDelay
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
