package remux

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"mkvsubstrip/internal/fileutil"
	"mkvsubstrip/internal/logging"
	"mkvsubstrip/internal/services"
)

// ErrLocked reports that another process holds the container's lock.
var ErrLocked = errors.New("container is locked by another process")

// SubtitleStripper writes a copy of input without subtitle tracks to output.
type SubtitleStripper interface {
	RemuxWithoutSubtitles(ctx context.Context, input, output string) error
}

// Remuxer replaces containers with subtitle-free copies.
type Remuxer struct {
	stripper SubtitleStripper
	lockDir  string
	logger   *slog.Logger
	rename   func(oldpath, newpath string) error
}

// New constructs a remuxer. Lock files are created under lockDir.
func New(stripper SubtitleStripper, lockDir string, logger *slog.Logger) *Remuxer {
	return &Remuxer{
		stripper: stripper,
		lockDir:  lockDir,
		logger:   logging.NewComponentLogger(logger, "remux"),
		rename:   os.Rename,
	}
}

// StripSubtitles rewrites path without subtitle tracks. When the tool fails
// the temporary output is removed and path is untouched. When the result
// cannot be verified or swapped in, both path and the temporary file are
// left on disk and the error carries ErrReplaceFailed.
func (r *Remuxer) StripSubtitles(ctx context.Context, path string) error {
	if r == nil || r.stripper == nil {
		return services.Wrap(services.ErrConfiguration, services.StageRemux, "remux", "remuxer not configured", nil)
	}
	logger := logging.WithContext(ctx, r.logger)

	lock, err := r.acquire(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Debug("failed to release container lock", logging.Error(err))
		}
	}()

	tmp := fileutil.TempSibling(path)
	logger.Info("remuxing without subtitles",
		logging.String(logging.FieldEventType, "remux_start"),
		logging.String("temp", tmp),
	)
	if err := r.stripper.RemuxWithoutSubtitles(ctx, path, tmp); err != nil {
		if rmErr := fileutil.RemoveIfExists(tmp); rmErr != nil {
			logging.WarnWithContext(logger, "failed to remove remux temp file", "remux_cleanup_failed",
				logging.String("temp", tmp),
				logging.Error(rmErr),
				logging.String(logging.FieldImpact, "a stale temp file remains next to the container"),
			)
		}
		return err
	}

	size, err := fileutil.NonEmptyFile(tmp)
	if err != nil {
		return services.Wrap(services.ErrReplaceFailed, services.StageRemux, "verify output",
			"remuxed output unusable; original left untouched", err)
	}
	if err := r.rename(tmp, path); err != nil {
		return services.Wrap(services.ErrReplaceFailed, services.StageRemux, "replace original",
			fmt.Sprintf("remuxed output kept at %s", tmp), err)
	}
	logger.Info("container replaced without subtitles",
		logging.String(logging.FieldEventType, "remux_complete"),
		logging.Int64("size_bytes", size),
	)
	return nil
}

// acquire takes the exclusive lock for path without blocking. Every lock
// failure means mkvmerge never ran, so it is reported as a tool failure.
func (r *Remuxer) acquire(path string) (*flock.Flock, error) {
	if err := os.MkdirAll(r.lockDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrToolFailure, services.StageRemux, "lock", "create lock directory", err)
	}
	lock := flock.New(LockPath(r.lockDir, path))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrToolFailure, services.StageRemux, "lock", "acquire container lock", err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrToolFailure, services.StageRemux, "lock", path, ErrLocked)
	}
	return lock, nil
}

// LockPath returns the lock file used for path. Paths are made absolute so
// relative and absolute spellings of one file share a lock.
func LockPath(lockDir, path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	sum := sha256.Sum256([]byte(path))
	return filepath.Join(lockDir, hex.EncodeToString(sum[:8])+".lock")
}
