// Package archive bundles extracted subtitle files into a zip next to the
// container they came from.
package archive

import (
	"archive/zip"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"mkvsubstrip/internal/fileutil"
	"mkvsubstrip/internal/logging"
	"mkvsubstrip/internal/services"
)

// ErrNoFiles is returned when Create is asked to archive nothing.
var ErrNoFiles = errors.New("no files to archive")

// Archiver writes deflate-compressed zip archives.
type Archiver struct {
	logger *slog.Logger
}

// New constructs an archiver.
func New(logger *slog.Logger) *Archiver {
	return &Archiver{logger: logging.NewComponentLogger(logger, "archive")}
}

// Create writes a zip at dest holding exactly files, each stored under its
// base name. The archive is assembled under a temporary name and renamed
// over dest only when complete, so a failure never leaves a partial
// archive behind.
func (a *Archiver) Create(dest string, files []string) (err error) {
	if len(files) == 0 {
		return services.Wrap(services.ErrIOFailure, services.StageArchive, "create", dest, ErrNoFiles)
	}
	if err := checkEntryNames(files); err != nil {
		return err
	}

	tmp := fileutil.TempSibling(dest)
	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return services.Wrap(services.ErrIOFailure, services.StageArchive, "create", "open temp archive", err)
	}
	defer func() {
		if err != nil {
			_ = out.Close()
			_ = fileutil.RemoveIfExists(tmp)
		}
	}()

	zw := zip.NewWriter(out)
	for _, file := range files {
		if err = addFile(zw, file); err != nil {
			return err
		}
	}
	if err = zw.Close(); err != nil {
		return services.Wrap(services.ErrIOFailure, services.StageArchive, "finalize", "write zip directory", err)
	}
	if err = out.Sync(); err != nil {
		return services.Wrap(services.ErrIOFailure, services.StageArchive, "finalize", "sync archive", err)
	}
	if err = out.Close(); err != nil {
		return services.Wrap(services.ErrIOFailure, services.StageArchive, "finalize", "close archive", err)
	}
	if err = os.Rename(tmp, dest); err != nil {
		return services.Wrap(services.ErrIOFailure, services.StageArchive, "finalize", "rename archive into place", err)
	}

	if a != nil {
		a.logger.Info("subtitle archive written",
			logging.String(logging.FieldEventType, "archive_complete"),
			logging.String("archive", dest),
			logging.Int("entries", len(files)),
		)
	}
	return nil
}

func addFile(zw *zip.Writer, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return services.Wrap(services.ErrIOFailure, services.StageArchive, "add entry", "open "+path, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return services.Wrap(services.ErrIOFailure, services.StageArchive, "add entry", "stat "+path, err)
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return services.Wrap(services.ErrIOFailure, services.StageArchive, "add entry", "header for "+path, err)
	}
	header.Name = filepath.Base(path)
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return services.Wrap(services.ErrIOFailure, services.StageArchive, "add entry", "create "+header.Name, err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return services.Wrap(services.ErrIOFailure, services.StageArchive, "add entry", "copy "+path, err)
	}
	return nil
}

// checkEntryNames rejects inputs that would produce two entries with the
// same name.
func checkEntryNames(files []string) error {
	seen := make(map[string]struct{}, len(files))
	for _, file := range files {
		name := strings.ToLower(filepath.Base(file))
		if _, dup := seen[name]; dup {
			return services.Wrap(services.ErrIOFailure, services.StageArchive, "create",
				"duplicate entry "+filepath.Base(file), nil)
		}
		seen[name] = struct{}{}
	}
	return nil
}
