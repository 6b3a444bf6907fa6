package subtitles

import (
	"path/filepath"
	"strings"

	"mkvsubstrip/internal/mkvtoolnix"
)

// Job pairs one subtitle track with the file it is extracted to.
type Job struct {
	Track      mkvtoolnix.Track
	Extension  string
	OutputPath string
}

// Sidecars returns the companion files the extraction may write next to
// OutputPath.
func (j Job) Sidecars() []string {
	return SidecarPaths(j.OutputPath, j.Extension)
}

// Plan classifies tracks and returns one job per subtitle track, in track
// order, with output files next to the container. Tracks whose codec is not
// in the registry are returned as ignored.
//
// names decides the output filenames. Containers sharing a directory must
// share an allocator, otherwise two of them can pick the same name. A nil
// allocator only guards against collisions within this container.
func Plan(containerPath string, tracks []mkvtoolnix.Track, registry *Registry, names *NameAllocator) (jobs []Job, ignored []mkvtoolnix.Track) {
	dir := filepath.Dir(containerPath)
	stem := Stem(containerPath)

	if names == nil {
		names = NewNameAllocator()
	}
	names.Reserve(filepath.Base(containerPath))
	names.Reserve(ArchiveName(containerPath))
	for _, track := range tracks {
		ext, ok := registry.Classify(track.Codec())
		if !ok {
			ignored = append(ignored, track)
			continue
		}
		name := names.Allocate(stem, track.Lang(), track.TrackName(), ext, track.ID)
		jobs = append(jobs, Job{
			Track:      track,
			Extension:  ext,
			OutputPath: filepath.Join(dir, name),
		})
	}
	return jobs, ignored
}

// Stem returns the container filename without its final extension.
func Stem(containerPath string) string {
	base := filepath.Base(containerPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ArchiveName returns the filename of the zip that bundles the subtitles
// extracted from containerPath.
func ArchiveName(containerPath string) string {
	return Stem(containerPath) + ".zip"
}
