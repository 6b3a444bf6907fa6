package subtitles

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"

	"mkvsubstrip/internal/textutil"
)

// SynthesizeName builds "<stem>.<language>.(<name>).<ext>" from the
// components that are present, then replaces characters that are unsafe in
// filenames. Blank language or name components are omitted; present ones
// keep their text as tagged.
func SynthesizeName(stem, language, name, ext string) string {
	return joinName(stem, language, name, "", ext)
}

func joinName(stem, language, name, disambiguator, ext string) string {
	parts := make([]string, 0, 5)
	parts = append(parts, norm.NFC.String(stem))
	if strings.TrimSpace(language) != "" {
		parts = append(parts, norm.NFC.String(language))
	}
	if strings.TrimSpace(name) != "" {
		parts = append(parts, "("+norm.NFC.String(name)+")")
	}
	if disambiguator != "" {
		parts = append(parts, disambiguator)
	}
	if ext = strings.TrimPrefix(strings.TrimSpace(ext), "."); ext != "" {
		parts = append(parts, ext)
	}
	return textutil.SanitizeFileName(strings.Join(parts, "."))
}

// NameAllocator hands out output names within one directory. The first
// track to synthesize a name keeps it; a later track that would produce the
// same name (compared case-insensitively, since the output may land on a
// case-insensitive filesystem) gets its track id inserted before the
// extension. Safe for concurrent use, so one allocator can serve every
// container of a batch.
type NameAllocator struct {
	mu    sync.Mutex
	taken map[string]struct{}
}

// NewNameAllocator returns an allocator with nothing claimed.
func NewNameAllocator() *NameAllocator {
	return &NameAllocator{taken: make(map[string]struct{})}
}

// NewDirNameAllocator returns an allocator that treats every entry already
// in dir as taken, so no output ever lands on an existing file.
func NewDirNameAllocator(dir string) (*NameAllocator, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	a := NewNameAllocator()
	for _, entry := range entries {
		a.Reserve(entry.Name())
	}
	return a, nil
}

// Reserve marks name as unavailable, e.g. the container's own filename.
func (a *NameAllocator) Reserve(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.taken[strings.ToLower(name)] = struct{}{}
}

// Allocate returns a name for track id that no earlier call has returned.
// Sidecar files the format produces next to the output (see SidecarExts)
// must be free as well and are claimed together with it.
func (a *NameAllocator) Allocate(stem, language, name, ext string, id int) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	candidate := joinName(stem, language, name, "", ext)
	if a.claim(candidate, ext) {
		return candidate
	}
	tag := strconv.Itoa(id)
	candidate = joinName(stem, language, name, tag, ext)
	for n := 2; !a.claim(candidate, ext); n++ {
		candidate = joinName(stem, language, name, tag+"-"+strconv.Itoa(n), ext)
	}
	return candidate
}

func (a *NameAllocator) claim(name, ext string) bool {
	keys := []string{strings.ToLower(name)}
	for _, sidecar := range SidecarPaths(name, ext) {
		keys = append(keys, strings.ToLower(sidecar))
	}
	for _, key := range keys {
		if _, ok := a.taken[key]; ok {
			return false
		}
	}
	for _, key := range keys {
		a.taken[key] = struct{}{}
	}
	return true
}

// sidecarExts lists files mkvextract writes beside the main output.
var sidecarExts = map[string][]string{
	"sub": {"idx"},
}

// SidecarPaths returns the companion files written next to output for the
// given subtitle extension. VobSub, for instance, pairs x.sub with x.idx.
func SidecarPaths(output, ext string) []string {
	exts := sidecarExts[strings.ToLower(strings.TrimPrefix(ext, "."))]
	if len(exts) == 0 {
		return nil
	}
	base := strings.TrimSuffix(output, filepath.Ext(output))
	paths := make([]string, 0, len(exts))
	for _, sidecar := range exts {
		paths = append(paths, base+"."+sidecar)
	}
	return paths
}
