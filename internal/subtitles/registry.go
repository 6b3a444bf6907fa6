package subtitles

import (
	"sort"
	"strings"
)

// Registry maps Matroska subtitle codec ids to the extension mkvextract's
// output should carry. A Registry is never mutated after construction and is
// safe for concurrent use.
type Registry struct {
	byCodec map[string]string
}

// NewRegistry copies entries into a new registry. Extensions are stored
// without a leading dot.
func NewRegistry(entries map[string]string) *Registry {
	byCodec := make(map[string]string, len(entries))
	for codec, ext := range entries {
		codec = strings.TrimSpace(codec)
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if codec == "" || ext == "" {
			continue
		}
		byCodec[codec] = ext
	}
	return &Registry{byCodec: byCodec}
}

// https://www.matroska.org/technical/subtitles.html
var defaultRegistry = NewRegistry(map[string]string{
	"S_TEXT/UTF8":   "srt",
	"S_TEXT/ASS":    "ass",
	"S_TEXT/SSA":    "ssa",
	"S_TEXT/WEBVTT": "vtt",
	"S_VOBSUB":      "sub",
	"S_HDMV/PGS":    "sup",
	"S_HDMV/TEXTST": "textst",
	"S_DVBSUB":      "dvb",
})

// DefaultRegistry returns the process-wide registry of supported codecs.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Classify returns the output extension for codec. ok is false when the codec
// is not a supported subtitle codec, which is an expected outcome for video
// and audio tracks.
func (r *Registry) Classify(codec string) (ext string, ok bool) {
	if r == nil {
		return "", false
	}
	ext, ok = r.byCodec[strings.TrimSpace(codec)]
	return ext, ok
}

// Codecs lists the registered codec ids in sorted order.
func (r *Registry) Codecs() []string {
	if r == nil {
		return nil
	}
	codecs := make([]string, 0, len(r.byCodec))
	for codec := range r.byCodec {
		codecs = append(codecs, codec)
	}
	sort.Strings(codecs)
	return codecs
}
