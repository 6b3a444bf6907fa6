package mkvtoolnix

import (
	"encoding/json"
	"fmt"
	"sort"

	"mkvsubstrip/internal/services"
)

// Track is one track declared by a container. Optional properties are nil
// when mkvmerge does not report them.
type Track struct {
	ID       int
	Type     string
	CodecID  *string
	Language *string
	Name     *string
}

// Codec returns the Matroska codec identifier or "".
func (t Track) Codec() string { return deref(t.CodecID) }

// Lang returns the language tag or "".
func (t Track) Lang() string { return deref(t.Language) }

// TrackName returns the human-readable track name or "".
func (t Track) TrackName() string { return deref(t.Name) }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type identifyOutput struct {
	Tracks *[]identifyTrack `json:"tracks"`
}

type identifyTrack struct {
	ID         *int               `json:"id"`
	Type       string             `json:"type"`
	Properties identifyProperties `json:"properties"`
}

type identifyProperties struct {
	CodecID   *string `json:"codec_id"`
	Language  *string `json:"language"`
	TrackName *string `json:"track_name"`
}

// ParseIdentify decodes mkvmerge identification JSON. A payload without a
// track list, with an empty one, or with tracks lacking a unique id is
// reported as ErrMalformedOutput. Tracks come back ordered by id.
func ParseIdentify(payload []byte) ([]Track, error) {
	var out identifyOutput
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, malformed("decode identification json", err)
	}
	if out.Tracks == nil {
		return nil, malformed("identification output has no tracks key", nil)
	}
	if len(*out.Tracks) == 0 {
		return nil, malformed("container reports zero tracks", nil)
	}

	tracks := make([]Track, 0, len(*out.Tracks))
	seen := make(map[int]struct{}, len(*out.Tracks))
	for i, raw := range *out.Tracks {
		if raw.ID == nil {
			return nil, malformed(fmt.Sprintf("track entry %d has no id", i), nil)
		}
		if _, dup := seen[*raw.ID]; dup {
			return nil, malformed(fmt.Sprintf("duplicate track id %d", *raw.ID), nil)
		}
		seen[*raw.ID] = struct{}{}
		tracks = append(tracks, Track{
			ID:       *raw.ID,
			Type:     raw.Type,
			CodecID:  raw.Properties.CodecID,
			Language: raw.Properties.Language,
			Name:     raw.Properties.TrackName,
		})
	}
	sort.SliceStable(tracks, func(i, j int) bool { return tracks[i].ID < tracks[j].ID })
	return tracks, nil
}

func malformed(message string, err error) error {
	return services.Wrap(services.ErrMalformedOutput, services.StageProbe, "identify", message, err)
}
