// Package mkvtoolnix wraps the MKVToolNix command-line tools.
//
// Key types:
//   - Toolchain: runs mkvmerge/mkvextract with a bounded timeout per call
//   - Track: one entry from mkvmerge's JSON identification output
//
// Primary entry points:
//   - Toolchain.Identify: probe a container and return its tracks
//   - Toolchain.ExtractTrack: write one track to a standalone file
//   - Toolchain.RemuxWithoutSubtitles: copy a container minus subtitle tracks
//   - ParseIdentify: decode identification JSON without running anything
//
// Every failure is a *services.Error tagged with the stage that ran the tool
// and carries the tool's diagnostic output. mkvmerge prints its errors on
// stdout, so both streams are captured.
package mkvtoolnix
