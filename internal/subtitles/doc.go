// Package subtitles decides which container tracks are subtitles, names the
// files they are extracted to, and drives the extraction.
//
// Key types:
//   - Registry: immutable Matroska codec id -> file extension map
//   - Job: one subtitle track paired with its output path
//   - NameAllocator: collision-free output names within one container
//   - Extractor: runs one extraction per job and inspects text outputs
package subtitles
