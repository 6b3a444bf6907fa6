// Command mkvsubstrip is a post-processing hook for download clients. It
// extracts the subtitle tracks of every Matroska file in a finished job
// directory, zips them next to the video, and rewrites the video without
// subtitles.
//
// Invoked with no subcommand it behaves as the hook: the job directory comes
// from --dir, SAB_COMPLETE_DIR, or the first positional argument.
package main
