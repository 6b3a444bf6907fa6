// Package remux rewrites a Matroska container without its subtitle tracks
// and swaps the result into place.
//
// The rewrite goes to a hidden temporary file next to the original. Only a
// verified, non-empty result replaces the original, and the replacement is a
// single rename. A per-container file lock keeps two processes from
// remuxing the same file at once.
package remux
