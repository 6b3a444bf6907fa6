// Package fileutil holds the small filesystem helpers shared by the remux
// and archive steps: unique temp paths next to a target and post-write
// verification.
package fileutil
