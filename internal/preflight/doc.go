// Package preflight provides readiness checks for the binaries and
// filesystem paths mkvsubstrip depends on.
//
// The "check" command prints every result. The hook itself runs RunAll
// before touching any container and refuses to start when a check fails, so
// a read-only mount or a full disk is reported once instead of as a remux
// failure on every file.
package preflight
