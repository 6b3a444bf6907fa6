// Package pipeline drives a batch of containers through probe, extraction,
// remux, and archiving.
//
// Each file moves through its own state machine (see State). Files are
// independent: one file failing does not stop its siblings unless fail-fast
// is configured. Within a file every step runs strictly in order because
// each depends on the full result of the previous one.
package pipeline
