// Package services defines shared utilities consumed by the pipeline stages
// and the external tool wrappers.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, file paths, and stage names for
//     logging.
//   - Structured error markers plus the Wrap helper so every stage reports
//     failures the same way (tool failure, malformed output, replace failed,
//     i/o failure) and callers can classify them with errors.Is / errors.As.
//
// Use these helpers when wiring new stage logic so error handling and
// observability stay uniform across the pipeline.
package services
