// Package pipeline runs a batch of inputs through probe, selection,
// planning and ffmpeg, one file at a time, and reports a summary.
//
// Per file: stat -> ffprobe -> catalog -> select -> plan -> resolve output
// name -> execute (or print, in the inspection modes). A failure is fatal
// for that file only; the batch moves on. Cancellation is checked between
// files.
package pipeline
