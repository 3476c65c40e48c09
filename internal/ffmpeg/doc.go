// Package ffmpeg renders a planner.TranscodePlan into an ffmpeg argument
// vector and runs it.
//
//   - Render, RenderTo, CommandLine (builder.go)
//   - Execute with merged output and progress callbacks (executor.go)
//   - ParseProgressLine, Percent (progress.go)
//   - ErrBinaryNotFound, ExitError, Diagnose (errors.go)
package ffmpeg
