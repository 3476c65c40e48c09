// Package planner turns a stream selection into a TranscodePlan: an ordered
// list of Directives, one per output stream, plus the container decisions
// (output extension, global metadata drops, remux-only flag).
//
// Layout:
//   - TranscodePlan, Directive, Options, ResolutionCap (types.go)
//   - Plan: audio-only vs video branch (planner.go)
//   - BuildVideoDirective: copy/encode and scaling (video.go, filter.go)
//   - BuildAudioDirectives, BuildAudioOnlyDirective (audio.go)
//   - BuildSubtitleDirective (subtitle.go)
//
// Output indices are assigned here, once. The ffmpeg renderer reads them
// and never renumbers.
package planner
