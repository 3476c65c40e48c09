// Package probe runs ffprobe and turns its JSON output into a typed,
// immutable FileProbe catalog.
//
// Files:
//   - prober.go: ffprobe invocation and the JSON wire types
//   - catalog.go: Build, which classifies streams by kind and assigns
//     kind-relative indices (the N in "-map 0:a:N")
//   - types.go: Stream, FileProbe, CatalogOptions
//
// Streams whose codec_type is not video, audio or subtitle are dropped and
// do not consume an index.
package probe
