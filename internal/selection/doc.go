// Package selection applies the stream policy to a probe catalog: one video
// stream, a ranked list of audio streams, and at most one subtitle stream.
// Select is a pure function of its inputs.
package selection
