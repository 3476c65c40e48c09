// Package naming builds output paths: the converted file name, the
// temporary partial name used while ffmpeg runs, and in-run collision
// resolution with " - dupN" suffixes.
package naming
