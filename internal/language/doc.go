// Package language normalizes stream language tags to the three-letter
// ISO 639-2/T form ffmpeg and QuickTime both understand.
package language
