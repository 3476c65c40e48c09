package check

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/convert2qt/internal/config"
)

type recordingLogger struct{ lines []string }

func (r *recordingLogger) add(level, f string, a ...interface{}) {
	r.lines = append(r.lines, level+" "+fmt.Sprintf(f, a...))
}
func (r *recordingLogger) Info(f string, a ...interface{})    { r.add("INFO", f, a...) }
func (r *recordingLogger) Success(f string, a ...interface{}) { r.add("SUCCESS", f, a...) }
func (r *recordingLogger) Warn(f string, a ...interface{})    { r.add("WARN", f, a...) }
func (r *recordingLogger) Error(f string, a ...interface{})   { r.add("ERROR", f, a...) }
func (r *recordingLogger) Debug(v bool, f string, a ...interface{}) {
	if v {
		r.add("DEBUG", f, a...)
	}
}

const encodersOutput = `Encoders:
 V..... = Video
 A..... = Audio
 ------
 V....D libx264              libx264 H.264 / AVC / MPEG-4 AVC (codec h264)
 V....D libx265              libx265 H.265 / HEVC (codec hevc)
 A....D aac                  AAC (Advanced Audio Coding)
 A....D ac3                  ATSC A/52A (AC-3)
 A....D alac                 ALAC (Apple Lossless Audio Codec)
 S..... mov_text             3GPP Timed Text subtitle
`

func TestParseEncoders(t *testing.T) {
	got := ParseEncoders(encodersOutput)
	for _, name := range RequiredEncoders {
		assert.True(t, got[name], name)
	}
	assert.True(t, got["libx264"])
	assert.False(t, got["Video"], "legend is skipped")
	assert.False(t, got["="])
	assert.Empty(t, ParseEncoders(""))
}

func writeTool(t *testing.T, dir, name, script string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func TestRunCheck_FakeTools(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes need a POSIX shell")
	}
	dir := t.TempDir()
	encFile := filepath.Join(dir, "encoders.txt")
	require.NoError(t, os.WriteFile(encFile, []byte(encodersOutput), 0o644))

	cfg := config.DefaultConfig()
	cfg.Tools.FFmpeg = writeTool(t, dir, "ffmpeg", `case "$*" in
*-version*) echo "ffmpeg version 7.1 Copyright" ;;
*-encoders*) cat "`+encFile+`" ;;
*) exit 0 ;;
esac
`)
	cfg.Tools.FFprobe = writeTool(t, dir, "ffprobe", `echo "ffprobe version 7.1"`)

	log := &recordingLogger{}
	assert.True(t, RunCheck(context.Background(), &cfg, log))
	joined := strings.Join(log.lines, "\n")
	assert.Contains(t, joined, "SUCCESS ffmpeg: ffmpeg version 7.1 Copyright")
	assert.Contains(t, joined, "SUCCESS encoder mov_text")
	assert.Contains(t, joined, "SUCCESS libx265 works")
}

func TestRunCheck_MissingTools(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tools.FFmpeg = filepath.Join(t.TempDir(), "no-ffmpeg")
	cfg.Tools.FFprobe = filepath.Join(t.TempDir(), "no-ffprobe")

	log := &recordingLogger{}
	assert.False(t, RunCheck(context.Background(), &cfg, log))
	assert.Contains(t, strings.Join(log.lines, "\n"), "ERROR ffmpeg not found")
}

func TestCheckDeps(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tools.FFprobe = filepath.Join(t.TempDir(), "no-ffprobe")
	assert.ErrorIs(t, CheckDeps(&cfg), ErrFfprobeNotFound)

	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes need a POSIX shell")
	}
	cfg.Tools.FFprobe = writeTool(t, t.TempDir(), "ffprobe", "exit 0\n")
	cfg.Tools.FFmpeg = filepath.Join(t.TempDir(), "no-ffmpeg")
	assert.ErrorIs(t, CheckDeps(&cfg), ErrFfmpegNotFound)

	cfg.Dump = true
	assert.NoError(t, CheckDeps(&cfg), "dump mode never runs ffmpeg")
}
