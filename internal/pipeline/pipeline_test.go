package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/convert2qt/internal/config"
	"github.com/backmassage/convert2qt/internal/logging"
)

// --- Discover tests ---

func TestDiscover_FiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "movie.mkv")
	touch(t, dir, "show.mp4")
	touch(t, dir, "music.flac")
	touch(t, dir, "readme.txt")
	touch(t, dir, "cover.jpg")
	touch(t, dir, "anime.avi")

	files, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"anime.avi", "movie.mkv", "music.flac", "show.mp4"}, basenames(files))
}

func TestDiscover_AllMediaExtensions(t *testing.T) {
	dir := t.TempDir()
	for ext := range mediaExtensions {
		touch(t, dir, "file"+ext)
	}
	touch(t, dir, "file.nfo")

	files, err := Discover(dir)
	require.NoError(t, err)
	assert.Len(t, files, len(mediaExtensions))
}

func TestDiscover_PrunesExtras(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "main.mkv")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Extras"), 0o755))
	touch(t, filepath.Join(dir, "Extras"), "bonus.mkv")

	files, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.mkv"}, basenames(files))
}

func TestDiscover_RootNamedExtrasIsWalked(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "extras")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	touch(t, dir, "bonus.mkv")

	files, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"bonus.mkv"}, basenames(files))
}

func TestDiscover_SkipsPartialOutputs(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "movie.mkv")
	touch(t, dir, "movie.partial.mp4")

	files, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"movie.mkv"}, basenames(files))
}

func TestDiscover_RecursiveAndSorted(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "Season 01")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	touch(t, sub, "b.mkv")
	touch(t, sub, "a.mkv")
	touch(t, dir, "z.mp4")

	files, err := Discover(dir)
	require.NoError(t, err)
	want := []string{
		filepath.Join(sub, "a.mkv"),
		filepath.Join(sub, "b.mkv"),
		filepath.Join(dir, "z.mp4"),
	}
	assert.Equal(t, want, files)
}

func TestDiscover_CaseInsensitiveExtension(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "LOUD.MKV")
	touch(t, dir, "Track.FLAC")

	files, err := Discover(dir)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "album")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	touch(t, sub, "02.flac")
	touch(t, sub, "01.flac")
	touch(t, dir, "clip.weird")

	files, errs := ExpandInputs([]string{
		filepath.Join(dir, "clip.weird"),
		sub,
		filepath.Join(dir, "missing.mkv"),
	})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "missing.mkv")
	assert.Equal(t, []string{"clip.weird", "01.flac", "02.flac"}, basenames(files))
}

func TestRunStats(t *testing.T) {
	s := RunStats{TotalInputBytes: 1000, TotalOutputBytes: 400, Converted: 1, Remuxed: 2}
	assert.Equal(t, int64(600), s.SpaceSaved())
	assert.Equal(t, 3, s.Succeeded())
	assert.Equal(t, 0, s.ExitCode())

	s.Failed = 1
	assert.Equal(t, 1, s.ExitCode())

	grew := RunStats{TotalInputBytes: 100, TotalOutputBytes: 150}
	assert.Equal(t, int64(-50), grew.SpaceSaved())
}

// --- Run tests with fake tools ---

// h264 video with stereo aac: a pure remux.
const remuxProbe = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video", "width": 1280, "height": 720},
    {"index": 1, "codec_name": "aac", "codec_type": "audio", "channels": 2, "tags": {"language": "eng"}}
  ],
  "format": {"filename": "in.mkv", "duration": "5.000000"}
}`

const subtitleOnlyProbe = `{
  "streams": [
    {"index": 0, "codec_name": "subrip", "codec_type": "subtitle", "tags": {"language": "eng"}}
  ],
  "format": {"filename": "in.mkv", "duration": "5.000000"}
}`

// Writes a progress line and creates the output named by the last argument.
const okFFmpeg = `for a; do last=$a; done
printf 'frame=1 time=00:00:02.00 speed=1x\r' >&2
printf 'data' > "$last"
`

// Creates the output, then fails.
const failFFmpeg = `for a; do last=$a; done
printf 'data' > "$last"
echo 'Unknown encoder libx265' >&2
exit 1
`

type fixture struct {
	cfg    config.Config
	log    *logging.Logger
	out    *bytes.Buffer
	inDir  string
	outDir string
}

func newFixture(t *testing.T, probeJSON, ffmpegScript string) *fixture {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes need a POSIX shell")
	}
	tools := t.TempDir()
	jsonPath := filepath.Join(tools, "probe.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(probeJSON), 0o644))

	cfg := config.DefaultConfig()
	cfg.Tools.FFprobe = script(t, tools, "ffprobe", "cat '"+jsonPath+"'\n")
	cfg.Tools.FFmpeg = script(t, tools, "ffmpeg", ffmpegScript)
	cfg.Logging.Color = config.ColorNever

	f := &fixture{cfg: cfg, out: &bytes.Buffer{}, inDir: t.TempDir(), outDir: t.TempDir()}
	f.cfg.Output.Dir = f.outDir

	log, err := logging.NewLogger(&f.cfg)
	require.NoError(t, err)
	t.Cleanup(func() { log.Close() })
	f.log = log

	oldOut, oldErr := stdout, stderr
	stdout, stderr = f.out, &bytes.Buffer{}
	t.Cleanup(func() { stdout, stderr = oldOut, oldErr })
	return f
}

func (f *fixture) run(t *testing.T, ctx context.Context, names ...string) RunStats {
	t.Helper()
	var args []string
	for _, n := range names {
		touch(t, f.inDir, n)
		args = append(args, filepath.Join(f.inDir, n))
	}
	return Run(ctx, &f.cfg, f.log, args)
}

func TestRun_RemuxWritesOutput(t *testing.T) {
	f := newFixture(t, remuxProbe, okFFmpeg)

	stats := f.run(t, context.Background(), "Movie.mkv")

	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Remuxed)
	assert.Equal(t, 0, stats.Failed)
	assert.Equal(t, 0, stats.ExitCode())

	data, err := os.ReadFile(filepath.Join(f.outDir, "Movie.mp4"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))
	assert.NoFileExists(t, filepath.Join(f.outDir, "Movie.partial.mp4"))
	assert.Equal(t, int64(4), stats.TotalOutputBytes)
}

func TestRun_NonAtomicWritesFinalNameDirectly(t *testing.T) {
	f := newFixture(t, remuxProbe, okFFmpeg)
	f.cfg.Output.AtomicOutput = false

	stats := f.run(t, context.Background(), "Movie.mkv")

	assert.Equal(t, 1, stats.Remuxed)
	assert.FileExists(t, filepath.Join(f.outDir, "Movie.mp4"))
}

func TestRun_FailureRemovesPartial(t *testing.T) {
	f := newFixture(t, remuxProbe, failFFmpeg)

	stats := f.run(t, context.Background(), "Movie.mkv")

	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 1, stats.ExitCode())
	assert.NoFileExists(t, filepath.Join(f.outDir, "Movie.partial.mp4"))
	assert.NoFileExists(t, filepath.Join(f.outDir, "Movie.mp4"))
}

func TestRun_CollidingNamesGetDupSuffix(t *testing.T) {
	f := newFixture(t, remuxProbe, okFFmpeg)

	stats := f.run(t, context.Background(), "Movie.mkv", "Movie.avi")

	assert.Equal(t, 2, stats.Remuxed)
	assert.FileExists(t, filepath.Join(f.outDir, "Movie.mp4"))
	assert.FileExists(t, filepath.Join(f.outDir, "Movie - dup1.mp4"))
}

func TestRun_OutputNeverOverwritesLaterInput(t *testing.T) {
	f := newFixture(t, remuxProbe, okFFmpeg)
	f.cfg.Output.Dir = f.inDir
	mkv := filepath.Join(f.inDir, "a.mkv")
	mp4 := filepath.Join(f.inDir, "a.mp4")
	require.NoError(t, os.WriteFile(mkv, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(mp4, []byte("ORIGINAL"), 0o644))

	stats := Run(context.Background(), &f.cfg, f.log, []string{mkv, mp4})

	assert.Equal(t, 2, stats.Remuxed)
	data, err := os.ReadFile(mp4)
	require.NoError(t, err)
	assert.Equal(t, "ORIGINAL", string(data))
	assert.FileExists(t, filepath.Join(f.inDir, "a - dup1.mp4"))
	assert.FileExists(t, filepath.Join(f.inDir, "a - dup2.mp4"))
}

func TestStoppedAt(t *testing.T) {
	assert.Equal(t, "Stopped at 40% (0:02 of 0:05)", stoppedAt(2, 5))
	assert.Equal(t, "Stopped at 100% (1:10 of 1:00)", stoppedAt(70, 60))
	assert.Empty(t, stoppedAt(3, 0))
}

func TestRun_UnsupportedInputFailsOnlyThatFile(t *testing.T) {
	f := newFixture(t, subtitleOnlyProbe, okFFmpeg)

	stats := f.run(t, context.Background(), "subs.mkv")

	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 0, stats.Succeeded())
}

func TestRun_MissingInputCountsAsFailed(t *testing.T) {
	f := newFixture(t, remuxProbe, okFFmpeg)

	stats := Run(context.Background(), &f.cfg, f.log, []string{filepath.Join(f.inDir, "nope.mkv")})

	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 0, stats.Total)
}

func TestRun_DumpPrintsCommandOnly(t *testing.T) {
	f := newFixture(t, remuxProbe, failFFmpeg)
	f.cfg.Dump = true

	stats := f.run(t, context.Background(), "Movie.mkv")

	assert.Equal(t, 1, stats.Inspected)
	assert.Equal(t, 0, stats.Failed)
	out := f.out.String()
	assert.Contains(t, out, "-codec:v:0 copy")
	assert.Contains(t, out, filepath.Join(f.outDir, "Movie.mp4"))
	assert.NoFileExists(t, filepath.Join(f.outDir, "Movie.mp4"))
}

func TestRun_InfoPrintsRawProbe(t *testing.T) {
	f := newFixture(t, subtitleOnlyProbe, failFFmpeg)
	f.cfg.Info = true

	stats := f.run(t, context.Background(), "subs.mkv")

	assert.Equal(t, 1, stats.Inspected)
	assert.Contains(t, f.out.String(), `"codec_name": "subrip"`)
}

func TestRun_StreamsPrintsTable(t *testing.T) {
	f := newFixture(t, remuxProbe, failFFmpeg)
	f.cfg.Streams = true

	stats := f.run(t, context.Background(), "Movie.mkv")

	assert.Equal(t, 1, stats.Inspected)
	out := f.out.String()
	assert.Contains(t, out, "h264")
	assert.Contains(t, out, "aac")
}

func TestRun_CancelledBeforeFirstFile(t *testing.T) {
	f := newFixture(t, remuxProbe, okFFmpeg)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats := f.run(t, ctx, "Movie.mkv")

	assert.Equal(t, 0, stats.Succeeded())
	assert.NoFileExists(t, filepath.Join(f.outDir, "Movie.mp4"))
}

// --- Helpers ---

func script(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
}

func basenames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}
