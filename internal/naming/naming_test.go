package naming

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input, dir, ext, want string
	}{
		{"/media/Movie (2019).mkv", "out", "mp4", filepath.Join("out", "Movie (2019).mp4")},
		{"song.flac", ".", "m4a", "song.m4a"},
		{"/x/archive.tar.avi", "/y", "mp4", "/y/archive.tar.mp4"},
		{"/x/noext", "/y", "mp4", "/y/noext.mp4"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, OutputPath(tt.input, tt.dir, tt.ext), tt.input)
	}
}

func TestPartialPath(t *testing.T) {
	assert.Equal(t, "/out/Movie.partial.mp4", PartialPath("/out/Movie.mp4"))
	assert.Equal(t, "a - dup1.partial.m4a", PartialPath("a - dup1.m4a"))
	assert.True(t, IsPartial("/out/Movie.partial.mp4"))
	assert.False(t, IsPartial("/out/Movie.mp4"))
	assert.False(t, IsPartial("/out/partial.mp4"))
}

func TestCollisionResolver_Sequence(t *testing.T) {
	cr := NewCollisionResolver()
	assert.Equal(t, "out/a.mp4", cr.Resolve("in/a.mkv", "out/a.mp4"))
	assert.Equal(t, "out/a.mp4", cr.Resolve("in/a.mkv", "out/a.mp4"), "owner may re-resolve")
	assert.Equal(t, filepath.Join("out", "a - dup1.mp4"), cr.Resolve("in/a.avi", "out/a.mp4"))
	assert.Equal(t, filepath.Join("out", "a - dup2.mp4"), cr.Resolve("in/a.webm", "out/a.mp4"))
	assert.Equal(t, "out/b.mp4", cr.Resolve("in/b.mkv", "out/b.mp4"))
}

func TestCollisionResolver_OutputIsInput(t *testing.T) {
	cr := NewCollisionResolver()
	assert.Equal(t, filepath.Join("dir", "clip - dup1.mp4"), cr.Resolve("dir/clip.mp4", "dir/clip.mp4"))
	assert.Equal(t, filepath.Join("dir", "clip - dup1.mp4"), cr.Resolve("dir/clip.mp4", "./dir/clip.mp4"), "same input, same answer")
}

func TestCollisionResolver_SkipsClaimedCandidate(t *testing.T) {
	cr := NewCollisionResolver()
	cr.Resolve("in/x.mkv", "out/x - dup1.mp4")
	cr.Resolve("in/x.avi", "out/x.mp4")
	assert.Equal(t, filepath.Join("out", "x - dup2.mp4"), cr.Resolve("in/x.mov", "out/x.mp4"))
}

func TestCollisionResolver_ReservedInputsAreNeverOutputs(t *testing.T) {
	cr := NewCollisionResolver()
	cr.Reserve([]string{"dir/a.mkv", "dir/a.mp4"})

	assert.Equal(t, filepath.Join("dir", "a - dup1.mp4"), cr.Resolve("dir/a.mkv", "dir/a.mp4"))
	assert.Equal(t, filepath.Join("dir", "a - dup2.mp4"), cr.Resolve("dir/a.mp4", "dir/a.mp4"))
	assert.Equal(t, filepath.Join("dir", "a.m4a"), cr.Resolve("dir/a.mkv", "dir/a.m4a"), "unrelated names stay free")
}

func TestStem(t *testing.T) {
	assert.Equal(t, "Movie (2019)", Stem("/media/Movie (2019).mkv"))
	assert.Equal(t, "archive.tar", Stem("archive.tar.avi"))
	assert.Equal(t, "noext", Stem("/x/noext"))
}

func TestArgSafe(t *testing.T) {
	assert.Equal(t, "."+string(filepath.Separator)+"-x.mkv", ArgSafe("-x.mkv"))
	assert.Equal(t, "x.mkv", ArgSafe("x.mkv"))
	assert.Equal(t, "/abs/-x.mkv", ArgSafe("/abs/-x.mkv"))
	assert.Equal(t, "dir/-x.mkv", ArgSafe("dir/-x.mkv"))
}

func TestCollisionResolver_Concurrent(t *testing.T) {
	cr := NewCollisionResolver()
	var wg sync.WaitGroup
	results := make([]string, 20)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = cr.Resolve(filepath.Join("in", string(rune('a'+i))+".mkv"), "out/same.mp4")
		}(i)
	}
	wg.Wait()

	seen := map[string]bool{}
	for _, r := range results {
		assert.False(t, seen[r], "duplicate %s", r)
		seen[r] = true
	}
}
