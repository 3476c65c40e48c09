package naming

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// CollisionResolver tracks output paths claimed by input files and resolves
// duplicates by appending " - dupN" suffixes. An output that would overwrite
// its own input (remuxing a.mp4 into the same directory) counts as taken.
// All methods are goroutine-safe.
type CollisionResolver struct {
	mu     sync.Mutex
	owners map[string]string // output path → input path that owns it
}

// NewCollisionResolver creates a ready-to-use resolver.
func NewCollisionResolver() *CollisionResolver {
	return &CollisionResolver{owners: make(map[string]string)}
}

// Reserve marks every input of a batch as taken before any output is
// written, so an earlier file cannot overwrite a later file's source.
func (cr *CollisionResolver) Reserve(inputs []string) {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	for _, input := range inputs {
		key := pathKey(input)
		if _, exists := cr.owners[key]; !exists {
			cr.owners[key] = key
		}
	}
}

// Resolve returns the final output path for input, handling collisions.
// If requestedOutput is unclaimed (or already owned by input), it is returned
// as-is. Otherwise a " - dupN" variant is generated.
func (cr *CollisionResolver) Resolve(input, requestedOutput string) string {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	in := pathKey(input)
	if cr.free(pathKey(requestedOutput), in) {
		cr.owners[pathKey(requestedOutput)] = in
		return requestedOutput
	}

	dir := filepath.Dir(requestedOutput)
	base := filepath.Base(requestedOutput)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	// Counting from 1 every time lets an input get its earlier dup back.
	for n := 1; ; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s - dup%d%s", stem, n, ext))
		if key := pathKey(candidate); cr.free(key, in) {
			cr.owners[key] = in
			return candidate
		}
	}
}

// free reports whether output key may be written for input key. Callers
// hold cr.mu.
func (cr *CollisionResolver) free(key, in string) bool {
	if key == in {
		return false
	}
	owner, exists := cr.owners[key]
	return !exists || owner == in
}

// pathKey normalizes a path for comparison. Paths that cannot be made
// absolute are compared in cleaned form.
func pathKey(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
