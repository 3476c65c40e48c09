package pipeline

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/backmassage/convert2qt/internal/naming"
)

// Supported media file extensions (lowercase, with leading dot).
var mediaExtensions = map[string]bool{
	".mkv":  true,
	".mp4":  true,
	".avi":  true,
	".m4v":  true,
	".mov":  true,
	".wmv":  true,
	".flv":  true,
	".webm": true,
	".ts":   true,
	".m2ts": true,
	".mpg":  true,
	".mpeg": true,
	".vob":  true,
	".ogv":  true,
	".flac": true,
	".mp3":  true,
	".aiff": true,
	".m4a":  true,
	".wav":  true,
	".ogg":  true,
	".opus": true,
	".wma":  true,
}

// Discover walks inputDir, collects files with media extensions, prunes
// directories named "extras" (case-insensitive), skips leftover partial
// outputs, and returns the paths sorted lexicographically.
func Discover(inputDir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != inputDir && strings.EqualFold(d.Name(), "extras") {
				return filepath.SkipDir
			}
			return nil
		}
		if naming.IsPartial(path) {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if mediaExtensions[ext] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ExpandInputs turns command-line arguments into the list of files to
// process. Directories are replaced by their discovered media files; plain
// files are kept in argument order regardless of extension. Arguments that
// cannot be read are returned as errors and left out of the list.
func ExpandInputs(args []string) ([]string, []error) {
	var (
		files []string
		errs  []error
	)
	for _, arg := range args {
		fi, err := os.Stat(arg)
		if err != nil {
			errs = append(errs, fmt.Errorf("input %s: %w", arg, err))
			continue
		}
		if !fi.IsDir() {
			files = append(files, arg)
			continue
		}
		found, err := Discover(arg)
		if err != nil {
			errs = append(errs, fmt.Errorf("scan %s: %w", arg, err))
			continue
		}
		files = append(files, found...)
	}
	return files, errs
}
