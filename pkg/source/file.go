package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// FileReader reads log lines from local files. Patterns may be literal paths
// or globs; rotated logs compressed with gzip (*.gz) are read transparently,
// and docker json-file wrapped lines are unwrapped.
type FileReader struct {
	patterns []string
}

// NewFileReader creates a reader over the given paths or glob patterns.
func NewFileReader(patterns ...string) *FileReader {
	return &FileReader{patterns: patterns}
}

// ReadLines reads every matched file in sorted path order and returns the
// trailing limit lines of the concatenation.
func (r *FileReader) ReadLines(ctx context.Context, limit int) ([]string, error) {
	files, err := ExpandGlobs(r.patterns)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no log files configured")
	}

	var lines []string
	for _, path := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		fileLines, err := readFileLines(path)
		if err != nil {
			return nil, err
		}
		lines = append(lines, fileLines...)
	}

	return tail(lines, limit), nil
}

// Close is a no-op; FileReader holds no open handles between calls.
func (r *FileReader) Close() error { return nil }

func readFileLines(path string) ([]string, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("reading gzip log %s: %w", path, err)
		}
		defer gz.Close()
		reader = gz
	}

	var lines []string
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size
	for scanner.Scan() {
		lines = append(lines, unwrapJSONLine(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return lines, nil
}

// ExpandGlobs expands file paths and glob patterns into a deduplicated,
// sorted list. Patterns that match nothing are kept as literal paths so the
// caller surfaces a useful open error later.
func ExpandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}

		if len(matches) == 0 {
			matches = []string{pattern}
		}
		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				result = append(result, match)
			}
		}
	}

	sort.Strings(result)
	return result, nil
}
