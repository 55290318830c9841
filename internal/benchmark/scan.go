package benchmark

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExtension selects measurement files during discovery.
const DefaultExtension = ".dat"

// ErrorPolicy decides what Collect does with a file that failed to load.
type ErrorPolicy string

const (
	// PolicyAbort stops at the first failed file.
	PolicyAbort ErrorPolicy = "abort"
	// PolicySkip logs failed files and keeps the rest.
	PolicySkip ErrorPolicy = "skip"
)

// ParseErrorPolicy validates a policy name.
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch p := ErrorPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyAbort, PolicySkip:
		return p, nil
	case "":
		return PolicyAbort, nil
	default:
		return "", fmt.Errorf("unknown error policy %q (want %q or %q)", s, PolicyAbort, PolicySkip)
	}
}

// Scan loads every file in dir whose name ends in ext, in lexical
// order, one file at a time. Hidden files are ignored. A missing dir,
// or a path that is not a directory, yields no results and no error.
// Under PolicyAbort scanning stops after the first file that fails to
// load, and that failure is the last result.
func Scan(dir, ext string, policy ErrorPolicy) ([]FileResult, error) {
	if ext == "" {
		ext = DefaultExtension
	}

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("Data directory does not exist", "dir", dir)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		slog.Debug("Data path is not a directory", "dir", dir)
		return nil, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	results := make([]FileResult, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		m, err := LoadFile(path)
		if err != nil {
			slog.Debug("Failed to load measurement file", "path", path, "kind", ErrorKind(err), "error", err)
		} else {
			slog.Debug("Loaded measurement file", "path", path, "series", m.Key.String(), "observations", len(m.Series))
		}
		results = append(results, FileResult{Path: path, Measurement: m, Err: err})
		if err != nil && policy != PolicySkip {
			break
		}
	}
	return results, nil
}

// Collect builds a Dataset from per-file outcomes in order. Later files
// sharing a key overwrite earlier ones, and the last accepted file sets
// the shared cutoff.
func Collect(results []FileResult, policy ErrorPolicy) (*Dataset, error) {
	ds := NewDataset()
	for _, r := range results {
		if r.Err != nil {
			if policy == PolicySkip {
				slog.Warn("Skipping measurement file", "path", r.Path, "kind", ErrorKind(r.Err), "error", r.Err)
				continue
			}
			return nil, r.Err
		}
		ds.Add(r.Measurement)
	}
	return ds, nil
}

// Load scans dir and collects the results under policy.
func Load(dir, ext string, policy ErrorPolicy) (*Dataset, error) {
	results, err := Scan(dir, ext, policy)
	if err != nil {
		return nil, err
	}
	return Collect(results, policy)
}
