package sumfile

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Entry is a single line of a checksum manifest.
type Entry struct {
	Digest string
	Path   string
}

// Read parses a GNU coreutils style checksum manifest: one entry per line,
// "<hex>  <path>" with an optional "*" binary marker before the path.
// Blank lines and lines starting with "#" are skipped.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest %s: %w", path, err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		hexPart, pathPart, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		pathPart = strings.TrimSpace(pathPart)
		pathPart = strings.TrimPrefix(pathPart, "*")
		if hexPart == "" || pathPart == "" {
			continue
		}

		entries = append(entries, Entry{Digest: hexPart, Path: pathPart})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	return entries, nil
}

// Lookup returns the digest the manifest records for target. The target is
// matched against entry paths exactly first, then by base name, so a
// manifest written from another directory still resolves.
func Lookup(manifestPath, target string) (string, error) {
	entries, err := Read(manifestPath)
	if err != nil {
		return "", err
	}

	for _, e := range entries {
		if e.Path == target {
			return e.Digest, nil
		}
	}

	base := filepath.Base(target)
	for _, e := range entries {
		if filepath.Base(e.Path) == base {
			return e.Digest, nil
		}
	}

	return "", fmt.Errorf("no entry for %s in %s", target, manifestPath)
}

// FormatEntry renders a manifest-compatible line for a digest and path.
func FormatEntry(digest, path string) string {
	return digest + "  " + path
}
