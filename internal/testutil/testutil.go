// Package testutil provides shared fixture helpers for tests that need
// BPE codes, vocabulary, or config files on disk.
//
// Typical usage:
//
//	func TestApply(t *testing.T) {
//	    codes := testutil.WriteCodes(t, "l o", "lo w", "e r")
//	    ...
//	}
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile writes content to name inside a per-test temp dir and
// returns the full path.
func WriteFile(tb testing.TB, name, content string) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		tb.Fatalf("write %s: %v", name, err)
	}
	return path
}

// WriteCodes writes a BPE codes file with one merge rule per line and
// returns its path. Pass a "#version: X.Y" header as the first line to
// select a format version.
func WriteCodes(tb testing.TB, lines ...string) string {
	tb.Helper()
	return WriteFile(tb, "codes.bpe", strings.Join(lines, "\n")+"\n")
}

// WriteVocab writes a vocabulary file with one "token frequency" entry
// per line and returns its path.
func WriteVocab(tb testing.TB, lines ...string) string {
	tb.Helper()
	return WriteFile(tb, "vocab.txt", strings.Join(lines, "\n")+"\n")
}
