package testsupport

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ebmlMagic opens every Matroska file.
var ebmlMagic = []byte{0x1A, 0x45, 0xDF, 0xA3}

// WriteContainer creates dir/name with an EBML header padded to size bytes
// and returns its path. Sizes smaller than the header still get the header.
func WriteContainer(t testing.TB, dir, name string, size int64) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	payload := append([]byte{}, ebmlMagic...)
	if pad := size - int64(len(payload)); pad > 0 {
		payload = append(payload, bytes.Repeat([]byte{0}, int(pad))...)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// SRT renders one SubRip cue per line of text, each lasting a second and
// starting a second after the previous one.
func SRT(lines ...string) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d\n00:00:%02d,000 --> 00:00:%02d,500\n%s\n", i+1, i+1, i+1, line)
	}
	return b.String()
}

// WriteSubtitle writes an SRT holding lines to path.
func WriteSubtitle(t testing.TB, path string, lines ...string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(SRT(lines...)), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
