package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/minios-linux/mofmt/mofile"
)

func TestInputAndOutputPaths(t *testing.T) {
	tests := []struct {
		arg     string
		wantIn  string
		wantOut string
	}{
		{arg: "de.po", wantIn: "de.po", wantOut: "de.mo"},
		{arg: "de", wantIn: "de.po", wantOut: "de.mo"},
		{arg: filepath.Join("po", "pt-BR.po"), wantIn: filepath.Join("po", "pt-BR.po"), wantOut: filepath.Join("po", "pt-BR.mo")},
	}

	for _, tc := range tests {
		in := inputPath(tc.arg)
		if in != tc.wantIn {
			t.Fatalf("inputPath(%q) = %q, want %q", tc.arg, in, tc.wantIn)
		}
		if out := defaultOutputPath(in); out != tc.wantOut {
			t.Fatalf("defaultOutputPath(%q) = %q, want %q", in, out, tc.wantOut)
		}
	}
}

func TestCompileFile(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "de.po")
	outPath := filepath.Join(dir, "de.mo")

	src := `msgid ""
msgstr "Content-Type: text/plain; charset=UTF-8\n"

msgid "hello"
msgstr "hallo"

#, fuzzy
msgid "draft"
msgstr "entwurf"
`
	if err := os.WriteFile(inPath, []byte(src), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	stats, err := compileFile(inPath, outPath, false)
	if err != nil {
		t.Fatalf("compileFile error: %v", err)
	}
	if stats.entries != 2 || stats.fuzzySkipped != 1 {
		t.Fatalf("stats = %+v, want 2 entries, 1 fuzzy skipped", stats)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	f, err := mofile.Decode(data)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(f.Entries) != 2 {
		t.Fatalf("entries = %d, want 2 (header + hello)", len(f.Entries))
	}

	// With --use-fuzzy the draft entry is included.
	stats, err = compileFile(inPath, outPath, true)
	if err != nil {
		t.Fatalf("compileFile error: %v", err)
	}
	if stats.entries != 3 || stats.fuzzySkipped != 0 {
		t.Fatalf("stats = %+v, want 3 entries, 0 skipped", stats)
	}
}

func TestCompileFileRejectsBadCatalog(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "bad.po")
	outPath := filepath.Join(dir, "bad.mo")

	if err := os.WriteFile(inPath, []byte("msgstr \"orphan\"\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := compileFile(inPath, outPath, false); err == nil {
		t.Fatal("compileFile should fail on bad catalog")
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Fatal("no partial output must be written on failure")
	}
}
