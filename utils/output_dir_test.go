package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNextOutputIndexMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "output")

	idx, dir, err := CreateOutputDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if idx != 1 || filepath.Base(dir) != "output_01" {
		t.Errorf("first run got (%d, %s), want (1, output_01)", idx, dir)
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		t.Errorf("output dir not created: %v", err)
	}
}

func TestNextOutputIndexAfterExisting(t *testing.T) {
	root := t.TempDir()
	for i := 1; i <= 5; i++ {
		if err := os.Mkdir(filepath.Join(root, OutputDirName(i)), 0755); err != nil {
			t.Fatal(err)
		}
	}

	idx, dir, err := CreateOutputDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if idx != 6 || filepath.Base(dir) != "output_06" {
		t.Errorf("got (%d, %s), want (6, output_06)", idx, dir)
	}

	// The next call must not reuse output_06.
	idx, _, err = CreateOutputDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if idx != 7 {
		t.Errorf("second call got %d, want 7", idx)
	}
}

func TestNextOutputIndexFillsGapsAndIgnoresNoise(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"output_01", "output_03", "output_xx", "notes.txt", "output_00"} {
		if err := os.Mkdir(filepath.Join(root, name), 0755); err != nil {
			t.Fatal(err)
		}
	}

	idx, err := NextOutputIndex(root)
	if err != nil {
		t.Fatal(err)
	}
	if idx != 2 {
		t.Errorf("NextOutputIndex = %d, want 2", idx)
	}
}

func TestNextOutputIndexOnlyCountsPaddedNames(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"output_1", "output_002", "output_+3"} {
		if err := os.Mkdir(filepath.Join(root, name), 0755); err != nil {
			t.Fatal(err)
		}
	}

	idx, err := NextOutputIndex(root)
	if err != nil {
		t.Fatal(err)
	}
	if idx != 1 {
		t.Errorf("NextOutputIndex = %d, want 1", idx)
	}
}

func TestOutputDirName(t *testing.T) {
	for idx, want := range map[int]string{1: "output_01", 9: "output_09", 42: "output_42", 123: "output_123"} {
		if got := OutputDirName(idx); got != want {
			t.Errorf("OutputDirName(%d) = %q, want %q", idx, got, want)
		}
	}
}
