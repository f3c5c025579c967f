package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// OutputDirPrefix is the name stem of every per-run export directory.
const OutputDirPrefix = "output_"

// NextOutputIndex returns the smallest positive integer N such that
// <root>/output_NN does not exist yet. A missing root yields 1.
func NextOutputIndex(root string) (int, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return 1, nil
		}
		return 0, fmt.Errorf("scan output root: %w", err)
	}

	used := make(map[int]bool, len(entries))
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, OutputDirPrefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(name, OutputDirPrefix))
		if err != nil || n <= 0 || name != OutputDirName(n) {
			continue
		}
		used[n] = true
	}

	idx := 1
	for used[idx] {
		idx++
	}
	return idx, nil
}

// OutputDirName formats an index as output_NN (at least two digits).
func OutputDirName(idx int) string {
	return fmt.Sprintf("%s%02d", OutputDirPrefix, idx)
}

// CreateOutputDir allocates and creates the next free output_NN directory
// under root, creating root itself when needed. It returns the index and
// the directory path.
func CreateOutputDir(root string) (int, string, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return 0, "", fmt.Errorf("create output root: %w", err)
	}
	for {
		idx, err := NextOutputIndex(root)
		if err != nil {
			return 0, "", err
		}
		dir := filepath.Join(root, OutputDirName(idx))
		// Mkdir (not MkdirAll) fails if another run grabbed the same index.
		err = os.Mkdir(dir, 0755)
		if err == nil {
			return idx, dir, nil
		}
		if !os.IsExist(err) {
			return 0, "", fmt.Errorf("create output dir: %w", err)
		}
	}
}
