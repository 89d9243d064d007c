package pcap

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var captureExts = map[string]bool{".pcap": true, ".pcapng": true, ".cap": true}

// CollectCaptures returns path itself when it is a file, or the sorted
// capture files under it when it is a directory.
func CollectCaptures(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat capture path: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var captures []string
	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if captureExts[strings.ToLower(filepath.Ext(p))] {
			captures = append(captures, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk captures: %w", err)
	}
	sort.Strings(captures)
	return captures, nil
}
