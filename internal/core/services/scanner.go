package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/histograph/importer/internal/core/domain"
	"github.com/histograph/importer/internal/logger"
)

// Scanner discovers dataset directories under the configured import roots.
type Scanner struct {
	dirs []string
}

// NewScanner creates a scanner over the given import roots.
func NewScanner(dirs []string) *Scanner {
	return &Scanner{dirs: dirs}
}

// Scan lists the immediate subdirectories of every import root, in root
// order, dropping ignored names and, when filter is non-empty, names not
// in the filter. A dataset name present in two roots is emitted twice;
// duplicates are not reconciled. A root that cannot be listed fails the
// whole scan.
func (s *Scanner) Scan(filter []string) ([]domain.Dataset, error) {
	want := make(map[string]bool, len(filter))
	for _, id := range filter {
		want[id] = true
	}

	var datasets []domain.Dataset
	for _, root := range s.dirs {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, fmt.Errorf("list import directory %s: %w", root, err)
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			name := entry.Name()
			if domain.IgnoredDirs[name] {
				continue
			}
			if len(want) > 0 && !want[name] {
				continue
			}
			datasets = append(datasets, domain.Dataset{
				ID:  name,
				Dir: filepath.Join(root, name),
			})
		}
	}

	logger.Debug("scan: %d datasets under %d import directories", len(datasets), len(s.dirs))
	return datasets, nil
}
