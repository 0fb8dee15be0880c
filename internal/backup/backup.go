package backup

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/tinybird-labs/tb-migrate/pkg/shared/files"
)

// Suffix is appended to the original filename to form the backup path.
const Suffix = ".backup"

// Service creates pre-mutation copies of files. Each file is backed up at
// most once per run; later mutations of the same file reuse the first backup
// so the original content stays recoverable.
type Service struct {
	logger hclog.Logger
	done   map[string]string
}

func NewService(logger hclog.Logger) *Service {
	return &Service{
		logger: logger,
		done:   make(map[string]string),
	}
}

// Backup copies the file content and metadata to <name>.<ext>.backup and
// returns the backup path. The source file is left untouched. It must be
// called before the first mutating write to the file.
func (s *Service) Backup(path string) (string, error) {
	if backupPath, ok := s.done[path]; ok {
		return backupPath, nil
	}

	backupPath := path + Suffix
	if err := files.CopyFile(path, backupPath); err != nil {
		return "", fmt.Errorf("failed to back up %q: %w", path, err)
	}

	s.done[path] = backupPath
	s.logger.Info("created backup", "file", path, "backup", backupPath)
	return backupPath, nil
}

// Path returns the backup path of a file if one was created this run.
func (s *Service) Path(path string) (string, bool) {
	backupPath, ok := s.done[path]
	return backupPath, ok
}

// Count returns the number of backups created this run.
func (s *Service) Count() int {
	return len(s.done)
}
