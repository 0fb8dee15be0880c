package git

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// RepositoryMetadata describes the git state of the scanned project tree.
// Fields stay empty when the information is not available.
type RepositoryMetadata struct {
	BranchName     string
	CommitHash     string
	RemoteURL      string
	RepoRootFolder string
	Subfolder      string
}

// Collect gathers repository metadata for the given source folder. The folder
// may be anywhere inside a working tree; the walk looks upward for the
// repository root.
func Collect(sourceFolder string) (*RepositoryMetadata, error) {
	if sourceFolder == "" {
		return &RepositoryMetadata{}, fmt.Errorf("source folder is not set")
	}

	if absSource, err := filepath.Abs(sourceFolder); err == nil {
		sourceFolder = absSource
	}

	md := &RepositoryMetadata{
		RepoRootFolder: filepath.Clean(sourceFolder),
	}

	repoRoot, err := findRepositoryRoot(sourceFolder)
	if err != nil {
		return md, err
	}
	md.RepoRootFolder = filepath.Clean(repoRoot)

	repo, err := git.PlainOpen(repoRoot)
	if err != nil {
		return md, fmt.Errorf("failed to open repository: %w", err)
	}

	if rel, err := filepath.Rel(repoRoot, sourceFolder); err == nil && rel != "." {
		md.Subfolder = filepath.ToSlash(rel)
	}

	if head, err := repo.Head(); err == nil {
		if head.Name().IsBranch() {
			md.BranchName = head.Name().Short()
		}
		md.CommitHash = head.Hash().String()
	}

	if remote, err := repo.Remote("origin"); err == nil {
		if cfg := remote.Config(); cfg != nil && len(cfg.URLs) > 0 {
			md.RemoteURL = strings.TrimSuffix(cfg.URLs[0], ".git")
		}
	}

	return md, nil
}

// findRepositoryRoot walks upward from the source folder until a git
// repository opens or the filesystem root is reached.
func findRepositoryRoot(sourceFolder string) (string, error) {
	for {
		if _, err := git.PlainOpen(sourceFolder); err == nil {
			return sourceFolder, nil
		}

		parent := filepath.Dir(sourceFolder)
		if parent == sourceFolder {
			return "", fmt.Errorf("source folder is not a git repository")
		}
		sourceFolder = parent
	}
}
