package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves paths that include a tilde (~) to the user's home directory.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(homeDir, path[2:]), nil
	}
	return path, nil
}

// CopyFile copies a file from srcFile to destFile, preserving the file mode
// and modification time of the source.
func CopyFile(srcFile, destFile string) error {
	srcInfo, err := os.Stat(srcFile)
	if err != nil {
		return fmt.Errorf("failed to stat source file %q: %w", srcFile, err)
	}

	destDir := filepath.Dir(destFile)
	if err := CreateFolderIfNotExists(destDir); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", destDir, err)
	}

	in, err := os.Open(srcFile)
	if err != nil {
		return fmt.Errorf("failed to open source file %q: %w", srcFile, err)
	}
	defer in.Close()

	out, err := os.OpenFile(destFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode())
	if err != nil {
		return fmt.Errorf("failed to create destination file %q: %w", destFile, err)
	}

	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy data from %q to %q: %w", srcFile, destFile, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to flush destination file %q: %w", destFile, err)
	}

	if err := os.Chtimes(destFile, srcInfo.ModTime(), srcInfo.ModTime()); err != nil {
		return fmt.Errorf("failed to preserve times on %q: %w", destFile, err)
	}
	return nil
}

// MoveFile relocates a file, falling back to copy-and-remove when a plain
// rename is not possible (e.g. across filesystems).
func MoveFile(srcFile, destFile string) error {
	if err := os.Rename(srcFile, destFile); err == nil {
		return nil
	}
	if err := CopyFile(srcFile, destFile); err != nil {
		return fmt.Errorf("failed to move %q to %q: %w", srcFile, destFile, err)
	}
	if err := os.Remove(srcFile); err != nil {
		return fmt.Errorf("failed to remove source %q after copy: %w", srcFile, err)
	}
	return nil
}

// CreateFolderIfNotExists checks if a folder exists, and if not, creates it.
func CreateFolderIfNotExists(folder string) error {
	if _, err := os.Stat(folder); os.IsNotExist(err) {
		if err := os.MkdirAll(folder, os.ModePerm); err != nil {
			return fmt.Errorf("unable to create folder %q: %w", folder, err)
		}
	} else if err != nil {
		return fmt.Errorf("unable to check folder %q: %w", folder, err)
	}
	return nil
}
