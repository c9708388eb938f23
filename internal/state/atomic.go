package state

import (
	"fmt"
	"os"
	"path/filepath"
)

// AtomicWrite writes data to path through a temp file in the same directory
// followed by a rename, so readers never see a partial config file.
//
// Steps:
//  1. Write data to a temp file next to path
//  2. Sync and close it, then apply perm
//  3. Rename it over path (atomic on POSIX when on the same filesystem)
//
// On failure the previous file at path, if any, is left untouched.
func AtomicWrite(path string, data []byte, perm os.FileMode) error {
	// Config dir may not exist yet on first "config init"
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return fmt.Errorf("failed to ensure parent directory: %w", err)
	}

	// Same directory as the target keeps the rename on one filesystem
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Remove the temp file unless the rename went through
	committed := false
	defer func() {
		if !committed {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	// Write and flush to disk
	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	// Close before rename
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// CreateTemp uses 0600; apply the requested mode
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions on temp file: %w", err)
	}

	// Swap it in
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to target: %w", err)
	}

	committed = true
	return nil
}

// AtomicWriteWithBackup moves an existing file at path to path+".bak"
// before writing. "config init --force" relies on it so a hand-edited
// config is never lost.
func AtomicWriteWithBackup(path string, data []byte, perm os.FileMode) error {
	// Keep the previous version, if there is one
	if _, err := os.Stat(path); err == nil {
		if err := os.Rename(path, path+".bak"); err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
	}

	return AtomicWrite(path, data, perm)
}
