// Package atomicfile writes files without leaving torn content behind.
package atomicfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrExists is returned by CreateNew when the destination already exists.
var ErrExists = fs.ErrExist

// WriteFile writes data to path by writing a temp file in the same directory
// and renaming it into place.
//
// If perm is 0 the existing file's mode is kept, falling back to 0644.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	if perm == 0 {
		perm = 0o644
		if st, err := os.Stat(path); err == nil {
			perm = st.Mode().Perm()
		}
	}

	tmpPath, err := writeTemp(path, data, perm)
	if err != nil {
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		// Windows refuses to rename over an existing file.
		_ = os.Remove(path)
		if err2 := os.Rename(tmpPath, path); err2 != nil {
			_ = os.Remove(tmpPath)
			return fmt.Errorf("rename temp file: %w", err)
		}
	}
	return nil
}

// CreateNew writes data to path only if path does not exist yet. It never
// replaces an existing file; in that case it returns an error wrapping ErrExists.
func CreateNew(path string, data []byte, perm os.FileMode) error {
	if perm == 0 {
		perm = 0o644
	}

	tmpPath, err := writeTemp(path, data, perm)
	if err != nil {
		return err
	}
	defer os.Remove(tmpPath)

	// Link fails if path exists, so a concurrent creator is never clobbered.
	if err := os.Link(tmpPath, path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%s: %w", path, ErrExists)
		}
		// Filesystems without hard links: fall back to an exclusive create.
		f, ferr := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
		if ferr != nil {
			if errors.Is(ferr, fs.ErrExist) {
				return fmt.Errorf("%s: %w", path, ErrExists)
			}
			return fmt.Errorf("create %s: %w", path, ferr)
		}
		if _, werr := f.Write(data); werr != nil {
			_ = f.Close()
			return fmt.Errorf("write %s: %w", path, werr)
		}
		return f.Close()
	}
	return nil
}

func writeTemp(path string, data []byte, perm os.FileMode) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	fail := func(step string, err error) (string, error) {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("%s temp file: %w", step, err)
	}

	// Best-effort; some filesystems ignore chmod.
	_ = tmp.Chmod(perm)

	if _, err := tmp.Write(data); err != nil {
		return fail("write", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("sync", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return tmpPath, nil
}
