package io

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// CreateAll creates (or truncates) the file name with mode fmod,
// making missing parent directories with mode dmod.
//
// Existing directories keep their modes.
func CreateAll(name string, fmod os.FileMode, dmod os.FileMode) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(name), dmod); err != nil {
		return nil, err
	}
	return os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, fmod)
}

// DirCopy copies regular files under src into dst, keeping the tree and file modes.
//
// Files in dst are overwritten. Symlinks and other special files are skipped.
func DirCopy(src string, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return copyFile(path, filepath.Join(dst, rel), info.Mode().Perm())
	})
}

func copyFile(src string, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := CreateAll(dst, mode, 0755)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
