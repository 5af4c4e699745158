package zipstore

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// CollectFiles reads the regular files named by paths into entries.
// Directories are walked in lexical order and their files are named relative
// to the directory's parent, so "testdata/hello" yields "hello/...".
// Other file types are skipped.
func CollectFiles(paths []string) ([]FileEntry, error) {
	var entries []FileEntry

	for _, path := range paths {
		info, err := os.Lstat(path)
		if err != nil {
			return nil, errors.Errorf("ERROR: could not get stat of %s: %v", path, err)
		}

		if info.IsDir() {
			dirEntries, err := collectDir(path)
			if err != nil {
				return nil, errors.Wrapf(err, "ERROR: could not collect directory %s", path)
			}
			entries = append(entries, dirEntries...)
			continue
		}

		if !info.Mode().IsRegular() {
			continue
		}

		entry, err := newFileEntry(path, info, "")
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func collectDir(root string) ([]FileEntry, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Errorf("ERROR: could not determine absolute path of %s", root)
	}

	var entries []FileEntry
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return errors.Errorf("ERROR: could not get stat of %s: %v", path, err)
		}

		entry, err := newFileEntry(path, info, absRoot)
		if err != nil {
			return err
		}
		entries = append(entries, entry)

		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "ERROR: could not walk directory %s", absRoot)
	}

	return entries, nil
}

// newFileEntry reads path into an entry stamped with its modification time.
// When relativeTo is set the entry is named relative to relativeTo's parent.
func newFileEntry(path string, info fs.FileInfo, relativeTo string) (FileEntry, error) {
	name := info.Name()
	if relativeTo != "" {
		rel, err := filepath.Rel(relativeTo, path)
		if err != nil {
			return FileEntry{}, errors.Errorf("ERROR: could not find relative path of %s to root %s", path, relativeTo)
		}
		name = filepath.Join(filepath.Base(relativeTo), rel)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return FileEntry{}, errors.Errorf("ERROR: could not read file %s: %v", path, err)
	}

	return FileEntry{Name: filepath.ToSlash(name), Date: info.ModTime(), Data: data}, nil
}
