package testutils

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/klauspost/compress/zip"
)

// GetArchiveReader opens an in-memory archive with a standard ZIP reader.
func GetArchiveReader(t testing.TB, data []byte) *zip.Reader {
	t.Helper()

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	assert.NoError(t, err)

	return reader
}

// OpenArchive opens the archive stored at name.
func OpenArchive(t testing.TB, name string) *zip.ReadCloser {
	t.Helper()

	reader, err := zip.OpenReader(name)
	assert.NoError(t, err, fmt.Sprintf("could not open archive %s", name))

	return reader
}

// ReadFile returns the contents of an archived file.
func ReadFile(t testing.TB, file *zip.File) []byte {
	t.Helper()

	rc, err := file.Open()
	assert.NoError(t, err, fmt.Sprintf("could not open archived file %s", file.Name))
	defer rc.Close()

	data, err := io.ReadAll(rc)
	assert.NoError(t, err, fmt.Sprintf("could not read archived file %s", file.Name))

	return data
}

func AssertArchiveContainsFile(t testing.TB, files []*zip.File, name string) {
	t.Helper()

	_, found := Find(files, func(f *zip.File) bool {
		return f.Name == name
	})

	if !found {
		t.Errorf("expected file %s to be in archive but wasn't", name)
	}
}

func Find[T any](elements []T, cb func(element T) bool) (T, bool) {
	for _, e := range elements {
		if cb(e) {
			return e, true
		}
	}

	return *new(T), false
}

// WriteFixtures creates every file in files, keyed by slash separated path
// relative to root.
func WriteFixtures(t testing.TB, root string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		assert.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		assert.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// GetOutput runs cmd and returns its combined stdout and stderr.
func GetOutput(t testing.TB, cmd *exec.Cmd) string {
	t.Helper()

	out, _ := cmd.CombinedOutput()
	return string(out)
}
