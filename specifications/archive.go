package specifications

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/klauspost/compress/zip"
	"github.com/zipstore/internal/testutils"
)

type Archiver interface {
	ArchivePath() string
	Paths() []string
	Archive()
}

// Archive checks that every regular file under the driver's paths ends up
// in the archive, stored, with identical content.
func Archive(t *testing.T, driver Archiver) {
	driver.Archive()
	defer os.RemoveAll(driver.ArchivePath())

	assertValidArchive(t, driver.ArchivePath(), driver.Paths())
}

func assertValidArchive(t testing.TB, archivePath string, paths []string) {
	t.Helper()

	archiveReader := testutils.OpenArchive(t, archivePath)
	defer archiveReader.Close()

	want := 0
	for _, path := range paths {
		parent := filepath.Dir(path)

		err := filepath.WalkDir(path, func(name string, d fs.DirEntry, err error) error {
			if err != nil || !d.Type().IsRegular() {
				return err
			}
			want++

			rel, err := filepath.Rel(parent, name)
			if err != nil {
				return err
			}

			file, found := testutils.Find(archiveReader.File, func(f *zip.File) bool {
				return f.Name == filepath.ToSlash(rel)
			})
			if !found {
				t.Errorf("expected file %s to be in archive but wasn't", rel)
				return nil
			}

			content, err := os.ReadFile(name)
			if err != nil {
				return err
			}
			assert.Equal(t, zip.Store, file.Method)
			assert.Equal(t, content, testutils.ReadFile(t, file), "content of %s", rel)

			return nil
		})
		assert.NoError(t, err)
	}

	assert.Equal(t, want, len(archiveReader.File))
}
