package zipstore_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/klauspost/compress/zip"
	"github.com/zipstore"
	"github.com/zipstore/internal/testutils"
)

var helloFixtures = map[string]string{
	"hello/hello.txt":         "hello, world!",
	"hello/hello.md":          "# hello",
	"hello/nested/hello.md":   "## nested hello",
	"hello/nested/empty.txt":  "",
	"hello/nested/deep/a.txt": "a",
}

func TestStoreCLI(t *testing.T) {
	t.Run("archives a directory and a file", func(t *testing.T) {
		root := t.TempDir()
		testutils.WriteFixtures(t, root, helloFixtures)
		testutils.WriteFixtures(t, root, map[string]string{"top.txt": "top"})
		archivePath := filepath.Join(root, "archive.zip")

		cli := zipstore.StoreCLI{
			ArchivePath: archivePath,
			Files:       []string{filepath.Join(root, "hello"), filepath.Join(root, "top.txt")},
			Concurrency: runtime.GOMAXPROCS(0),
		}
		archive, err := cli.Archive(context.Background())
		assert.NoError(t, err)

		archiveReader := testutils.OpenArchive(t, archivePath)
		defer archiveReader.Close()

		assert.Equal(t, len(helloFixtures)+1, len(archiveReader.File))
		assert.Equal(t, int64(archive.Len()), fileSize(t, archivePath))

		for name, content := range helloFixtures {
			file, found := testutils.Find(archiveReader.File, func(f *zip.File) bool {
				return f.Name == name
			})
			assert.True(t, found, "expected %s in archive", name)
			assert.Equal(t, content, string(testutils.ReadFile(t, file)))
		}
		testutils.AssertArchiveContainsFile(t, archiveReader.File, "top.txt")
	})

	t.Run("names directory entries in walk order", func(t *testing.T) {
		root := t.TempDir()
		testutils.WriteFixtures(t, root, helloFixtures)

		entries, err := zipstore.CollectFiles([]string{filepath.Join(root, "hello")})
		assert.NoError(t, err)

		var names []string
		for _, entry := range entries {
			names = append(names, entry.Name)
		}
		assert.Equal(t, []string{
			"hello/hello.md",
			"hello/hello.txt",
			"hello/nested/deep/a.txt",
			"hello/nested/empty.txt",
			"hello/nested/hello.md",
		}, names)
	})

	t.Run("retains the last modified date of an archived file", func(t *testing.T) {
		root := t.TempDir()
		testutils.WriteFixtures(t, root, map[string]string{"hello.txt": "hello, world!"})
		path := filepath.Join(root, "hello.txt")
		modified := time.Date(2021, time.July, 4, 12, 30, 44, 0, time.Local)
		assert.NoError(t, os.Chtimes(path, modified, modified))

		var out bytes.Buffer
		cli := zipstore.StoreCLI{ArchivePath: zipstore.StdoutPath, Files: []string{path}, Stdout: &out}
		_, err := cli.Archive(context.Background())
		assert.NoError(t, err)

		archiveReader := testutils.GetArchiveReader(t, out.Bytes())
		assert.Equal(t, 1, len(archiveReader.File))

		got := archiveReader.File[0].Modified
		assert.Equal(t, 2021, got.Year())
		assert.Equal(t, time.July, got.Month())
		assert.Equal(t, 4, got.Day())
		assert.Equal(t, 12, got.Hour())
		assert.Equal(t, 30, got.Minute())
		assert.Equal(t, 44, got.Second())
	})

	t.Run("does not create the archive when a file is missing", func(t *testing.T) {
		root := t.TempDir()
		archivePath := filepath.Join(root, "archive.zip")

		cli := zipstore.StoreCLI{ArchivePath: archivePath, Files: []string{filepath.Join(root, "missing.txt")}}
		_, err := cli.Archive(context.Background())
		assert.Error(t, err)

		_, err = os.Stat(archivePath)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("does not create the archive when a timestamp is out of range", func(t *testing.T) {
		root := t.TempDir()
		testutils.WriteFixtures(t, root, map[string]string{"old.txt": "old"})
		path := filepath.Join(root, "old.txt")
		old := time.Date(1975, time.January, 1, 0, 0, 0, 0, time.Local)
		assert.NoError(t, os.Chtimes(path, old, old))
		archivePath := filepath.Join(root, "archive.zip")

		cli := zipstore.StoreCLI{ArchivePath: archivePath, Files: []string{path}}
		_, err := cli.Archive(context.Background())
		assert.IsError(t, err, zipstore.ErrInvalidTimestamp)

		_, err = os.Stat(archivePath)
		assert.True(t, os.IsNotExist(err))

		cli.ClampTimestamps = true
		_, err = cli.Archive(context.Background())
		assert.NoError(t, err)
	})
}

func fileSize(t testing.TB, name string) int64 {
	t.Helper()

	info, err := os.Stat(name)
	assert.NoError(t, err)

	return info.Size()
}

// BenchmarkStore benchmarks building an archive of 64 files of 64 KiB each.
func BenchmarkStore(b *testing.B) {
	files := make([]zipstore.FileEntry, 64)
	for i := range files {
		files[i] = zipstore.FileEntry{Name: "file", Date: time.Now(), Data: make([]byte, 64<<10)}
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		zipstore.Store(files, zipstore.Concurrency(runtime.GOMAXPROCS(0)))
	}
}
