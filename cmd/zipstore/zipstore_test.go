package main_test

import (
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/zipstore/adapters/cli"
	"github.com/zipstore/internal/testutils"
	"github.com/zipstore/specifications"
)

func TestZipstore(t *testing.T) {
	binPath, cleanup, err := cli.BuildBinary()
	if err != nil {
		t.Fatal("ERROR: could not build binary", err)
	}
	t.Cleanup(cleanup)

	t.Run("outputs usage when no arguments or flags provided", func(t *testing.T) {
		zipstore := exec.Command(binPath)
		out := testutils.GetOutput(t, zipstore)

		assert.Contains(t, out, "zipstore is a tool for storing files in a ZIP archive built in memory.")
		assert.Contains(t, out, "Usage")
	})

	t.Run("outputs error when only one argument passed", func(t *testing.T) {
		zipstore := exec.Command(binPath, "archive.zip")
		out := testutils.GetOutput(t, zipstore)

		assert.Contains(t, out, "zipstore error: invalid usage")
	})

	t.Run("prints its version", func(t *testing.T) {
		zipstore := exec.Command(binPath, "version")
		out := testutils.GetOutput(t, zipstore)

		assert.Contains(t, out, "zipstore version devel")
	})

	t.Run("archives a directory and a file", func(t *testing.T) {
		if testing.Short() {
			t.Skip()
		}

		root := t.TempDir()
		testutils.WriteFixtures(t, root, map[string]string{
			"hello/hello.txt":       "hello, world!",
			"hello/nested/hello.md": "## nested hello",
			"hello/nested/empty":    "",
			"lorem.txt":             "Lorem ipsum dolor sit amet...",
		})

		driver := cli.NewDriver(binPath, filepath.Join(root, "archive.zip"),
			filepath.Join(root, "hello"), filepath.Join(root, "lorem.txt"))

		specifications.Archive(t, driver)
	})
}
