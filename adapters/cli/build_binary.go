package cli

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// BuildBinary builds the main package in the working directory and returns
// the path to the binary along with a func that removes it.
func BuildBinary() (binPath string, cleanup func(), err error) {
	binName := "zipstore-test"

	if runtime.GOOS == "windows" {
		binName += ".exe"
	}

	build := exec.Command("go", "build", "-o", binName)

	if err := build.Run(); err != nil {
		return "", nil, err
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", nil, err
	}

	binPath = filepath.Join(dir, binName)

	cleanup = func() {
		os.Remove(binPath)
	}

	return
}
