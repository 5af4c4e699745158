package cli

import (
	"log"
	"os/exec"
)

// Driver runs a built zipstore binary for the acceptance specifications.
type Driver struct {
	binPath     string
	archivePath string
	paths       []string
}

func NewDriver(binPath, archivePath string, paths ...string) *Driver {
	return &Driver{binPath, archivePath, paths}
}

func (d *Driver) Paths() []string {
	return d.paths
}

func (d *Driver) ArchivePath() string {
	return d.archivePath
}

func (d *Driver) Archive() {
	args := append([]string{"--log-level", "warn", d.ArchivePath()}, d.Paths()...)
	zipstore := exec.Command(d.binPath, args...)

	if out, err := zipstore.CombinedOutput(); err != nil {
		log.Fatalf("ERROR: could not run zipstore binary: %v: %s", err, out)
	}
}
