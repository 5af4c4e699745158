package zipstore

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
)

// StdoutPath makes StoreCLI write the archive to standard output.
const StdoutPath = "-"

type StoreCLI struct {
	ArchivePath     string
	Files           []string
	Concurrency     int
	ClampTimestamps bool
	UTF8Names       bool
	Stdout          io.Writer
}

// Archive collects c.Files, builds the archive in memory and writes it to
// c.ArchivePath. Nothing is written if building fails.
func (c *StoreCLI) Archive(ctx context.Context) (*Archive, error) {
	entries, err := CollectFiles(c.Files)
	if err != nil {
		return nil, errors.Wrap(err, "ERROR: could not collect files")
	}

	archive, err := StoreContext(ctx, entries, c.options()...)
	if err != nil {
		return nil, errors.Wrap(err, "ERROR: could not archive files")
	}

	if err := c.write(archive); err != nil {
		return nil, err
	}

	return archive, nil
}

func (c *StoreCLI) options() []archiverOption {
	var options []archiverOption
	if c.Concurrency != 0 {
		options = append(options, Concurrency(c.Concurrency))
	}
	if c.ClampTimestamps {
		options = append(options, ClampTimestamps())
	}
	if c.UTF8Names {
		options = append(options, UTF8Names())
	}

	return options
}

func (c *StoreCLI) write(archive *Archive) (err error) {
	if c.ArchivePath == StdoutPath {
		stdout := c.Stdout
		if stdout == nil {
			stdout = os.Stdout
		}
		if _, err := archive.WriteTo(stdout); err != nil {
			return errors.Wrap(err, "ERROR: could not write archive to stdout")
		}
		return nil
	}

	dest, err := os.Create(c.ArchivePath)
	if err != nil {
		return errors.Errorf("ERROR: could not create archive at %s", c.ArchivePath)
	}
	defer func() {
		if closeErr := dest.Close(); err == nil && closeErr != nil {
			err = errors.Wrapf(closeErr, "ERROR: could not close archive %s", c.ArchivePath)
		}
	}()

	if _, err = archive.WriteTo(dest); err != nil {
		return errors.Wrapf(err, "ERROR: could not write archive %s", c.ArchivePath)
	}

	return nil
}
