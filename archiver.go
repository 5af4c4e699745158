package zipstore

import (
	"bytes"
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/zipstore/pool"
)

// MIMEType is the content type of every archive produced by this package.
const MIMEType = "application/zip"

const checksumQueueCapacity = 64

// Archive is a complete ZIP archive held in memory.
type Archive struct {
	Data     []byte
	MIMEType string
}

// Len returns the size of the archive in bytes.
func (a *Archive) Len() int {
	return len(a.Data)
}

// WriteTo writes the archive bytes to w.
func (a *Archive) WriteTo(w io.Writer) (int64, error) {
	return bytes.NewReader(a.Data).WriteTo(w)
}

// Store packs files, in order, into a stored ZIP archive. It either returns
// the whole archive or an error; no partial output is returned.
func Store(files []FileEntry, options ...archiverOption) (*Archive, error) {
	return StoreContext(context.Background(), files, options...)
}

// StoreContext is like Store. Cancelling ctx aborts the checksum stage.
func StoreContext(ctx context.Context, files []FileEntry, options ...archiverOption) (*Archive, error) {
	b, err := NewBuilder(options...)
	if err != nil {
		return nil, err
	}

	if len(files) > uint16max {
		return nil, errors.Wrapf(ErrTooManyEntries, "ERROR: got %d entries", len(files))
	}

	checksums, err := checksumEntries(ctx, files, b.settings.concurrency)
	if err != nil {
		return nil, errors.Wrap(err, "ERROR: could not checksum entries")
	}

	for i, file := range files {
		if err := b.add(file, checksums[i]); err != nil {
			return nil, err
		}
	}

	return b.Finalize()
}

// checksumEntries returns the CRC-32 of every entry, indexed like files.
func checksumEntries(ctx context.Context, files []FileEntry, concurrency int) ([]uint32, error) {
	checksums := make([]uint32, len(files))

	if concurrency <= minConcurrency || len(files) < 2 {
		for i, file := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			checksums[i] = Checksum(file.Data)
		}
		return checksums, nil
	}

	executor := func(i int) error {
		checksums[i] = Checksum(files[i].Data)
		return nil
	}

	checksumPool, err := pool.NewWorkerPool(executor, &pool.Config{Concurrency: concurrency, Capacity: checksumQueueCapacity})
	if err != nil {
		return nil, errors.Wrap(err, "ERROR: could not create checksum pool")
	}

	checksumPool.Start(ctx)
	for i := range files {
		if err := checksumPool.Enqueue(i); err != nil {
			break
		}
	}

	if err := checksumPool.Close(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return checksums, nil
}
