package zipstore

import (
	"bytes"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// FileEntry is a single file to be stored in an archive.
type FileEntry struct {
	Name string
	Date time.Time
	Data []byte
}

// Builder assembles a stored (uncompressed) ZIP archive in memory. Entries
// are written in the order they are added. A Builder is not safe for
// concurrent use.
//
// The first error returned by Add is sticky: every later call to Add or
// Finalize returns it and no archive is produced.
type Builder struct {
	local     bytes.Buffer
	directory bytes.Buffer
	offset    uint64
	dirSize   uint64
	entries   int
	settings  *settings
	err       error
	finalized bool
}

// NewBuilder returns an empty Builder. Concurrency has no effect on a Builder.
func NewBuilder(options ...archiverOption) (*Builder, error) {
	s, err := newSettings(options)
	if err != nil {
		return nil, err
	}

	return &Builder{settings: s}, nil
}

// Add appends entry to the archive.
func (b *Builder) Add(entry FileEntry) error {
	return b.add(entry, Checksum(entry.Data))
}

// Len returns the number of entries added so far.
func (b *Builder) Len() int {
	return b.entries
}

// Finalize writes the end of central directory record and returns the
// archive. The Builder cannot be used afterwards.
func (b *Builder) Finalize() (*Archive, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.finalized {
		return nil, ErrFinalized
	}
	b.finalized = true

	end := directoryEnd{
		records: uint16(b.entries),
		size:    uint32(b.dirSize),
		offset:  uint32(b.offset),
	}

	data := make([]byte, 0, b.offset+b.dirSize+directoryEndLen)
	data = append(data, b.local.Bytes()...)
	data = append(data, b.directory.Bytes()...)
	data = append(data, end.encode()...)
	b.release()

	return &Archive{Data: data, MIMEType: MIMEType}, nil
}

func (b *Builder) add(entry FileEntry, crc uint32) error {
	if b.err != nil {
		return b.err
	}
	if b.finalized {
		return ErrFinalized
	}

	header, err := b.header(entry, crc)
	if err != nil {
		return b.fail(errors.Wrapf(err, "ERROR: could not add entry %q", entry.Name))
	}

	b.local.Write(header.localHeader())
	b.local.Write(header.name)
	b.local.Write(entry.Data)

	b.directory.Write(header.directoryHeader())
	b.directory.Write(header.name)

	b.offset += fileHeaderLen + uint64(len(header.name)) + uint64(len(entry.Data))
	b.dirSize += directoryHeaderLen + uint64(len(header.name))
	b.entries++

	return nil
}

// header validates entry against the limits of a non zip64 archive before
// anything is written.
func (b *Builder) header(entry FileEntry, crc uint32) (*entryHeader, error) {
	if b.entries >= uint16max {
		return nil, ErrTooManyEntries
	}

	if !utf8.ValidString(entry.Name) || len(entry.Name) > uint16max {
		return nil, ErrInvalidName
	}
	name := []byte(entry.Name)

	size := uint64(len(entry.Data))
	if size > uint32max {
		return nil, errors.Wrapf(ErrArchiveTooLarge, "ERROR: entry holds %d bytes", size)
	}
	if end := b.offset + fileHeaderLen + uint64(len(name)) + size; end > uint32max {
		return nil, errors.Wrapf(ErrArchiveTooLarge, "ERROR: local entries end at offset %d", end)
	}
	if dirSize := b.dirSize + directoryHeaderLen + uint64(len(name)); dirSize > uint32max {
		return nil, errors.Wrapf(ErrArchiveTooLarge, "ERROR: central directory holds %d bytes", dirSize)
	}

	modTime, modDate, err := dosDateTime(entry.Date, b.settings.clampTimestamps)
	if err != nil {
		return nil, err
	}

	var flags uint16
	if b.settings.utf8Names {
		if _, require := detectUTF8(entry.Name); require {
			flags |= flagUTF8
		}
	}

	return &entryHeader{
		name:    name,
		flags:   flags,
		modTime: modTime,
		modDate: modDate,
		crc32:   crc,
		size:    uint32(size),
		offset:  uint32(b.offset),
	}, nil
}

func (b *Builder) fail(err error) error {
	b.err = err
	b.release()
	return err
}

func (b *Builder) release() {
	b.local = bytes.Buffer{}
	b.directory = bytes.Buffer{}
}

// https://cs.opensource.google/go/go/+/refs/tags/go1.21.0:src/archive/zip/writer.go
func detectUTF8(s string) (valid, require bool) {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size

		if r < 0x20 || r > 0x7d || r == 0x5c {
			if !utf8.ValidRune(r) || (r == utf8.RuneError && size == 1) {
				return false, false
			}
			require = true
		}
	}
	return true, require
}
