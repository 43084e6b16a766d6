package transform

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/oklog/ulid/v2"
)

// outputFile is the destination of an operation. In atomic mode the data goes
// to a hidden sibling file that replaces the destination on commit.
type outputFile struct {
	*os.File
	path    string
	tmpPath string
	done    bool
}

func createOutput(path string, atomic bool) (*outputFile, error) {
	if !atomic {
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("%w: creating output: %w", ErrIO, err)
		}
		return &outputFile{File: f, path: path}, nil
	}

	dir, base := filepath.Split(path)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, ulid.Make()))
	f, err := os.OpenFile(tmpPath, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: creating temporary output: %w", ErrIO, err)
	}
	return &outputFile{File: f, path: path, tmpPath: tmpPath}, nil
}

// commit flushes and closes the file, renaming it into place in atomic mode.
func (o *outputFile) commit() error {
	o.done = true
	if o.tmpPath == "" {
		if err := o.Close(); err != nil {
			return fmt.Errorf("%w: closing output: %w", ErrIO, err)
		}
		return nil
	}

	if err := o.Sync(); err != nil {
		o.discard()
		return fmt.Errorf("%w: syncing output: %w", ErrIO, err)
	}
	if err := o.Close(); err != nil {
		o.discard()
		return fmt.Errorf("%w: closing output: %w", ErrIO, err)
	}
	if err := os.Rename(o.tmpPath, o.path); err != nil {
		o.discard()
		return fmt.Errorf("%w: renaming output: %w", ErrIO, err)
	}
	return nil
}

// abort closes the file. A non-atomic output keeps whatever was written;
// an atomic one is removed. It is a no-op after commit.
func (o *outputFile) abort() {
	if o.done {
		return
	}
	o.done = true
	_ = o.Close()
	o.discard()
}

func (o *outputFile) discard() {
	if o.tmpPath == "" {
		return
	}
	_ = os.Remove(o.tmpPath)
}

// sameFile reports whether input and output refer to one existing file.
func sameFile(input, output string) bool {
	a, err := os.Stat(input)
	if err != nil {
		return false
	}
	b, err := os.Stat(output)
	if err != nil {
		return false
	}
	return os.SameFile(a, b)
}
