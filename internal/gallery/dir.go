package gallery

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/go-faster/errors"
)

// DirLibrary is a gallery backed by a local directory.
type DirLibrary struct {
	Dir string
}

func NewDirLibrary(dir string) *DirLibrary {
	return &DirLibrary{Dir: dir}
}

// Request grants access when the directory exists, or can be created, and
// accepts new files.
func (l *DirLibrary) Request(ctx context.Context) (bool, error) {
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		if errors.Is(err, os.ErrPermission) {
			return false, nil
		}
		return false, errors.Wrap(err, "create gallery dir")
	}

	f, err := os.CreateTemp(l.Dir, ".probe-*")
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return false, nil
		}
		return false, errors.Wrap(err, "probe gallery dir")
	}
	name := f.Name()
	f.Close()
	os.Remove(name)

	return true, nil
}

// Save writes r to Dir/name. A partial file is removed on failure.
func (l *DirLibrary) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	path := filepath.Join(l.Dir, filepath.Base(name))

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", errors.Wrap(err, "create file")
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", errors.Wrap(err, "write file")
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", errors.Wrap(err, "close file")
	}

	return path, nil
}
