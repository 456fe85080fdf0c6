package storage

import (
	"context"
	"io"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

var (
	ErrObjectExists = errors.New("storage: object already exists")
	ErrInvalidName  = errors.New("storage: invalid object name")
)

// Bucket stores public binaries addressed by a relative object name.
type Bucket interface {
	Upload(ctx context.Context, name string, body io.Reader, overwrite bool) (string, error)
	Delete(ctx context.Context, names ...string) error
	PublicURL(name string) string
}

// FileBucket keeps objects in an afero filesystem and exposes them below baseURL.
type FileBucket struct {
	fs      afero.Fs
	baseURL string
}

func NewFileBucket(fs afero.Fs, baseURL string) *FileBucket {
	return &FileBucket{fs: fs, baseURL: strings.TrimRight(baseURL, "/")}
}

// NewOSBucket roots a bucket at dir on the local disk, creating it if needed.
func NewOSBucket(dir, baseURL string) (*FileBucket, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create upload dir %s", dir)
	}
	return NewFileBucket(afero.NewBasePathFs(afero.NewOsFs(), dir), baseURL), nil
}

// Fs exposes the backing filesystem, read-only, for serving.
func (b *FileBucket) Fs() afero.Fs {
	return afero.NewReadOnlyFs(b.fs)
}

func (b *FileBucket) PublicURL(name string) string {
	return b.baseURL + "/" + name
}

// Upload writes body under name and returns its public URL. Without overwrite
// an existing object makes the call fail with ErrObjectExists.
func (b *FileBucket) Upload(ctx context.Context, name string, body io.Reader, overwrite bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean, err := cleanName(name)
	if err != nil {
		return "", err
	}

	if dir := path.Dir(clean); dir != "." {
		if err := b.fs.MkdirAll(dir, 0o755); err != nil {
			return "", errors.Wrapf(err, "create dir for %s", clean)
		}
	}

	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flag = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := b.fs.OpenFile(clean, flag, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", errors.Wrap(ErrObjectExists, clean)
		}
		return "", errors.Wrapf(err, "open %s", clean)
	}

	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		_ = b.fs.Remove(clean)
		return "", errors.Wrapf(err, "write %s", clean)
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrapf(err, "close %s", clean)
	}
	return b.PublicURL(clean), nil
}

// Delete removes the named objects. Missing objects are not an error.
func (b *FileBucket) Delete(ctx context.Context, names ...string) error {
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		clean, err := cleanName(name)
		if err != nil {
			return err
		}
		if err := b.fs.Remove(clean); err != nil && !errors.Is(err, os.ErrNotExist) {
			return errors.Wrapf(err, "delete %s", clean)
		}
	}
	return nil
}

// NameFromURL returns the trailing path segment of a stored object's URL.
func NameFromURL(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	if i := strings.LastIndex(url, "/"); i >= 0 {
		return url[i+1:]
	}
	return url
}

func cleanName(name string) (string, error) {
	if name == "" || strings.HasPrefix(name, "/") {
		return "", errors.Wrap(ErrInvalidName, name)
	}
	clean := path.Clean(name)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", errors.Wrap(ErrInvalidName, name)
	}
	return clean, nil
}
