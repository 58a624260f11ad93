package gallery

import (
	"context"
	"io"
	"path"

	"cloud.google.com/go/storage"
	"github.com/go-faster/errors"
)

// BucketLibrary is a gallery backed by a Cloud Storage bucket.
type BucketLibrary struct {
	bucket *storage.BucketHandle
	name   string
	prefix string
}

func NewBucketLibrary(bucket *storage.BucketHandle, name, prefix string) *BucketLibrary {
	return &BucketLibrary{bucket: bucket, name: name, prefix: prefix}
}

// Request grants access when the bucket exists.
func (l *BucketLibrary) Request(ctx context.Context) (bool, error) {
	if _, err := l.bucket.Attrs(ctx); err != nil {
		if errors.Is(err, storage.ErrBucketNotExist) {
			return false, nil
		}
		return false, errors.Wrap(err, "bucket attrs")
	}
	return true, nil
}

func (l *BucketLibrary) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	object := path.Join(l.prefix, name)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := l.bucket.Object(object).NewWriter(ctx)
	w.ContentType = "image/jpeg"

	if _, err := io.Copy(w, r); err != nil {
		// cancelling before Close aborts the upload
		cancel()
		w.Close()
		return "", errors.Wrap(err, "upload")
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrap(err, "finish upload")
	}

	return "gs://" + l.name + "/" + object, nil
}
