package firestore

import (
	"context"

	"wallcraft/internal/kv"

	"cloud.google.com/go/firestore"
	"github.com/go-faster/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const valueField = "value"

// Storage keeps one document per key in collection; the blob lives in the
// document's value field.
type Storage struct {
	collection string
	firestore  *firestore.Client
}

func New(collection string, firestore *firestore.Client) *Storage {
	return &Storage{
		collection: collection,
		firestore:  firestore,
	}
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	doc, err := s.firestore.Collection(s.collection).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, kv.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get %q", key)
	}

	v, err := doc.DataAt(valueField)
	if err != nil {
		return nil, errors.Wrapf(err, "read %q", key)
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, errors.Errorf("document %q: %s is %T, not bytes", key, valueField, v)
	}
	return b, nil
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.firestore.Collection(s.collection).Doc(key).Set(ctx, map[string]any{
		valueField:  value,
		"updatedAt": firestore.ServerTimestamp,
	})
	return errors.Wrapf(err, "set %q", key)
}

func (s *Storage) Close() error {
	return s.firestore.Close()
}
