package client

import (
	"context"
	"encoding/base64"

	firebase "firebase.google.com/go"
	"github.com/go-faster/errors"
	"google.golang.org/api/option"
)

// Credentials decodes a base64 service-account JSON. An empty value falls
// back to application default credentials.
func Credentials(saBase64 string) ([]option.ClientOption, error) {
	if saBase64 == "" {
		return nil, nil
	}
	saJSON, err := base64.StdEncoding.DecodeString(saBase64)
	if err != nil {
		return nil, errors.Wrap(err, "decode FIRESTORE_SA")
	}
	return []option.ClientOption{option.WithCredentialsJSON(saJSON)}, nil
}

func Firebase(ctx context.Context, projectID string, opts ...option.ClientOption) (*firebase.App, error) {
	var conf *firebase.Config
	if projectID != "" {
		conf = &firebase.Config{ProjectID: projectID}
	}
	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "firebase app")
	}
	return app, nil
}
