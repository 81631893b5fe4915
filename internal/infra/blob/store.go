// Package blob stores deposit evidence files in S3-compatible object storage.
package blob

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"venuebook/internal/pkg/config"
	"venuebook/internal/pkg/errs"
)

// Store is a thin wrapper over a single bucket. Object keys are scoped by a
// caller-provided prefix (usually the booking ID) so cleanup can target a
// whole booking without listing the bucket.
type Store struct {
	client *minio.Client
	cfg    config.BlobConfig
}

func New(cfg config.BlobConfig) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, errs.New("blob: bucket is required")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errs.Wrap(err, "blob: create client")
	}
	return &Store{client: client, cfg: cfg}, nil
}

// Put uploads the object and returns its public URL. The URL is what gets
// persisted on the booking row; Delete accepts the same URL back.
func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	key = strings.TrimLeft(key, "/")
	if key == "" {
		return "", errs.New("blob: object key is required")
	}
	_, err := s.client.PutObject(ctx, s.cfg.Bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errs.WrapKind(err, errs.KindStorageFault, "blob: put object")
	}
	return s.ObjectURL(key), nil
}

// Delete removes the object behind url. A missing object is not an error:
// the cleanup job retries until it succeeds, so a delete that already
// happened must report success.
func (s *Store) Delete(ctx context.Context, url string) error {
	key, err := s.keyFromURL(url)
	if err != nil {
		return err
	}
	if err := s.client.RemoveObject(ctx, s.cfg.Bucket, key, minio.RemoveObjectOptions{}); err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound {
			return nil
		}
		return errs.WrapKind(err, errs.KindStorageFault, "blob: remove object")
	}
	return nil
}

// Exists reports whether the object behind url is present.
func (s *Store) Exists(ctx context.Context, url string) (bool, error) {
	key, err := s.keyFromURL(url)
	if err != nil {
		return false, err
	}
	if _, err := s.client.StatObject(ctx, s.cfg.Bucket, key, minio.StatObjectOptions{}); err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, errs.WrapKind(err, errs.KindStorageFault, "blob: stat object")
	}
	return true, nil
}

// ObjectURL builds the canonical URL for an object key.
func (s *Store) ObjectURL(key string) string {
	scheme := "http"
	if s.cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.Endpoint, s.cfg.Bucket, key)
}

// keyFromURL inverts ObjectURL. Only URLs minted by this store are accepted;
// anything else means the row carries a URL we never produced.
func (s *Store) keyFromURL(url string) (string, error) {
	for _, scheme := range []string{"https://", "http://"} {
		prefix := scheme + s.cfg.Endpoint + "/" + s.cfg.Bucket + "/"
		if strings.HasPrefix(url, prefix) {
			key := strings.TrimPrefix(url, prefix)
			if key == "" {
				return "", errs.New("blob: url has empty object key")
			}
			return key, nil
		}
	}
	return "", errs.New("blob: url does not belong to this store")
}
