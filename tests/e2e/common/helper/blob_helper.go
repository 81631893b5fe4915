//go:build e2e

package helper

import (
	"context"
	"testing"

	"venuebook/internal/infra/blob"
	"venuebook/internal/pkg/config"

	"github.com/stretchr/testify/require"
)

// BlobProbe inspects the evidence bucket directly so e2e tests can assert
// what the service actually wrote or deleted.
type BlobProbe struct {
	store *blob.Store
}

func NewBlobProbe(t *testing.T, cfg config.BlobConfig) *BlobProbe {
	t.Helper()

	store, err := blob.New(cfg)
	require.NoError(t, err, "failed to build blob probe")
	return &BlobProbe{store: store}
}

// SeedObject uploads a payload and returns its URL, for tests that need a
// pre-existing blob (e.g. a queued cleanup job pointing at real data).
func (p *BlobProbe) SeedObject(t *testing.T, key string, data []byte) string {
	t.Helper()

	url, err := p.store.Put(context.Background(), key, data, "application/octet-stream")
	require.NoError(t, err)
	return url
}

func (p *BlobProbe) RequireObjectExists(t *testing.T, url string) {
	t.Helper()

	exists, err := p.store.Exists(context.Background(), url)
	require.NoError(t, err)
	require.True(t, exists, "expected blob to exist: %s", url)
}

func (p *BlobProbe) RequireObjectGone(t *testing.T, url string) {
	t.Helper()

	exists, err := p.store.Exists(context.Background(), url)
	require.NoError(t, err)
	require.False(t, exists, "expected blob to be gone: %s", url)
}
