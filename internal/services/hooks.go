package services

import (
	"context"

	"github.com/sirupsen/logrus"
)

// BlobStore is the external blob deletion hook. Implementations delete
// stored objects (attachments, profile pictures) by public ID.
type BlobStore interface {
	Destroy(ctx context.Context, publicID, kind string) error
}

// blobRef pairs a blob identifier with its resource kind.
type blobRef struct {
	PublicID string
	Kind     string
}

// cleanupBlobs fires the blob deletion hook for every collected reference.
// It runs after the owning transaction has committed; failures are logged
// and never propagate, so blob cleanup can never undo a committed delete or
// abort anything.
func cleanupBlobs(ctx context.Context, blobs BlobStore, refs []blobRef) {
	for _, ref := range refs {
		if err := blobs.Destroy(ctx, ref.PublicID, ref.Kind); err != nil {
			logrus.WithFields(logrus.Fields{
				"public_id": ref.PublicID,
				"kind":      ref.Kind,
			}).WithError(err).Warn("blob cleanup failed")
		}
	}
}
