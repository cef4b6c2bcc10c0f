// Package storage implements the blob deletion hook on the Cloudinary SDK.
// Deletion is best-effort by contract: callers log failures and never let
// them abort a transaction.
package storage

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Cloudinary destroys uploaded assets by public ID.
type Cloudinary struct {
	client *cloudinary.Cloudinary
}

// NewCloudinary creates a blob store for the given Cloudinary account.
func NewCloudinary(cloudName, apiKey, apiSecret string) (*Cloudinary, error) {
	client, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}
	return &Cloudinary{client: client}, nil
}

// Destroy removes one uploaded asset. kind is the Cloudinary resource type
// (image, video, raw).
func (c *Cloudinary) Destroy(ctx context.Context, publicID, kind string) error {
	resp, err := c.client.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: kind,
	})
	if err != nil {
		return fmt.Errorf("destroy request failed: %w", err)
	}
	// "not found" counts as deleted for cleanup purposes.
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("destroy rejected: %s", resp.Result)
	}
	return nil
}

// Noop is a blob store that discards deletions. Used when no Cloudinary
// credentials are configured and in tests.
type Noop struct{}

// NewNoop creates a no-op blob store.
func NewNoop() *Noop { return &Noop{} }

// Destroy does nothing.
func (*Noop) Destroy(context.Context, string, string) error { return nil }
