package models

import "time"

type AttachmentType string

const (
	AttachmentImage AttachmentType = "image"
	AttachmentVideo AttachmentType = "video"
	AttachmentPDF   AttachmentType = "pdf"
)

// Attachment is a reference to an externally stored blob. The PublicID is
// what the blob store needs to destroy the object on hard delete.
type Attachment struct {
	URL        string         `json:"url"`
	PublicID   string         `json:"public_id"`
	Type       AttachmentType `json:"type"`
	UploadedAt time.Time      `json:"uploaded_at"`
}

// PublicIDs collects the non-empty blob identifiers from a list of attachments.
func PublicIDs(attachments []Attachment) []string {
	ids := make([]string, 0, len(attachments))
	for _, a := range attachments {
		if a.PublicID != "" {
			ids = append(ids, a.PublicID)
		}
	}
	return ids
}
