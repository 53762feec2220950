// Package backend defines the slice of a hosted document database and blob
// store that the seeder consumes. internal/appwrite implements it over the
// Appwrite REST API and pkg/backend/memory implements it in process.
package backend

import (
	"context"
)

// Document is a stored document: its identifier plus its fields.
type Document struct {
	ID           string         `json:"$id"`
	CollectionID string         `json:"$collectionId,omitempty"`
	Data         map[string]any `json:"-"`
}

// File is a stored blob's metadata.
type File struct {
	ID       string `json:"$id"`
	BucketID string `json:"bucketId"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"sizeOriginal"`
}

// FileInput describes a blob to upload.
type FileInput struct {
	Name     string
	MimeType string
	Data     []byte
	// Source is where the bytes came from, kept for logging.
	Source string
}

// Size returns the number of bytes to upload.
func (in FileInput) Size() int64 {
	return int64(len(in.Data))
}

// Documents is the document database. Collections are addressed by ID within
// the database the implementation was configured with.
type Documents interface {
	// ListDocuments returns up to limit documents from the collection.
	ListDocuments(ctx context.Context, collectionID string, limit int) ([]Document, error)

	// DeleteDocument removes one document.
	DeleteDocument(ctx context.Context, collectionID, documentID string) error

	// CreateDocument stores data under documentID.
	CreateDocument(ctx context.Context, collectionID, documentID string, data map[string]any) (*Document, error)
}

// Files is the blob store bucket the implementation was configured with.
type Files interface {
	// ListFiles returns up to limit files from the bucket.
	ListFiles(ctx context.Context, limit int) ([]File, error)

	// DeleteFile removes one file.
	DeleteFile(ctx context.Context, fileID string) error

	// CreateFile uploads in under fileID.
	CreateFile(ctx context.Context, fileID string, in FileInput) (*File, error)

	// FileViewURL returns the durable, publicly resolvable address of a file.
	FileViewURL(fileID string) string

	// BucketID identifies the bucket for logging.
	BucketID() string
}

// Backend combines both stores.
type Backend interface {
	Documents
	Files
}
